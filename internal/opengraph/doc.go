// Package opengraph renders 1200x630 Open Graph preview images.
//
// A card is rendered from the "opengraph" HTML template into a temporary
// file, opened in headless Chrome, and the #opengraph element is captured as
// PNG. Browsers are expensive, so screenshotters live in a Pool that starts
// them lazily and reuses them across cards.
package opengraph
