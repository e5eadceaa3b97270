// Package render turns a markdown event stream into HTML fragments.
//
// Engine is a single pass state machine. It tracks table alignment and
// phase, whether an image caption is being read, and the open lists and
// headings. Each closing event flushes the current buffer into a fragment;
// RenderHTML joins the fragments with newlines.
//
// Raw HTML chunks are parsed into a small DOM and searched for registered
// custom components, such as ImageGrid, which expand into generated markup.
// Unmatched chunks are passed through or dropped according to the
// RawHTMLPolicy.
package render
