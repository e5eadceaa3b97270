// Package feed synthesizes the site's Atom feed.
//
// The feed carries one entry per content item in the order given. Entry ids
// are derived from the site UUID and the item UUID as a name-based (SHA-1,
// version 5) UUID, so an item keeps its id across builds for as long as its
// metadata UUID is unchanged. Entry bodies are the item markdown followed by
// a short note pointing at the original article, converted to plain HTML
// because feed readers do not load the site stylesheet.
package feed
