// Package content turns markdown files into validated content items.
//
// A content item is identified by its path: a file named "index.md" takes
// the name of its folder and owns the folder as an asset bundle, any other
// file takes its own stem. The identifier must start with the publication
// date (YYYY-MM-DD-), which is cross-checked against the date declared in the
// leading "+++" metadata block before the remainder becomes the slug.
//
// Items are ordered newest first and linked to their neighbors by slug.
package content
