// Package assets holds the HTML templates wrapped around rendered content.
//
// "imagegrid" renders the thumbnails of an ImageGrid tag and "opengraph"
// renders the card captured as a social preview. Both are built in. A site
// may override either by placing imagegrid.html or opengraph.html in its
// template directory; names missing there fall back to the built-in copy.
package assets
