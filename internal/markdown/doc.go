// Package markdown turns markdown source into a flat stream of structural
// events for the rendering engine, and renders plain HTML for feed bodies.
//
// The event stream is produced by walking the goldmark AST:
//   - block and inline containers become Start/End pairs
//   - leaves become Text, Code, HTML, InlineHTML, Rule or TaskListMarker
//   - soft and hard line breaks become SoftBreak and HardBreak
//
// A leading block delimited by "+++" lines is recognized as a metadata
// block (see Metadata) and surfaces as Start(MetadataBlock), Text, End.
// Node kinds without a mapping surface as Start/End with TagOther so that
// consumers can reject them explicitly.
package markdown
