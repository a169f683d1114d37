// Package markdown feeds Markdown pages through the storage format parser.
// Pages are rendered to XHTML with goldmark, their frontmatter is attached
// to the document metadata, and files can be discovered on any fs.FS.
package markdown
