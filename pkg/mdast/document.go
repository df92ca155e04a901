// Package mdast provides the Markdown model shared by the md2html pipeline.
// It defines a lossless view of a Markdown document including:
// - Document: the source together with everything derived from it
// - Token stream: every byte classified
// - Tree: an arena of block nodes carrying rendered inline content
package mdast

// Document is a lossless view of one converted Markdown source.
// It holds the raw content, line metadata, token stream, and AST.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Source is the full file bytes.
	Source []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the full token stream covering every byte.
	Tokens []Token

	// Tree is the parsed AST.
	Tree *Tree
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewDocument creates a new Document from content.
// It builds the line index but does not tokenize or parse.
func NewDocument(path string, source []byte) *Document {
	return &Document{
		Path:   path,
		Source: source,
		Lines:  BuildLines(source),
	}
}
