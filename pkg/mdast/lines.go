package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// It recognises LF (\n), CRLF (\r\n) and lone CR (\r) line endings, matching
// the tokenizer's notion of a newline.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: idx,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: idx,
				EndOffset:    end,
			})
			lineStart = end
			idx = end - 1
		}
	}

	// Last line (may be empty when content ends with a newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Source) {
		lastLine := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	lineInfo := d.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	lineInfo := d.Lines[line-1]
	return d.Source[lineInfo.StartOffset:lineInfo.NewlineStart]
}
