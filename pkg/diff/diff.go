// Package diff computes line-based unified diffs between two HTML renderings.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Op classifies a diff line.
type Op int

const (
	// OpEqual is an unchanged context line.
	OpEqual Op = iota

	// OpInsert is a line present only in the new text.
	OpInsert

	// OpDelete is a line present only in the old text.
	OpDelete
)

// Line is a single line in a hunk.
type Line struct {
	Op      Op
	Content string
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers.
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	Lines []Line
}

// Diff is a unified diff between two labelled texts.
type Diff struct {
	// OldName and NewName label the two sides in the header.
	OldName string
	NewName string

	Hunks []Hunk

	// Insertions and Deletions count changed lines.
	Insertions int
	Deletions  int
}

// Compare diffs old against new. Returns nil if the texts have the same lines.
func Compare(oldName, newName string, oldText, newText []byte) *Diff {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	ops := editScript(oldLines, newLines)

	result := &Diff{OldName: oldName, NewName: newName}
	for _, line := range ops {
		switch line.Op {
		case OpInsert:
			result.Insertions++
		case OpDelete:
			result.Deletions++
		case OpEqual:
		}
	}
	if result.Insertions == 0 && result.Deletions == 0 {
		return nil
	}

	result.Hunks = groupHunks(ops)
	return result
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", d.OldName)
	fmt.Fprintf(&builder, "+++ %s\n", d.NewName)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)

		for _, line := range hunk.Lines {
			builder.WriteString(line.Op.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// Prefix returns the unified diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	default:
		return " "
	}
}

// splitLines splits content into lines, dropping the final newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript builds the line operations turning oldLines into newLines,
// using a longest-common-subsequence table.
func editScript(oldLines, newLines []string) []Line {
	rows, cols := len(oldLines), len(newLines)

	// lcs[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, Line{Op: OpEqual, Content: oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, Line{Op: OpDelete, Content: oldLines[i]})
			i++
		default:
			ops = append(ops, Line{Op: OpInsert, Content: newLines[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, Line{Op: OpDelete, Content: oldLines[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, Line{Op: OpInsert, Content: newLines[j]})
	}

	return ops
}

// groupHunks splits ops into hunks, merging changes separated by at most
// twice the context size.
func groupHunks(ops []Line) []Hunk {
	type span struct{ start, end int }

	var changes []span
	for idx := 0; idx < len(ops); idx++ {
		if ops[idx].Op == OpEqual {
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].Op != OpEqual {
			idx++
		}
		if n := len(changes); n > 0 && start-changes[n-1].end <= 2*contextLines {
			changes[n-1].end = idx
		} else {
			changes = append(changes, span{start, idx})
		}
	}

	hunks := make([]Hunk, 0, len(changes))
	for _, change := range changes {
		hunks = append(hunks, buildHunk(ops, max(change.start-contextLines, 0), min(change.end+contextLines, len(ops))))
	}
	return hunks
}

// buildHunk builds the hunk covering ops[start:end].
func buildHunk(ops []Line, start, end int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Op != OpInsert {
			hunk.OldStart++
		}
		if op.Op != OpDelete {
			hunk.NewStart++
		}
	}

	hunk.Lines = ops[start:end]
	for _, op := range hunk.Lines {
		if op.Op != OpInsert {
			hunk.OldCount++
		}
		if op.Op != OpDelete {
			hunk.NewCount++
		}
	}

	return hunk
}
