// Package textdiff renders line diffs between two encodings of a
// document, for CLI output and failure reporting.
package textdiff

import (
	"bytes"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Plain returns a unified-ish text diff with -/+ prefixed lines.
func Plain(before, after string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	buf := bytes.NewBuffer(nil)
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			writeMarked(buf, "-", d.Text)
		case diffpatch.DiffInsert:
			writeMarked(buf, "+", d.Text)
		case diffpatch.DiffEqual:
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// Pretty returns a terminal-colored diff.
func Pretty(before, after string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

func writeMarked(buf *bytes.Buffer, mark, text string) {
	buf.WriteString(mark)
	buf.WriteString("[")
	buf.WriteString(text)
	buf.WriteString("]")
}
