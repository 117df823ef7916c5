// Package kpath implements the kinded path mini-language used to
// address nodes in a document. A path is a sequence of segments,
// each introduced by a separator that encodes the kind of container
// it descends into:
//
//   - "/name" → Object entry "name"
//   - ":3"    → Array index 3
//   - ":-"    → last element
//   - ":+"    → append position (write modes only)
//   - ":*"    → prepend position (write modes only)
//
// A path must start with a separator and must not end with one.
// Field text escapes: "~0" → "~", "~1" → "/", "~2" → ":". Any other
// "~" sequence is a malformed path.
//
// Examples:
//
//	"/a/b"     → object a, entry b
//	"/a:0/b"   → object a, array element 0, entry b
//	"/a~1b"    → object entry "a/b"
//	":-"       → last element of the root array
package kpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one path step: exactly one of Field, Index, Last,
// Append, Prepend is set. Field holds the raw (still escaped)
// text; use FieldName to decode it.
type Segment struct {
	Field   *string
	Index   *int
	Last    bool
	Append  bool
	Prepend bool
}

func (s *Segment) IsField() bool {
	return s.Field != nil
}

func (s *Segment) IsIndex() bool {
	return !s.IsField()
}

// FieldName decodes the segment's escaped field text. Only valid on
// field segments; escape validity was established at parse time.
func (s *Segment) FieldName() string {
	return DecodeField(*s.Field)
}

// SegmentString returns the canonical text of this single segment,
// including its leading separator.
func (s *Segment) SegmentString() string {
	if s.Field != nil {
		return "/" + *s.Field
	}
	switch {
	case s.Last:
		return ":-"
	case s.Append:
		return ":+"
	case s.Prepend:
		return ":*"
	}
	return ":" + strconv.Itoa(*s.Index)
}

// Path is an ordered sequence of segments. The zero value addresses
// the document root.
type Path []Segment

func (p Path) String() string {
	buf := bytes.NewBuffer(nil)
	for i := range p {
		buf.WriteString(p[i].SegmentString())
	}
	return buf.String()
}

// Child extends p's canonical text with one more segment: a field
// child when key is non-nil (re-escaped), an index child otherwise.
func Child(p Path, key *string, index int) string {
	if key != nil {
		return p.String() + "/" + EncodeField(*key)
	}
	return p.String() + ":" + strconv.Itoa(index)
}

// Parse parses path text into segments.
//
// Rejections:
//   - text not starting with '/' or ':'
//   - a trailing separator, including a bare "/" or ":"
//   - a '~' not followed by '0', '1', or '2' in field text
//   - an index token other than an integer with no leading zero,
//     '-', '+', or '*'
func Parse(text string) (Path, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	if text[0] != '/' && text[0] != ':' {
		return nil, fmt.Errorf("%w: path %q must start with '/' or ':'", ErrBadPath, text)
	}
	var res Path
	i := 0
	for i < len(text) {
		sep := text[i]
		i++
		j := i
		for j < len(text) && text[j] != '/' && text[j] != ':' {
			j++
		}
		raw := text[i:j]
		if raw == "" && j == len(text) {
			return nil, fmt.Errorf("%w: path %q ends with a separator", ErrBadPath, text)
		}
		switch sep {
		case '/':
			if err := checkEscapes(raw); err != nil {
				return nil, fmt.Errorf("%w: path %q: %v", ErrBadPath, text, err)
			}
			field := raw
			res = append(res, Segment{Field: &field})
		case ':':
			seg, err := parseIndex(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: path %q: %v", ErrBadPath, text, err)
			}
			res = append(res, seg)
		}
		i = j
	}
	return res, nil
}

func parseIndex(raw string) (Segment, error) {
	switch raw {
	case "-":
		return Segment{Last: true}, nil
	case "+":
		return Segment{Append: true}, nil
	case "*":
		return Segment{Prepend: true}, nil
	case "":
		return Segment{}, fmt.Errorf("empty index")
	}
	if len(raw) > 1 && raw[0] == '0' {
		return Segment{}, fmt.Errorf("index %q has a leading zero", raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return Segment{}, fmt.Errorf("invalid index %q", raw)
	}
	return Segment{Index: &n}, nil
}

func checkEscapes(raw string) error {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '~' {
			continue
		}
		if i+1 >= len(raw) {
			return fmt.Errorf("dangling '~'")
		}
		switch raw[i+1] {
		case '0', '1', '2':
			i++
		default:
			return fmt.Errorf("invalid escape %q", raw[i:i+2])
		}
	}
	return nil
}

// DecodeField resolves field escapes: "~0" → "~", "~1" → "/",
// "~2" → ":". Escape order matters: "~0" is decoded last so that
// "~01" does not turn into "/".
func DecodeField(raw string) string {
	if !strings.ContainsRune(raw, '~') {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '~' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		switch raw[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		case '2':
			b.WriteByte(':')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

// EncodeField escapes a field name for path text.
func EncodeField(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return strings.ReplaceAll(name, ":", "~2")
}
