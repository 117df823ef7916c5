package textdiff

import (
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	got := Plain("a: 1\nb: 2\n", "a: 1\nb: 3\n")
	if !strings.Contains(got, "-[2]") || !strings.Contains(got, "+[3]") {
		t.Errorf("diff: %q", got)
	}
	if !strings.Contains(got, "a: 1") {
		t.Errorf("equal text dropped: %q", got)
	}
}

func TestPlainEqual(t *testing.T) {
	if got := Plain("same", "same"); got != "same" {
		t.Errorf("no-change diff: %q", got)
	}
}

func TestPretty(t *testing.T) {
	got := Pretty("x", "y")
	if !strings.Contains(got, "x") || !strings.Contains(got, "y") {
		t.Errorf("diff: %q", got)
	}
}
