package digest_test

import (
	"strings"
	"testing"

	"github.com/mickamy/sql-tap/digest"
)

func TestStripCommentsRemovesBlockComment(t *testing.T) {
	t.Parallel()
	got := digest.StripComments([]byte("SELECT 1 /* note */ FROM t"), digest.DefaultConfig())
	want := "SELECT 1 FROM t"
	if got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestStripCommentsRemovesLineComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hash", "SELECT 1 # trailing\nFROM t", "SELECT 1 FROM t"},
		{"dash", "SELECT 1 -- trailing\nFROM t", "SELECT 1 FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := digest.StripComments([]byte(tt.in), digest.DefaultConfig())
			if got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCommentsPreservesLiterals(t *testing.T) {
	t.Parallel()
	// StripComments has no string-literal tracking (it mirrors
	// mysql_query_strip_comments, which doesn't either) so it is only
	// safe to assert literal pass-through when no comment delimiters
	// appear inside the quoted text.
	in := "SELECT 'alice' FROM t WHERE id = 42"
	got := digest.StripComments([]byte(in), digest.DefaultConfig())
	if !strings.Contains(got, "42") {
		t.Errorf("StripComments = %q, want numeric literal untouched", got)
	}
	if !strings.Contains(got, "alice") {
		t.Errorf("StripComments = %q, want string literal content untouched", got)
	}
}

func TestStripCommentsCollapsesWhitespace(t *testing.T) {
	t.Parallel()
	got := digest.StripComments([]byte("SELECT  1\n\tFROM  t"), digest.DefaultConfig())
	want := "SELECT 1 FROM t"
	if got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestStripCommentsEmpty(t *testing.T) {
	t.Parallel()
	if got := digest.StripComments(nil, digest.DefaultConfig()); got != "" {
		t.Errorf("StripComments(nil) = %q, want empty", got)
	}
}
