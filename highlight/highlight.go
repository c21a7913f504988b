// Package highlight renders digests and captured comments for terminal
// display.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style

	commentStyle = lipgloss.NewStyle().Faint(true)
)

func init() {
	lexer = lexers.Get("sql")
	formatter = formatters.Get("terminal256")
	style = styles.Get("monokai")
}

// Digest returns a digest string with ANSI SQL syntax highlighting applied.
// On error or empty input, the original string is returned unchanged.
func Digest(s string) string {
	if s == "" {
		return s
	}

	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return s
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return s
	}

	return strings.TrimRight(buf.String(), "\n")
}

// Comment renders a captured first-comment in a dim style, since it is
// routing metadata rather than executable SQL.
func Comment(s string) string {
	if s == "" {
		return s
	}
	return commentStyle.Render(s)
}
