// Command sql-digestd reads SQL statements from a file or stdin, computes
// their digest and first comment, and either prints a frequency summary on
// EOF or opens a live dashboard.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mickamy/sql-tap/digest"
	"github.com/mickamy/sql-tap/highlight"
	"github.com/mickamy/sql-tap/stats"
	"github.com/mickamy/sql-tap/tui"
)

var version = "dev"

func main() {
	fs := flag.NewFlagSet("sql-digestd", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "sql-digestd — SQL query digest engine\n\nUsage:\n  sql-digestd [flags] [file]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	maxQueryLength := fs.Int("max-query-length", 65536, "maximum bytes scanned per statement")
	lowercase := fs.Bool("lowercase", false, "ASCII-lowercase every copied-through character")
	replaceNull := fs.Bool("replace-null", true, "rewrite bare NULL tokens to '?'")
	noDigits := fs.Bool("no-digits", false, "rewrite bare digit runs to '?' without full numeric-literal parsing")
	groupingLimit := fs.Int("grouping-limit", 3, "max placeholders kept in a parenthesized list before collapsing")
	maxEntries := fs.Int("max-entries", 4096, "maximum number of distinct digests tracked")
	useTUI := fs.Bool("tui", false, "launch the live dashboard instead of printing a summary")
	color := fs.Bool("color", true, "colorize summary output")
	showVersion := fs.Bool("version", false, "show version and exit")

	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("sql-digestd %s\n", version)
		return
	}

	cfg := digest.Config{
		MaxQueryLength: *maxQueryLength,
		Lowercase:      *lowercase,
		ReplaceNull:    *replaceNull,
		NoDigits:       *noDigits,
		GroupingLimit:  *groupingLimit,
	}

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Fatalf("open %s: %v", fs.Arg(0), err)
		}
		defer f.Close()
		in = f
	}

	if err := run(in, cfg, *maxEntries, *useTUI, *color); err != nil {
		log.Fatal(err)
	}
}

func run(r io.Reader, cfg digest.Config, maxEntries int, useTUI, color bool) error {
	tracker := stats.New(maxEntries)
	samples := make(chan tui.Sample, 64)

	statements := readStatements(r)

	if useTUI {
		go feed(statements, cfg, samples)
		m := tui.New(tracker, samples)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	}

	for raw := range statements {
		d := digest.Digest([]byte(raw), cfg)
		tracker.Record(d, raw, time.Now())
	}

	printSummary(tracker, color)
	return nil
}

func feed(statements <-chan string, cfg digest.Config, out chan<- tui.Sample) {
	for raw := range statements {
		d := digest.Digest([]byte(raw), cfg)
		out <- tui.Sample{Raw: raw, Result: d}
	}
	close(out)
}

// readStatements splits r on ';' delimiters, trims surrounding whitespace,
// and drops empty statements. Only ';' ends a statement; newlines do not. It
// is a plain delimiter split, not a SQL parser — multi-statement scripts with string-embedded semicolons
// are out of scope.
func readStatements(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		scanner.Split(scanSemicolons)
		for scanner.Scan() {
			stmt := strings.TrimSpace(scanner.Text())
			if stmt == "" {
				continue
			}
			out <- stmt
		}
	}()
	return out
}

func scanSemicolons(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, ';'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func printSummary(tracker *stats.Tracker, color bool) {
	top := tracker.Top(0)
	fmt.Printf("%d distinct digest(s)\n\n", len(top))
	for i, e := range top {
		d := e.Digest
		if color {
			d = highlight.Digest(d)
		}
		fmt.Printf("%4d  %6dx  %s\n", i+1, e.Count, d)
		if e.SampleComment != "" {
			c := e.SampleComment
			if color {
				c = highlight.Comment(c)
			}
			fmt.Printf("           comment: %s\n", c)
		}
	}
}
