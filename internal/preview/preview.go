/*
PURPOSE:
  Extracts a code preview for a failure: the source lines surrounding the
  failing line, with that line marked.

ARCHITECTURE INTEGRATION:
  - Used by: pkg/errfmt (default Previewer), internal/cli (preview command)
  - Consumes: pkg/failure.Failure

ERROR HANDLING:
  - Preview reports absence (false) for anything it cannot resolve.
  - Snippet returns explicit errors for the CLI.

USAGE:
  snippet, ok := preview.Extractor{Options: preview.DefaultOptions()}.Preview(f)
*/

package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/daryltucker/run-main/pkg/failure"
)

const tabWidth = 4

// Options controls how much context is shown.
type Options struct {
	Before   int
	After    int
	MaxWidth int
	// Root is the directory paths are shown relative to. Empty means the
	// working directory.
	Root  string
	Color bool
}

// DefaultOptions returns two lines above, three below, 80 columns.
func DefaultOptions() Options {
	return Options{
		Before:   2,
		After:    3,
		MaxWidth: 80,
	}
}

// Extractor is the default code preview extractor.
type Extractor struct {
	Options Options
}

// Preview returns a snippet for the failure's first non-runtime frame.
func (e Extractor) Preview(f failure.Failure) (string, bool) {
	loc, ok := f.Location()
	if !ok || loc.File == "" || loc.Line <= 0 {
		return "", false
	}
	s, err := Snippet(loc.File, loc.Line, e.Options)
	if err != nil {
		return "", false
	}
	return s, true
}

// Snippet renders the lines around line (1-based) of file.
func Snippet(file string, line int, opts Options) (string, error) {
	if file == "" || line <= 0 {
		return "", ErrNoLocation
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	lines := strings.Split(string(bytes.TrimRight(data, "\n")), "\n")
	if line > len(lines) {
		return "", fmt.Errorf("%w: %s has %d lines, want %d", ErrLineOutOfRange, file, len(lines), line)
	}

	first := max(1, line-opts.Before)
	last := min(len(lines), line+opts.After)
	width := len(strconv.Itoa(last))

	marker := color.New(color.FgRed, color.Bold)
	if !opts.Color {
		marker.DisableColor()
	}

	var b strings.Builder
	b.WriteString(displayPath(file, opts.Root))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(line))
	for n := first; n <= last; n++ {
		mark := " "
		if n == line {
			mark = marker.Sprint(">")
		}
		prefix := fmt.Sprintf("%-*d %s | ", width, n, " ")
		text := strings.ReplaceAll(strings.TrimRight(lines[n-1], "\r"), "\t", strings.Repeat(" ", tabWidth))
		text = truncate(text, opts.MaxWidth-len(prefix))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-*d %s | %s", width, n, mark, text)
	}
	return b.String(), nil
}

// ParseLocation splits "file:line".
func ParseLocation(s string) (string, int, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: %q is not FILE:LINE", ErrNoLocation, s)
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("%w: bad line in %q", ErrNoLocation, s)
	}
	return s[:i], n, nil
}

func displayPath(file, root string) string {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return file
		}
		root = wd
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return file
	}
	return "." + string(filepath.Separator) + rel
}

func truncate(s string, limit int) string {
	if limit <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
