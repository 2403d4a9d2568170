package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/run-main/pkg/failure"
)

func writeSource(t *testing.T, n int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%3))
		b.WriteString("\n")
	}
	path := filepath.Join(dir, "src", "main.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return dir, path
}

func TestSnippet(t *testing.T) {
	root, path := writeSource(t, 12)

	got, err := Snippet(path, 10, Options{Before: 2, After: 3, MaxWidth: 80, Root: root})
	require.NoError(t, err)

	want := strings.Join([]string{
		"./src/main.go:10",
		"8    | line xx",
		"9    | line ",
		"10 > | line x",
		"11   | line xx",
		"12   | line ",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSnippetClampsAtFileStart(t *testing.T) {
	root, path := writeSource(t, 5)

	got, err := Snippet(path, 1, Options{Before: 2, After: 1, Root: root})
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1 > | line x", lines[1])
	assert.Equal(t, "2   | line xx", lines[2])
}

func TestSnippetOutsideRootUsesAbsolutePath(t *testing.T) {
	_, path := writeSource(t, 3)

	got, err := Snippet(path, 2, Options{Root: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, path+":2"), got)
}

func TestSnippetTruncatesLongLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.go")
	require.NoError(t, os.WriteFile(path, []byte("\t"+strings.Repeat("a", 200)+"\n"), 0644))

	got, err := Snippet(path, 1, Options{MaxWidth: 40, Root: dir})
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[1], 40)
	assert.True(t, strings.HasPrefix(lines[1], "1 > |     aaa"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "..."), lines[1])
}

func TestSnippetErrors(t *testing.T) {
	_, path := writeSource(t, 3)

	_, err := Snippet(path, 4, DefaultOptions())
	assert.ErrorIs(t, err, ErrLineOutOfRange)

	_, err = Snippet("", 1, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoLocation)

	_, err = Snippet(filepath.Join(t.TempDir(), "missing.go"), 1, DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractorPreview(t *testing.T) {
	root, path := writeSource(t, 6)
	e := Extractor{Options: Options{Before: 1, After: 1, Root: root}}

	f := failure.Classify(6, []failure.Frame{
		{Function: "runtime.gopanic", File: "/usr/lib/go/src/runtime/panic.go", Line: 1},
		{Function: "main.main", File: path, Line: 3},
	})
	got, ok := e.Preview(f)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "./src/main.go:3\n2   |"), got)

	_, ok = e.Preview(failure.Classify(6, nil))
	assert.False(t, ok)

	_, ok = e.Preview(failure.Classify(6, []failure.Frame{{Function: "main.main", File: "/gone.go", Line: 3}}))
	assert.False(t, ok)
}

func TestParseLocation(t *testing.T) {
	file, line, err := ParseLocation("cmd/run-main/main.go:12")
	require.NoError(t, err)
	assert.Equal(t, "cmd/run-main/main.go", file)
	assert.Equal(t, 12, line)

	for _, bad := range []string{"main.go", ":3", "main.go:x", "main.go:0"} {
		_, _, err := ParseLocation(bad)
		assert.ErrorIs(t, err, ErrNoLocation, bad)
	}
}
