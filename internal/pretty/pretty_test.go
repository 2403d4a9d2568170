package pretty

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/daryltucker/run-main/pkg/failure"
)

func TestRender(t *testing.T) {
	stack := []failure.Frame{
		{Function: "main.run", File: "/src/main.go", Line: 12},
		{Function: "main.main", File: "/src/main.go", Line: 5},
	}
	got := Renderer{}.Render(failure.Classify(errors.New("boom"), stack), Options{})

	want := strings.Join([]string{
		"Error: boom",
		"  at main.run (/src/main.go:12)",
		"  at main.main (/src/main.go:5)",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderWithoutFrames(t *testing.T) {
	got := Renderer{}.Render(failure.Classify(errors.New("boom"), nil), Options{})
	assert.Equal(t, "Error: boom", got)
}

func TestRenderColor(t *testing.T) {
	if os.Getenv("NO_COLOR") != "" {
		t.Skip("NO_COLOR is set")
	}
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	f := failure.Classify(errors.New("boom"), []failure.Frame{{Function: "main.main", File: "m.go", Line: 1}})

	colored := Renderer{}.Render(f, Options{Color: true})
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "boom")

	plain := Renderer{}.Render(f, Options{Color: false})
	assert.NotContains(t, plain, "\x1b[")
}
