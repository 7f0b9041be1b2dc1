package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/render/frames"
)

func testCanvas() (frames.Canvas, frames.Monitor) {
	m := frames.Monitor{Name: "main", Frame: geom.Rect{Width: 1000, Height: 500}, ActiveWorkspace: "1"}
	c := frames.Canvas{
		Monitors: []frames.Monitor{m},
		Windows: []frames.Window{
			{ID: 1, Title: "editor", Workspace: "1", Rect: geom.Rect{Width: 500, Height: 500}},
			{ID: 2, Title: "terminal", Workspace: "1", Rect: geom.Rect{X: 500, Width: 500, Height: 500}},
			{ID: 3, Title: "other", Workspace: "2", Rect: geom.Rect{Width: 1000, Height: 500}},
		},
	}
	return c, m
}

func TestRender(t *testing.T) {
	c, m := testCanvas()
	out := ansi.Strip(Render(c, m, 40, 10))
	lines := strings.Split(out, "\n")

	if len(lines) != 10 {
		t.Fatalf("lines = %d, want 10", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Errorf("line %d has %d runes, want 40", i, n)
		}
	}
	if lines[0] != "┌"+strings.Repeat("─", 18)+"┐┌"+strings.Repeat("─", 18)+"┐" {
		t.Errorf("top line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "#1 editor") || !strings.Contains(lines[1], "#2 terminal") {
		t.Errorf("label line = %q", lines[1])
	}
	if strings.Contains(out, "other") {
		t.Error("windows of hidden workspaces should not be drawn")
	}
}

func TestRenderFloatingOnTop(t *testing.T) {
	c, m := testCanvas()
	c.Windows = append(c.Windows, frames.Window{
		ID: 4, Title: "calc", Workspace: "1", Floating: true,
		Rect: geom.Rect{X: 250, Y: 150, Width: 500, Height: 200},
	})
	out := ansi.Strip(Render(c, m, 40, 10))
	if !strings.Contains(out, "#4 calc (float)") {
		t.Errorf("floating label missing:\n%s", out)
	}
}

func TestRenderDegenerate(t *testing.T) {
	c, m := testCanvas()
	if got := Render(c, m, 1, 10); got != "" {
		t.Errorf("Render(1 col) = %q, want empty", got)
	}
	if got := Render(c, frames.Monitor{}, 40, 10); got != "" {
		t.Errorf("Render(empty monitor) = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
