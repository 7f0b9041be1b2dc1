package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

func TestPickWorkspace(t *testing.T) {
	r := scene.Report{Workspaces: []scene.WorkspaceReport{
		{Name: "1", Active: false},
		{Name: "2", Active: true},
	}}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "", want: "2", wantOK: true},
		{name: "1", want: "1", wantOK: true},
		{name: "9", wantOK: false},
	}
	for _, tt := range tests {
		t.Run("name="+tt.name, func(t *testing.T) {
			ws, ok := pickWorkspace(r, tt.name)
			if ok != tt.wantOK || ws.Name != tt.want {
				t.Errorf("pickWorkspace(%q) = %q, %v", tt.name, ws.Name, ok)
			}
		})
	}
}

func TestTreeText(t *testing.T) {
	frame := geom.Rect{Width: 500, Height: 800}
	ws := scene.WorkspaceReport{
		Name:    "1",
		Monitor: "main",
		Nodes: []scene.NodeReport{
			{Kind: "container", Depth: 0, Layout: "tiles", Orientation: "h"},
			{Kind: "window", Depth: 1, WindowID: 1, Title: "editor", Physical: &frame},
			{Kind: "window", Depth: 0, WindowID: 4, Title: "calc", Floating: true},
			{Kind: "system", Depth: 0, Layout: "minimized"},
		},
	}
	lines := strings.Split(strings.TrimRight(ansi.Strip(treeText(ws)), "\n"), "\n")

	want := []string{
		"workspace 1 on main",
		"  tiles h",
		"    #1 editor " + frame.String(),
		"  #4 calc floating",
		"  minimized (system)",
	}
	if len(lines) != len(want) {
		t.Fatalf("treeText() = %d lines, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
