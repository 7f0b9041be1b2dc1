package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/scene"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

func newTestPreview(t *testing.T) *previewModel {
	t.Helper()
	sc, err := scene.Unmarshal([]byte(testSceneJSON), scene.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	m, err := newPreviewModel(context.Background(), sc, config.Default())
	if err != nil {
		t.Fatalf("newPreviewModel() error = %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *previewModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestPreviewInitialState(t *testing.T) {
	m := newTestPreview(t)
	if m.ws.Name != "1" {
		t.Errorf("workspace = %q, want 1", m.ws.Name)
	}
	if m.focus == nil || m.focus.WindowID != 1 {
		t.Fatalf("focus = %v, want window 1", m.focus)
	}
	if m.err != nil {
		t.Fatalf("relayout error = %v", m.err)
	}
	r := m.desktop.Backend.Frames()[1]
	if r.X != 0 || r.Width != 500 {
		t.Errorf("editor frame = %v", r)
	}
}

func TestPreviewKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, m *previewModel)
	}{
		{
			name: "flip orientation",
			keys: []string{"o"},
			check: func(t *testing.T, m *previewModel) {
				if c := m.container(); c.Orientation != geom.V {
					t.Errorf("orientation = %v, want v", c.Orientation)
				}
				if r := m.desktop.Backend.Frames()[1]; r.Width != 1000 {
					t.Errorf("editor width = %v, want full width", r.Width)
				}
			},
		},
		{
			name: "accordion",
			keys: []string{"a"},
			check: func(t *testing.T, m *previewModel) {
				if m.container().Layout != tree.LayoutAccordion {
					t.Errorf("layout = %v", m.container().Layout)
				}
			},
		},
		{
			name: "hyprland then tiles",
			keys: []string{"h", "t"},
			check: func(t *testing.T, m *previewModel) {
				if m.container().Layout != tree.LayoutTiles {
					t.Errorf("layout = %v", m.container().Layout)
				}
			},
		},
		{
			name: "ratio clamps",
			keys: strings.Split(strings.Repeat("+", 20), ""),
			check: func(t *testing.T, m *previewModel) {
				if r := m.container().SplitRatio; r != layout.MaxHyprlandRatio {
					t.Errorf("SplitRatio = %v, want %v", r, layout.MaxHyprlandRatio)
				}
			},
		},
		{
			name: "ratio decreases",
			keys: []string{"-"},
			check: func(t *testing.T, m *previewModel) {
				if r := m.container().SplitRatio; r >= config.DefaultHyprlandRatio {
					t.Errorf("SplitRatio = %v, want below default", r)
				}
			},
		},
		{
			name: "fullscreen",
			keys: []string{"f"},
			check: func(t *testing.T, m *previewModel) {
				if !m.focus.Fullscreen {
					t.Error("focus should be fullscreen")
				}
				if r := m.desktop.Backend.Frames()[1]; r.Width != 1000 {
					t.Errorf("fullscreen width = %v, want 1000", r.Width)
				}
			},
		},
		{
			name: "focus next",
			keys: []string{"tab"},
			check: func(t *testing.T, m *previewModel) {
				if m.focus.WindowID != 2 {
					t.Errorf("focus = %d, want 2", m.focus.WindowID)
				}
				if tree.MostRecentWindowRecursive(m.ws.RootTilingContainer()) != m.focus {
					t.Error("focused window should be most recent")
				}
			},
		},
		{
			name: "next workspace",
			keys: []string{"w"},
			check: func(t *testing.T, m *previewModel) {
				if m.ws.Name != "2" || m.focus == nil || m.focus.WindowID != 5 {
					t.Errorf("ws = %q focus = %v", m.ws.Name, m.focus)
				}
				if m.ws.Monitor.ActiveWorkspace != "2" {
					t.Errorf("ActiveWorkspace = %q", m.ws.Monitor.ActiveWorkspace)
				}
			},
		},
		{
			name: "unknown key is ignored",
			keys: []string{"z"},
			check: func(t *testing.T, m *previewModel) {
				if m.focus.WindowID != 1 || m.container().Layout != tree.LayoutTiles {
					t.Error("state changed on unknown key")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestPreview(t)
			press(m, tt.keys...)
			if m.err != nil {
				t.Fatalf("relayout error = %v", m.err)
			}
			tt.check(t, m)
		})
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t)
	if cmd := press(m, "q"); cmd == nil {
		t.Fatal("q should return a command")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := ansi.Strip(m.View())

	for _, want := range []string{"workspace 1 on main", "focus #1 editor", "0,0 500x800", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n"); lines < 10 {
		t.Errorf("View() has %d lines, want the monitor picture", lines)
	}
}

func TestFrameSummary(t *testing.T) {
	if got := frameSummary(geom.Rect{X: 10, Y: 20, Width: 300.4, Height: 200}); got != "10,20 300x200" {
		t.Errorf("frameSummary() = %q", got)
	}
}
