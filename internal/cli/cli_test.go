package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyprtile/pkg/pipeline"
)

const testSceneJSON = `{
  "monitors": [{"name": "main", "frame": {"x": 0, "y": 0, "width": 1000, "height": 801}, "main": true}],
  "workspaces": [
    {
      "name": "1",
      "monitor": "main",
      "root": {"type": "container", "orientation": "h", "children": [
        {"type": "window", "id": 1, "title": "editor"},
        {"type": "container", "layout": "accordion", "orientation": "v", "children": [
          {"type": "window", "id": 2, "title": "shell"},
          {"type": "window", "id": 3, "title": "logs"}
        ]}
      ]},
      "floating": [{"type": "window", "id": 4, "title": "calc", "frame": {"x": 100, "y": 100, "width": 200, "height": 300}}],
      "focus": 1
    },
    {
      "name": "2",
      "monitor": "main",
      "root": {"type": "container", "children": [{"type": "window", "id": 5, "title": "mail"}]}
    }
  ]
}`

// newTestCLI isolates config, cache and state directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return New(&bytes.Buffer{}, log.InfoLevel)
}

func writeTestScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	want := []string{"layout", "tree", "preview", "serve", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "redis", "mongo"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestRunLayoutJSON(t *testing.T) {
	c := newTestCLI(t)
	input := writeTestScene(t)
	out := filepath.Join(t.TempDir(), "result.json")

	err := c.runLayout(context.Background(), input, pipeline.Options{Passes: 2}, layoutFlags{output: out, format: formatJSON})
	if err != nil {
		t.Fatalf("runLayout() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var res pipeline.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("output is not a result: %v", err)
	}
	editor, ok := res.Frame(1)
	if !ok || editor.X != 0 || editor.Width != 500 || editor.Height != 800 {
		t.Errorf("Frame(1) = %v, %v", editor, ok)
	}
	if calc, _ := res.Frame(4); calc.Width != 200 || calc.Height != 300 {
		t.Errorf("floating window should keep its size, got %v", calc)
	}
	if _, ok := res.Frame(5); ok {
		t.Error("hidden workspace should not be laid out")
	}

	snaps, err := os.ReadDir(filepath.Join(os.Getenv("XDG_STATE_HOME"), appName, "snapshots", "1"))
	if err != nil || len(snaps) != 1 {
		t.Errorf("snapshot files = %d, %v; want 1", len(snaps), err)
	}
}

func TestRunLayoutSVG(t *testing.T) {
	c := newTestCLI(t)
	input := writeTestScene(t)

	if err := c.runLayout(context.Background(), input, pipeline.Options{}, layoutFlags{format: formatSVG, noSnapshot: true}); err != nil {
		t.Fatalf("runLayout() error = %v", err)
	}
	data, err := os.ReadFile(strings.TrimSuffix(input, ".json") + ".layout.svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `id="window-4"`) {
		t.Error("SVG should draw the floating window")
	}
}

func TestRunLayoutErrors(t *testing.T) {
	c := newTestCLI(t)
	input := writeTestScene(t)

	tests := []struct {
		name  string
		input string
		flags layoutFlags
	}{
		{name: "bad format", input: input, flags: layoutFlags{format: "png"}},
		{name: "missing scene", input: filepath.Join(t.TempDir(), "missing.json"), flags: layoutFlags{format: formatJSON}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.runLayout(context.Background(), tt.input, pipeline.Options{}, tt.flags); err == nil {
				t.Error("runLayout() error = nil, want error")
			}
		})
	}
}

func TestLoadConfigFlag(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "hyprtile.toml")
	if err := os.WriteFile(path, []byte("accordion-padding = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.configPath = path

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.AccordionPadding != 7 {
		t.Errorf("AccordionPadding = %v, want 7", cfg.AccordionPadding)
	}
}
