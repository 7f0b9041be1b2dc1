package scene

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

func loadTestScene(t *testing.T, name string) *Desktop {
	t.Helper()
	sc, err := ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", name, err)
	}
	d, err := Build(sc, nil)
	if err != nil {
		t.Fatalf("Build(%s) error = %v", name, err)
	}
	return d
}

func TestBuildTwoMonitors(t *testing.T) {
	d := loadTestScene(t, "two-monitors.json")

	if d.Monitors.Len() != 2 {
		t.Fatalf("monitors = %d, want 2", d.Monitors.Len())
	}
	if len(d.Workspaces) != 3 {
		t.Fatalf("workspaces = %d, want 3", len(d.Workspaces))
	}
	dell, _ := d.Monitors.ByName("dell u2720q")
	if dell.Visible != dell.Frame {
		t.Error("visible rect should default to the frame")
	}

	active := d.ActiveWorkspaces()
	if len(active) != 2 || active[0].Name != "1" || active[1].Name != "2" {
		t.Errorf("ActiveWorkspaces() = %v", active)
	}

	ws1, _ := d.Workspace("1")
	root := ws1.RootTilingContainer()
	if len(root.Children()) != 2 {
		t.Fatalf("root children = %d", len(root.Children()))
	}
	if w := root.Children()[0].Weight(geom.H); w != 1008 {
		t.Errorf("weight = %v, want 1008", w)
	}
	inner := root.Children()[1].(*tree.TilingContainer)
	if inner.Layout != tree.LayoutAccordion || inner.Orientation != geom.V {
		t.Errorf("inner = %v", inner)
	}
	term, _ := d.Window(3)
	if tree.MostRecentChild(inner) != tree.Node(term) {
		t.Error("mru index not applied")
	}
	editor, _ := d.Window(1)
	if tree.MostRecentWindowRecursive(root) != editor {
		t.Error("focus should make the editor the most recent window")
	}

	if fw := ws1.FloatingWindows(); len(fw) != 1 || fw[0].WindowID != 4 {
		t.Errorf("floating = %v", fw)
	}
	if r, ok := d.Backend.Frame(4); !ok || r.Width != 300 {
		t.Errorf("floating frame not seeded: %v %v", r, ok)
	}

	ws2, _ := d.Workspace("2")
	if ws2.RootTilingContainer().Layout != tree.LayoutHyprland {
		t.Error("workspace 2 should be hyprland")
	}
	if ws2.RootTilingContainer().Orientation != geom.H {
		t.Error("landscape monitor should default to horizontal")
	}
}

func TestBuildTOML(t *testing.T) {
	d := loadTestScene(t, "single.toml")
	ws, ok := d.Workspace("1")
	if !ok {
		t.Fatal("workspace 1 missing")
	}
	if ws.RootTilingContainer().Orientation != geom.V {
		t.Error("orientation not decoded")
	}
	w, _ := d.Window(2)
	if !w.Fullscreen {
		t.Error("fullscreen not decoded")
	}
	if m := d.Monitors.Main(); m == nil || m.ActiveWorkspace != "1" {
		t.Errorf("main monitor should show workspace 1: %v", m)
	}
}

func TestBuildAndReport(t *testing.T) {
	d := loadTestScene(t, "two-monitors.json")
	cfg := config.Default()

	for _, ws := range d.ActiveWorkspaces() {
		lc := layout.NewContext(ws, cfg, d.Monitors, d.Backend, nil)
		if _, err := layout.LayoutWorkspace(context.Background(), lc); err != nil {
			t.Fatalf("LayoutWorkspace(%s) error = %v", ws.Name, err)
		}
	}

	r := NewReport(d)
	if len(r.Workspaces) != 3 {
		t.Fatalf("report workspaces = %d", len(r.Workspaces))
	}
	if !r.Workspaces[0].Active || r.Workspaces[2].Active {
		t.Error("active flags wrong")
	}
	if r.Workspaces[2].Physical != nil {
		t.Error("inactive empty workspace should have no rect")
	}

	editor, ok := r.Window(1)
	if !ok || editor.Physical == nil {
		t.Fatalf("editor report = %+v, %v", editor, ok)
	}
	if editor.Physical.Width != 1008 || editor.Physical.Y != 33 || editor.Physical.Height != 948 {
		t.Errorf("editor = %v", editor.Physical)
	}
	if editor.Depth != 1 || editor.Weight != 1008 {
		t.Errorf("editor depth/weight = %d/%v", editor.Depth, editor.Weight)
	}

	// The calculator sits on the DELL, which shows workspace 2, so it is
	// pulled back to the built-in display at the same relative position.
	calc, _ := d.Backend.Frame(4)
	if math.Abs(calc.X-(2000-1512)/2560.0*1512) > 1e-9 || calc.Width != 300 {
		t.Errorf("calculator frame = %v", calc)
	}
	if fl, _ := r.Window(4); !fl.Floating || fl.Physical != nil {
		t.Errorf("floating report = %+v", fl)
	}

	if _, ok := d.Backend.Frame(5); ok {
		t.Error("minimized window should never be framed")
	}
	if _, ok := r.Window(99); ok {
		t.Error("Report.Window(99) should miss")
	}
}

func TestBuildErrors(t *testing.T) {
	mon := `"monitors": [{"name": "m", "frame": {"width": 100, "height": 100}}]`
	tests := []struct {
		name string
		json string
	}{
		{"no monitors", `{"workspaces": []}`},
		{"empty frame", `{"monitors": [{"name": "m", "frame": {}}]}`},
		{"duplicate monitor", `{"monitors": [{"name": "m", "frame": {"width": 1, "height": 1}}, {"name": "m", "frame": {"width": 1, "height": 1}}]}`},
		{"unknown monitor", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "x"}]}`},
		{"bad workspace name", `{` + mon + `, "workspaces": [{"name": "a/b", "monitor": "m"}]}`},
		{"duplicate workspace", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m"}, {"name": "1", "monitor": "m"}]}`},
		{"window root", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"type": "window", "id": 1}}]}`},
		{"unknown type", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"children": [{"type": "panel"}]}}]}`},
		{"bad layout", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"layout": "grid"}}]}`},
		{"bad orientation", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"orientation": "z"}}]}`},
		{"window without id", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"children": [{"type": "window"}]}}]}`},
		{"duplicate window", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"children": [{"type": "window", "id": 1}, {"type": "window", "id": 1}]}}]}`},
		{"window children", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"children": [{"type": "window", "id": 1, "children": [{"type": "window", "id": 2}]}]}}]}`},
		{"mru out of range", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"mru": 3, "children": [{"type": "window", "id": 1}]}}]}`},
		{"negative weight", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"children": [{"type": "window", "id": 1, "weight": -1}]}}]}`},
		{"bad split ratio", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "root": {"split_ratio": 1.5}}]}`},
		{"bad role", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "system": [{"type": "system", "role": "dock"}]}]}`},
		{"floating container", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "floating": [{"type": "container"}]}]}`},
		{"unknown focus", `{` + mon + `, "workspaces": [{"name": "1", "monitor": "m", "focus": 9}]}`},
		{"unknown active", `{"monitors": [{"name": "m", "frame": {"width": 1, "height": 1}, "active_workspace": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Unmarshal([]byte(tt.json), FormatJSON)
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			_, err = Build(sc, nil)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Build() error = %v, want INVALID_SCENE", err)
			}
		})
	}
}

func TestUnmarshalRejectsUnknownFields(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"monitors": [], "wat": 1}`), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("json: error = %v, want INVALID_SCENE", err)
	}
	if _, err := Unmarshal([]byte("wat = 1\n"), FormatTOML); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("toml: error = %v, want INVALID_SCENE", err)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	sc, err := ReadFile(filepath.Join("testdata", "two-monitors.json"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.toml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(sc, path); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		back, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if _, err := Build(back, nil); err != nil {
			t.Errorf("Build(%s) error = %v", name, err)
		}
		if len(back.Workspaces) != 3 || back.Workspaces[1].Root.Layout != "hyprland" {
			t.Errorf("%s round trip lost data", name)
		}
	}
}

func TestFormatOf(t *testing.T) {
	if FormatOf("a.TOML") != FormatTOML || FormatOf("a.json") != FormatJSON || FormatOf("a") != FormatJSON {
		t.Error("FormatOf() wrong")
	}
}

func TestRead(t *testing.T) {
	sc, err := Read(strings.NewReader(`{"monitors": [{"name": "m", "frame": {"width": 10, "height": 10}}]}`))
	if err != nil || len(sc.Monitors) != 1 {
		t.Errorf("Read() = %v, %v", sc, err)
	}
	data, err := Marshal(sc)
	if err != nil || !strings.Contains(string(data), `"name": "m"`) {
		t.Errorf("Marshal() = %s, %v", data, err)
	}
}

func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}
	cfg := config.Default()
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			d, err := Build(sc, cfg)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			for _, ws := range d.ActiveWorkspaces() {
				lc := layout.NewContext(ws, cfg, d.Monitors, d.Backend, nil)
				if _, err := layout.LayoutWorkspace(context.Background(), lc); err != nil {
					t.Errorf("LayoutWorkspace(%s) error = %v", ws.Name, err)
				}
			}
		})
	}
}
