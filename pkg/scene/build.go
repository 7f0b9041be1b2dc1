package scene

import (
	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/geometry"
	"github.com/matzehuels/hyprtile/pkg/monitor"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Desktop is a built scene.
type Desktop struct {
	Monitors   *monitor.Set
	Workspaces []*tree.Workspace

	// Backend holds the frames recorded in the scene and receives the
	// frames applied by layout passes.
	Backend *geometry.Simulator

	windows map[uint32]*tree.Window
}

// Workspace looks a workspace up by name.
func (d *Desktop) Workspace(name string) (*tree.Workspace, bool) {
	for _, ws := range d.Workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return nil, false
}

// Window looks a window up by id.
func (d *Desktop) Window(id uint32) (*tree.Window, bool) {
	w, ok := d.windows[id]
	return w, ok
}

// ActiveWorkspaces returns the workspaces currently shown on a monitor, in
// monitor order.
func (d *Desktop) ActiveWorkspaces() []*tree.Workspace {
	var out []*tree.Workspace
	for _, m := range d.Monitors.All() {
		if ws, ok := d.Workspace(m.ActiveWorkspace); ok {
			out = append(out, ws)
		}
	}
	return out
}

type builder struct {
	cfg     *config.Config
	sim     *geometry.Simulator
	windows map[uint32]*tree.Window
}

// Build validates sc and creates its trees. cfg supplies the default root
// container layout and orientation; nil means the defaults.
//
// A monitor without an active workspace shows the first workspace assigned
// to it.
func Build(sc *Scene, cfg *config.Config) (*Desktop, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(sc.Monitors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no monitors")
	}

	monitors := make([]*monitor.Monitor, 0, len(sc.Monitors))
	seen := make(map[string]bool)
	for _, ms := range sc.Monitors {
		if ms.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidScene, "monitor without a name")
		}
		if seen[ms.Name] {
			return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate monitor %q", ms.Name)
		}
		seen[ms.Name] = true
		if ms.Frame.Width <= 0 || ms.Frame.Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "monitor %q has an empty frame", ms.Name)
		}
		visible := ms.Frame
		if ms.Visible != nil {
			visible = *ms.Visible
		}
		monitors = append(monitors, &monitor.Monitor{
			Name:            ms.Name,
			Frame:           ms.Frame,
			Visible:         visible,
			Main:            ms.Main,
			ActiveWorkspace: ms.ActiveWorkspace,
		})
	}
	set := monitor.NewSet(monitors...)

	b := &builder{cfg: cfg, sim: geometry.NewSimulator(), windows: make(map[uint32]*tree.Window)}
	d := &Desktop{Monitors: set, Backend: b.sim, windows: b.windows}

	for _, wss := range sc.Workspaces {
		if err := errors.ValidateName(wss.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "workspace name")
		}
		if _, dup := d.Workspace(wss.Name); dup {
			return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate workspace %q", wss.Name)
		}
		m, ok := set.ByName(wss.Monitor)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "workspace %q: unknown monitor %q", wss.Name, wss.Monitor)
		}
		ws, err := b.workspace(wss, m)
		if err != nil {
			return nil, err
		}
		d.Workspaces = append(d.Workspaces, ws)
		if m.ActiveWorkspace == "" {
			m.ActiveWorkspace = ws.Name
		}
	}

	for _, m := range set.All() {
		if m.ActiveWorkspace == "" {
			continue
		}
		ws, ok := d.Workspace(m.ActiveWorkspace)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "monitor %q: unknown active workspace %q", m.Name, m.ActiveWorkspace)
		}
		if ws.Monitor != m {
			return nil, errors.New(errors.ErrCodeInvalidScene, "monitor %q shows workspace %q assigned to %q", m.Name, ws.Name, ws.Monitor.Name)
		}
	}
	return d, nil
}

func (b *builder) workspace(wss Workspace, m *monitor.Monitor) (*tree.Workspace, error) {
	root := wss.Root
	if root.Type == "" {
		root.Type = TypeContainer
	}
	if root.Type != TypeContainer {
		return nil, errors.New(errors.ErrCodeInvalidScene, "workspace %q: root must be a container, got %q", wss.Name, root.Type)
	}

	layoutName := root.Layout
	if layoutName == "" {
		layoutName = b.cfg.DefaultRootContainerLayout
	}
	layout, err := tree.ParseLayout(layoutName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "workspace %q", wss.Name)
	}
	orientation := b.cfg.RootOrientation(m)
	if root.Orientation != "" {
		if orientation, err = geom.ParseOrientation(root.Orientation); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "workspace %q", wss.Name)
		}
	}

	ws := tree.NewWorkspace(wss.Name, m, layout, orientation)
	rc := ws.RootTilingContainer()
	rc.SplitRatio = root.SplitRatio
	if err := b.children(rc, root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "workspace %q", wss.Name)
	}

	for _, fs := range wss.Floating {
		if fs.Type != "" && fs.Type != TypeWindow {
			return nil, errors.New(errors.ErrCodeInvalidScene, "workspace %q: floating entries must be windows", wss.Name)
		}
		w, err := b.window(fs)
		if err != nil {
			return nil, err
		}
		if err := tree.Attach(w, ws, -1, 0); err != nil {
			return nil, err
		}
	}
	for _, ss := range wss.System {
		n, err := b.node(ss)
		if err != nil {
			return nil, err
		}
		if _, ok := n.(*tree.SystemContainer); !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "workspace %q: system entries must be system containers", wss.Name)
		}
		if err := tree.Attach(n, ws, -1, 0); err != nil {
			return nil, err
		}
	}

	if wss.Focus != 0 {
		w, ok := b.windows[wss.Focus]
		if !ok || tree.WorkspaceOf(w) != ws {
			return nil, errors.New(errors.ErrCodeInvalidScene, "workspace %q: focus window %d not found", wss.Name, wss.Focus)
		}
		tree.MarkAsMostRecentChild(w)
	}
	return ws, nil
}

func (b *builder) node(ns Node) (tree.Node, error) {
	switch ns.Type {
	case TypeWindow:
		if len(ns.Children) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "window %d has children", ns.ID)
		}
		return b.window(ns)

	case TypeContainer:
		layout, err := tree.ParseLayout(defaultString(ns.Layout, config.LayoutTiles))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container")
		}
		orientation, err := geom.ParseOrientation(defaultString(ns.Orientation, "h"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container")
		}
		c := tree.NewTilingContainer(orientation, layout)
		c.SplitRatio = ns.SplitRatio
		if err := b.children(c, ns); err != nil {
			return nil, err
		}
		return c, nil

	case TypeSystem:
		role, err := tree.ParseSystemRole(ns.Role)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "system container")
		}
		s := tree.NewSystemContainer(role)
		for _, cs := range ns.Children {
			w, err := b.window(cs)
			if err != nil {
				return nil, err
			}
			if err := tree.Attach(w, s, -1, 0); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "unknown node type %q", ns.Type)
}

func (b *builder) children(c *tree.TilingContainer, ns Node) error {
	if ns.SplitRatio < 0 || ns.SplitRatio >= 1 {
		return errors.New(errors.ErrCodeInvalidScene, "split_ratio must be in [0, 1), got %v", ns.SplitRatio)
	}
	for _, cs := range ns.Children {
		if cs.Weight < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "negative weight %v", cs.Weight)
		}
		child, err := b.node(cs)
		if err != nil {
			return err
		}
		if err := tree.Attach(child, c, -1, cs.Weight); err != nil {
			return err
		}
	}
	if ns.MRU != nil {
		i := *ns.MRU
		if i < 0 || i >= len(c.Children()) {
			return errors.New(errors.ErrCodeInvalidScene, "mru index %d out of range for %d children", i, len(c.Children()))
		}
		tree.MarkAsMostRecentChild(c.Children()[i])
	}
	return nil
}

func (b *builder) window(ns Node) (*tree.Window, error) {
	if ns.ID == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "window without an id")
	}
	if _, dup := b.windows[ns.ID]; dup {
		return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate window id %d", ns.ID)
	}
	w := tree.NewWindow(ns.ID, ns.Title)
	w.App = ns.App
	w.Fullscreen = ns.Fullscreen
	w.Manipulated = ns.Manipulated
	if ns.Frame != nil {
		b.sim.Place(ns.ID, *ns.Frame)
	}
	b.windows[ns.ID] = w
	return w, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
