package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/render/frames"
	"github.com/matzehuels/hyprtile/pkg/render/term"
	"github.com/matzehuels/hyprtile/pkg/scene"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

const ratioStep = 0.05

var previewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [scene.json]",
		Short: "Explore a scene interactively",
		Long: `Explore a scene interactively.

The focused window's container can be switched between layouts and
orientations, windows can be focused and made fullscreen, and the scene
is laid out again after every key:

  tab      focus next window        w   show next workspace
  t a h    tiles/accordion/hyprland  o   flip orientation
  f        toggle fullscreen        + - adjust hyprland ratio
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			m, err := newPreviewModel(cmd.Context(), sc, cfg)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model of the preview command. It owns a
// live desktop and lays out the shown workspace after every change.
type previewModel struct {
	ctx     context.Context
	scene   *scene.Scene
	cfg     *config.Config
	desktop *scene.Desktop
	logger  *log.Logger

	ws    *tree.Workspace
	focus *tree.Window
	stats layout.Stats
	err   error

	width, height int
}

func newPreviewModel(ctx context.Context, sc *scene.Scene, cfg *config.Config) (*previewModel, error) {
	d, err := scene.Build(sc, cfg)
	if err != nil {
		return nil, err
	}
	active := d.ActiveWorkspaces()
	if len(active) == 0 {
		return nil, fmt.Errorf("scene has no workspace shown on a monitor")
	}
	m := &previewModel{
		ctx:     ctx,
		scene:   sc,
		cfg:     cfg,
		desktop: d,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		width:   80,
		height:  24,
	}
	m.show(active[0])
	return m, nil
}

func (m *previewModel) show(ws *tree.Workspace) {
	m.ws = ws
	ws.Monitor.ActiveWorkspace = ws.Name
	m.focus = tree.MostRecentWindowRecursive(ws.RootTilingContainer())
	if m.focus == nil {
		if fw := ws.FloatingWindows(); len(fw) > 0 {
			m.focus = fw[0]
		}
	}
	m.relayout()
}

func (m *previewModel) relayout() {
	lc := layout.NewContext(m.ws, m.cfg, m.desktop.Monitors, m.desktop.Backend, m.logger)
	m.stats, m.err = layout.LayoutWorkspace(m.ctx, lc)
}

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focusNext()
		case "w":
			m.nextWorkspace()
			return m, nil
		case "t":
			m.setLayout(tree.LayoutTiles)
		case "a":
			m.setLayout(tree.LayoutAccordion)
		case "h":
			m.setLayout(tree.LayoutHyprland)
		case "o":
			if c := m.container(); c != nil {
				c.Orientation = c.Orientation.Opposite()
			}
		case "f":
			if m.focus != nil {
				m.focus.Fullscreen = !m.focus.Fullscreen
			}
		case "+", "=":
			m.adjustRatio(ratioStep)
		case "-":
			m.adjustRatio(-ratioStep)
		default:
			return m, nil
		}
		m.relayout()
	}
	return m, nil
}

// container returns the tiling container holding the focused window.
func (m *previewModel) container() *tree.TilingContainer {
	if m.focus == nil {
		return nil
	}
	c, _ := m.focus.Parent().(*tree.TilingContainer)
	return c
}

func (m *previewModel) setLayout(l tree.Layout) {
	if c := m.container(); c != nil {
		c.Layout = l
	}
}

func (m *previewModel) adjustRatio(delta float64) {
	c := m.container()
	if c == nil {
		return
	}
	r := c.SplitRatio
	if r <= 0 {
		r = m.cfg.HyprlandRatio
	}
	c.SplitRatio = layout.ClampRatio(r + delta)
}

func (m *previewModel) focusNext() {
	windows := tree.AllWindows(m.ws)
	if len(windows) == 0 {
		return
	}
	next := windows[0]
	for i, w := range windows {
		if w == m.focus {
			next = windows[(i+1)%len(windows)]
			break
		}
	}
	m.focus = next
	tree.MarkAsMostRecentChild(next)
}

// nextWorkspace shows the next workspace, in scene order.
func (m *previewModel) nextWorkspace() {
	all := m.desktop.Workspaces
	for i, ws := range all {
		if ws == m.ws {
			m.show(all[(i+1)%len(all)])
			return
		}
	}
}

func (m *previewModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("workspace %s on %s", m.ws.Name, m.ws.Monitor.Name)
	b.WriteString(StyleTitle.Render(title))
	if m.focus != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  focus #%d %s", m.focus.WindowID, m.focus.Title)))
		if c := m.container(); c != nil {
			b.WriteString(StyleDim.Render(fmt.Sprintf("  in %s", c)))
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}

	fm := m.desktop.Backend.Frames()
	canvas := frames.NewCanvas(m.scene, scene.NewReport(m.desktop), fm)
	if mon, ok := canvas.Monitor(m.ws.Monitor.Name); ok {
		b.WriteString(term.Render(canvas, mon, m.width, max(2, m.height-4)))
		b.WriteString("\n")
	}

	if m.focus != nil {
		if r, ok := fm[m.focus.WindowID]; ok {
			b.WriteString(StyleDim.Render(frameSummary(r)) + "  ")
		}
	}
	b.WriteString(previewHelpStyle.Render("tab focus · t/a/h layout · o orient · f full · +/- ratio · w workspace · q quit"))
	return b.String()
}

func frameSummary(r geom.Rect) string {
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
}
