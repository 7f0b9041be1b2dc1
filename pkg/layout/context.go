package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/geometry"
	"github.com/matzehuels/hyprtile/pkg/monitor"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Context is the read-only view a single layout pass works from. It is
// built once per pass by [NewContext] and threaded through every recursive
// call, so a config reload mid-pass cannot change the gaps a pass uses.
type Context struct {
	workspace *tree.Workspace
	gaps      ResolvedGaps
	cfg       config.Config
	monitors  *monitor.Set
	backend   geometry.Backend
	logger    *log.Logger
}

// NewContext snapshots cfg and resolves the gaps of the workspace's
// monitor. monitors is used by the floating-window procedure to find the
// monitor a window currently sits on; a nil set disables monitor
// migration. A nil logger discards output.
func NewContext(ws *tree.Workspace, cfg *config.Config, monitors *monitor.Set, backend geometry.Backend, logger *log.Logger) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Context{
		workspace: ws,
		gaps:      ResolveGaps(cfg.Gaps, ws.Monitor),
		cfg:       *cfg,
		monitors:  monitors,
		backend:   backend,
		logger:    logger,
	}
}

// Workspace returns the workspace being laid out.
func (c *Context) Workspace() *tree.Workspace { return c.workspace }

// Gaps returns the gaps resolved for the workspace's monitor.
func (c *Context) Gaps() ResolvedGaps { return c.gaps }

// Config returns the configuration snapshot.
func (c *Context) Config() config.Config { return c.cfg }

// Logger returns the pass logger; never nil.
func (c *Context) Logger() *log.Logger { return c.logger }
