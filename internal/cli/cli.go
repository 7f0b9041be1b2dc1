// Package cli implements the hyprtile command-line interface.
//
// # Commands
//
//   - layout: run layout passes over a scene file and print or write the frames
//   - tree: draw the container tree of a workspace (text, DOT or SVG)
//   - preview: interactive terminal explorer that re-runs layout on every key
//   - serve: HTTP API around the layout pipeline and snapshot history
//   - config: print the effective or default configuration
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is created once, attached to the command context and handed to the
// pipeline, so layout passes and geometry calls log through it.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/buildinfo"
	"github.com/matzehuels/hyprtile/pkg/cache"
	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/pipeline"
	"github.com/matzehuels/hyprtile/pkg/store"
)

const appName = "hyprtile"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	redisAddr  string
	mongoURI   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "hyprtile computes tiling window layouts",
		Long:         `hyprtile lays out the windows of a tiling window manager desktop. It reads a scene (monitors, workspaces and their container trees), runs layout passes and reports where every window ends up.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/hyprtile/hyprtile.toml)")
	flags.StringVar(&c.redisAddr, "redis", "", "use a Redis result cache at this address")
	flags.StringVar(&c.mongoURI, "mongo", "", "store snapshots in MongoDB at this URI")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default path when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// newRunner creates a pipeline runner for CLI use. Snapshots go to MongoDB
// when --mongo is set and to the local state directory otherwise.
func (c *CLI) newRunner(ctx context.Context, noCache, noSnapshot bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	var st store.Store
	switch {
	case noSnapshot:
	case c.mongoURI != "":
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: c.mongoURI})
		if err != nil {
			_ = ch.Close()
			return nil, err
		}
	default:
		fs, err := store.NewFileStore("")
		if err != nil {
			c.Logger.Warn("snapshots disabled", "err", err)
		} else {
			st = fs
		}
	}
	// Results depend on the engine, so entries never outlive a release.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(ch, keyer, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr, Prefix: appName + ":"})
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
