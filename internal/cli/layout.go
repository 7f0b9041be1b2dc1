package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/pipeline"
	"github.com/matzehuels/hyprtile/pkg/render/frames"
	"github.com/matzehuels/hyprtile/pkg/render/term"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

// Output formats of the layout command.
const (
	formatText = "text"
	formatJSON = "json"
	formatSVG  = "svg"
)

type layoutFlags struct {
	output     string
	format     string
	noCache    bool
	noSnapshot bool
	cols, rows int
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [scene.json]",
		Short: "Run layout passes over a scene",
		Long: `Run layout passes over a scene.

The scene file (JSON, or TOML by extension) describes monitors, workspaces
and their container trees. Every workspace shown on a monitor is laid out
and the resulting frames are printed as a table with a picture of each
monitor. Use -f json for the full result, or -f svg for a drawing.

Results are cached locally and each run is saved as a snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout for text, <input>.layout.<ext> otherwise)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, json, svg")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.noSnapshot, "no-snapshot", false, "do not save a snapshot")
	cmd.Flags().IntVar(&flags.cols, "cols", 80, "width of the terminal picture")
	cmd.Flags().IntVar(&flags.rows, "rows", 20, "height of the terminal picture")
	cmd.Flags().IntVarP(&opts.Passes, "passes", "n", pipeline.DefaultPasses, "layout passes per workspace")
	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "lay out only this workspace")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags layoutFlags) error {
	switch flags.format {
	case formatText, formatJSON, formatSVG:
	default:
		return fmt.Errorf("unknown format %q (want text, json or svg)", flags.format)
	}

	sc, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.Config = cfg
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, flags.noCache, flags.noSnapshot)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(opts.Logger)
	spinner := newSpinner(ctx, "Laying out windows...")
	spinner.Start()
	res, err := runner.Execute(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d workspaces", len(res.Stats)))

	if flags.format == formatText && flags.output == "" {
		fmt.Println(framesTable(res))
		canvas := canvasOf(sc, res)
		for _, m := range canvas.Monitors {
			if m.ActiveWorkspace == "" {
				continue
			}
			fmt.Println(StyleTitle.Render(fmt.Sprintf("%s [%s]", m.Name, m.ActiveWorkspace)))
			fmt.Println(term.Render(canvas, m, flags.cols, flags.rows))
		}
		fmt.Println(statsLine(res, opts.Passes))
		return nil
	}

	data, err := encodeResult(sc, res, flags.format)
	if err != nil {
		return err
	}
	out := flags.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout." + flags.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	fmt.Println(statsLine(res, opts.Passes))
	printNextStep("Tree", appName+" tree "+input)
	return nil
}

func encodeResult(sc *scene.Scene, res *pipeline.Result, format string) ([]byte, error) {
	switch format {
	case formatSVG:
		return frames.RenderSVG(canvasOf(sc, res)), nil
	case formatText:
		var sb strings.Builder
		sb.WriteString(framesTable(res))
		sb.WriteString("\n")
		return []byte(sb.String()), nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return append(data, '\n'), nil
}

func canvasOf(sc *scene.Scene, res *pipeline.Result) frames.Canvas {
	fm := make(map[uint32]geom.Rect, len(res.Frames))
	for _, f := range res.Frames {
		fm[f.WindowID] = f.Rect
	}
	return frames.NewCanvas(sc, res.Report, fm)
}
