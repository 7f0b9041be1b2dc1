package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/pipeline"
	"github.com/matzehuels/hyprtile/pkg/render/nodelink"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

const formatDOT = "dot"

type treeFlags struct {
	output    string
	format    string
	workspace string
	detailed  bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "tree [scene.json]",
		Short: "Show the container tree of a workspace",
		Long: `Show the container tree of a workspace after one layout pass.

Text output prints an indented tree with the rect each node received.
DOT and SVG output draw the tree as a node-link diagram with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, dot, svg")
	cmd.Flags().StringVarP(&flags.workspace, "workspace", "w", "", "workspace to show (default: the first one shown on a monitor)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include weights and rects in diagram labels")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, flags treeFlags) error {
	sc, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner := pipeline.NewRunner(nil, nil, nil, c.Logger)
	res, err := runner.Execute(ctx, sc, pipeline.Options{Config: cfg, Workspace: flags.workspace})
	if err != nil {
		return err
	}
	ws, ok := pickWorkspace(res.Report, flags.workspace)
	if !ok {
		return fmt.Errorf("scene has no workspace to show")
	}

	var data []byte
	switch flags.format {
	case formatText:
		data = []byte(treeText(ws))
	case formatDOT:
		data = []byte(nodelink.ToDOT(ws, nodelink.Options{Detailed: flags.detailed}))
	case formatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(ws, nodelink.Options{Detailed: flags.detailed}))
		if err != nil {
			return fmt.Errorf("render tree: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want text, dot or svg)", flags.format)
	}

	if flags.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", flags.output, err)
	}
	printSuccess("Tree written")
	printFile(flags.output)
	return nil
}

// pickWorkspace returns the named workspace, or the first active one.
func pickWorkspace(r scene.Report, name string) (scene.WorkspaceReport, bool) {
	for _, ws := range r.Workspaces {
		if (name != "" && ws.Name == name) || (name == "" && ws.Active) {
			return ws, true
		}
	}
	return scene.WorkspaceReport{}, false
}

// treeText prints one node per line, indented by depth.
func treeText(ws scene.WorkspaceReport) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("workspace "+ws.Name) + StyleDim.Render(" on "+ws.Monitor) + "\n")
	for _, n := range ws.Nodes {
		indent := strings.Repeat("  ", n.Depth+1)
		var label string
		switch n.Kind {
		case "container":
			label = fmt.Sprintf("%s %s", n.Layout, n.Orientation)
		case "window":
			label = fmt.Sprintf("#%d %s", n.WindowID, n.Title)
			if n.Floating {
				label += styleFloating.Render(" floating")
			}
			if n.Fullscreen {
				label += StyleWarning.Render(" fullscreen")
			}
		default:
			label = StyleDim.Render(n.Layout + " (system)")
		}
		sb.WriteString(indent + strings.TrimSpace(label))
		if n.Physical != nil {
			sb.WriteString(" " + StyleDim.Render(n.Physical.String()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
