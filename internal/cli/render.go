package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/store"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	engineOpts
	output     string // output file, "-" for stdout
	format     string // "svg" or "json"
	saveLayout string // optional path for the laid-out diagram file
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: store.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram file to SVG or a JSON snapshot",
		Long: `Render a diagram file (JSON) to a standalone SVG document, or to a JSON
snapshot holding the laid-out diagram and its rendered fragments.

Edges whose source or target names no node fail the render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, json")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title for unnamed diagrams")
	cmd.Flags().StringVar(&opts.layoutMode, "layout", "", "layout mode: overwrite, preserve (default from config)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "minimum frame width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "minimum frame height (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.saveLayout, "save-layout", "", "also write the diagram with its computed positions to this file")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := diagram.ReadFile(path)
	if err != nil {
		return err
	}

	st, cc, err := c.newStore(ctx, opts.engineOpts)
	if err != nil {
		return err
	}
	defer cc.Close()

	if _, err := st.Create(ctx, d.Snapshot()); err != nil {
		return err
	}
	out, err := st.Render(ctx, d.ID, opts.format)
	if err != nil {
		if errors.Is(err, errors.ErrCodeIntegrity) {
			printError("%s has a dangling edge", path)
		}
		return err
	}

	if opts.saveLayout != "" {
		if err := saveLayout(ctx, st, d.ID, opts.saveLayout); err != nil {
			return err
		}
	}

	output := opts.output
	if output == "" {
		output = outputPath(path, out.Format)
	}
	if output == "-" {
		_, err := os.Stdout.Write(out.Data)
		return err
	}
	if err := os.WriteFile(output, out.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done("Rendered " + path)
	printSuccess("Rendered %s", StyleHighlight.Render(diagramLabel(d)))
	printStats(d.NodeCount(), d.EdgeCount())
	printFile(output)
	if opts.saveLayout != "" {
		printFile(opts.saveLayout)
	}
	return nil
}

// saveLayout writes the stored diagram, positions included, as a diagram
// file. Rendering it again with --layout preserve reproduces the output.
func saveLayout(ctx context.Context, st *store.Store, id, path string) error {
	snap, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	laid, err := diagram.FromSpec(snap.Spec)
	if err != nil {
		return err
	}
	return diagram.WriteFile(laid, path)
}

// outputPath derives the output file from the input file. JSON snapshots
// get a ".snapshot.json" suffix so they never overwrite the input.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if format == store.FormatJSON {
		return base + ".snapshot.json"
	}
	return base + "." + format
}

func diagramLabel(d *diagram.Diagram) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
