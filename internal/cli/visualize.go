package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	figio "github.com/matzehuels/spiramirabilis/pkg/io"
	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a figure.json.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output string
		flags  renderFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize <figure.json>",
		Short: "Render a figure exported by 'layout'",
		Long: `Render a figure exported by 'layout'.

The figure contains every path and paint, so this step is purely about
rendering: no spiral is sampled and the config file's styles do not apply.

With --cache, results are kept in the local cache and reused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger}
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	flags.register(cmd)

	return cmd
}

// runVisualize loads the figure and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	fig, err := figio.ImportFigure(input)
	if err != nil {
		return fmt.Errorf("load figure %s: %w", input, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+fig.Name, 0)
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input))
	}
	dir, name := splitOutput(output, fig.Name)
	paths, err := pipeline.WriteArtifacts(dir, name, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(fig.Name))
	for _, p := range paths {
		printFile(p)
	}
	printFigure(fig, cacheHit)
	return nil
}
