package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	figio "github.com/matzehuels/spiramirabilis/pkg/io"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// layoutCommand creates the layout command for composing a figure to JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		angle  int
		fit    string
	)

	cmd := &cobra.Command{
		Use:   "layout <name>",
		Short: "Compose a figure and export it as JSON",
		Long: `Compose a figure and export it as JSON.

The name is an annotated example (Example_02), a [[recipe]] from the config
file, a template (Spiral_Phi_090) or a bare constant drawn at --angle.

The output is a figure.json file (same format as 'render -f json') that can
be rendered to SVG/PNG/PDF using the 'visualize' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], angle, fit, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	cmd.Flags().IntVarP(&angle, "angle", "a", 90, "turn angle for a bare constant")
	cmd.Flags().StringVar(&fit, "fit", "", "page fit override: auto or snap")

	return cmd
}

// runLayout resolves the recipe, composes it, and writes the figure JSON.
func (c *CLI) runLayout(ctx context.Context, name string, angle int, fit, output string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	recipe, err := resolveRecipe(cfg, name, angle)
	if err != nil {
		return err
	}

	opts := c.baseOptions(cfg)
	if fit != "" {
		mode, err := spiral.ParseFitMode(fit)
		if err != nil {
			return err
		}
		opts.Fit = &mode
	}

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	fig, err := runner.Compose(ctx, recipe, opts)
	if err != nil {
		return fmt.Errorf("compose %s: %w", recipe.Name, err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = recipe.Name + ".json"
	}
	if err := figio.ExportFigure(fig, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printFigure(fig, false)
	printHint("Render it with", appName+" visualize "+outputPath)

	return nil
}
