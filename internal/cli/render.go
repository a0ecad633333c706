package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/config"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// renderFlags are the output flags shared by every command that renders.
type renderFlags struct {
	formats   string
	dpi       float64
	precision int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), pdf, png, json (comma-separated)")
	cmd.Flags().Float64Var(&f.dpi, "dpi", pipeline.DefaultDPI, "PNG resolution in dots per inch")
	cmd.Flags().IntVar(&f.precision, "precision", pipeline.DefaultSVGPrecision, "decimals in SVG coordinates")
}

// apply copies the flags onto opts and validates the formats.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.DPI = f.dpi
	opts.SVGPrecision = f.precision
	return pipeline.ValidateFormats(opts.Formats)
}

// renderCommand creates the render command for a single template figure.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		angle  int
		fit    string
		output string
		flags  renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render <constant>",
		Short: "Render the template spiral of one constant",
		Long: `Render the template spiral of one constant at one turn angle.

The constant is a built-in name (see 'list constants') or one added with
[[constant]] in the config file. The figure carries the logo, the caption
and a white cutting border.

With --cache, rendered artifacts are kept in the local cache and reused.`,
		Example: `  spiramirabilis render Phi --angle 90
  spiramirabilis render E --angle 270 -f svg,pdf -o out/e270`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], angle, fit, output, flags)
		},
	}

	cmd.Flags().IntVarP(&angle, "angle", "a", 90, "turn angle in degrees, in (0, 360]")
	cmd.Flags().StringVar(&fit, "fit", "", "page fit: auto (default) or snap")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: ./<figure name>)")
	flags.register(cmd)

	return cmd
}

// runRender composes and renders the template for constant at angle.
func (c *CLI) runRender(ctx context.Context, constant string, angle int, fit, output string, flags renderFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	k, err := cfg.LookupConstant(constant)
	if err != nil {
		return err
	}
	if err := errors.ValidateAngle(angle); err != nil {
		return err
	}

	opts := c.baseOptions(cfg)
	if err := flags.apply(&opts); err != nil {
		return err
	}
	if fit != "" {
		mode, err := spiral.ParseFitMode(fit)
		if err != nil {
			return err
		}
		opts.Fit = &mode
	}

	return c.renderOne(ctx, catalog.Template(k, angle, cfg.Settings()), opts, output)
}

// renderOne runs the pipeline for one recipe and writes its artifacts.
func (c *CLI) renderOne(ctx context.Context, recipe figure.Recipe, opts pipeline.Options, output string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Drawing "+recipe.Name, 0)
	spinner.Start()

	result, err := runner.Execute(ctx, recipe, opts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return err
	}
	spinner.Stop()

	dir, name := splitOutput(output, recipe.Name)
	paths, err := pipeline.WriteArtifacts(dir, name, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(recipe.Name))
	for _, p := range paths {
		printFile(p)
	}
	printFigure(result.Figure, result.CacheInfo.RenderHit)
	return nil
}

// splitOutput turns an -o value into a directory and a base name. An empty
// output writes <name>.<format> to the working directory; a known format
// extension on output is dropped.
func splitOutput(output, name string) (string, string) {
	if output == "" {
		return ".", name
	}
	if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return filepath.Dir(output), filepath.Base(output)
}

// resolveRecipe finds a figure by name: an annotated example, a configured
// [[recipe]], a template name such as "Spiral_Phi_090", or a bare constant
// drawn at angle.
func resolveRecipe(cfg *config.Config, name string, angle int) (figure.Recipe, error) {
	set := cfg.Settings()
	if r, err := catalog.Example(name, set); err == nil {
		return r, nil
	}

	extra, err := cfg.FigureRecipes()
	if err != nil {
		return figure.Recipe{}, err
	}
	for _, r := range extra {
		if r.Name == name {
			return r, nil
		}
	}

	for _, k := range cfg.AllConstants() {
		for _, a := range k.Angles {
			if catalog.TemplateName(k.Name, a) == name {
				return catalog.Template(k, a, set), nil
			}
		}
	}

	k, err := cfg.LookupConstant(name)
	if err != nil {
		return figure.Recipe{}, errors.New(errors.ErrCodeNotFound, "no example, recipe, template or constant named %q", name)
	}
	if err := errors.ValidateAngle(angle); err != nil {
		return figure.Recipe{}, err
	}
	return catalog.Template(k, angle, set), nil
}
