package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/config"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/pipeline"
)

// batchFlags are shared by the commands that draw many figures.
type batchFlags struct {
	renderFlags
	outDir string
	jobs   int
}

func (f *batchFlags) register(cmd *cobra.Command) {
	f.renderFlags.register(cmd)
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "d", ".", "directory for the rendered files")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", pipeline.DefaultJobs, "figures drawn in parallel")
}

// templatesCommand creates the templates command for the plain spiral catalog.
func (c *CLI) templatesCommand() *cobra.Command {
	var (
		constants string
		angles    string
		flags     batchFlags
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Render the template spiral of every constant and angle",
		Long: `Render the template catalog: one figure per constant and turn angle,
named Spiral_<constant>_<angle>.

Constants added with [[constant]] in the config file are included.`,
		Example: `  spiramirabilis templates -f pdf -d catalog
  spiramirabilis templates --constants Phi,E --angles 90,180`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			recipes, err := templateRecipes(cfg, constants, angles)
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), recipes, flags)
		},
	}

	cmd.Flags().StringVar(&constants, "constants", "", "comma-separated constants (default: all)")
	cmd.Flags().StringVar(&angles, "angles", "", "comma-separated turn angles (default: each constant's angles)")
	flags.register(cmd)

	return cmd
}

// examplesCommand creates the examples command for the annotated figures.
func (c *CLI) examplesCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "examples [names...]",
		Short: "Render the annotated example figures",
		Long: `Render the annotated examples: spirals with rectangles, Fibonacci chains
and input/output markers. Without names every example is drawn, followed by
any [[recipe]] from the config file.`,
		Example: `  spiramirabilis examples
  spiramirabilis examples Example_02 Example_11 -f svg,png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			recipes, err := exampleRecipes(cfg, args)
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), recipes, flags)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return catalog.ExampleNames(), cobra.ShellCompDirectiveNoFileComp
		},
	}

	flags.register(cmd)
	return cmd
}

// templateRecipes selects templates by comma-separated constant names and
// angles. Empty selections mean all.
func templateRecipes(cfg *config.Config, constants, angles string) ([]figure.Recipe, error) {
	cs := cfg.AllConstants()
	if constants != "" {
		cs = cs[:0:0]
		for _, name := range strings.Split(constants, ",") {
			k, err := cfg.LookupConstant(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			cs = append(cs, k)
		}
	}

	if angles != "" {
		var as []int
		for _, s := range strings.Split(angles, ",") {
			a, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid angle %q", s)
			}
			if err := errors.ValidateAngle(a); err != nil {
				return nil, err
			}
			as = append(as, a)
		}
		for i := range cs {
			cs[i].Angles = as
		}
	}

	return catalog.Templates(cs, cfg.Settings()), nil
}

// exampleRecipes returns the named examples or configured recipes, or all of
// them when names is empty.
func exampleRecipes(cfg *config.Config, names []string) ([]figure.Recipe, error) {
	extra, err := cfg.FigureRecipes()
	if err != nil {
		return nil, err
	}
	all := append(catalog.Examples(cfg.Settings()), extra...)
	if len(names) == 0 {
		return all, nil
	}

	recipes := make([]figure.Recipe, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(r figure.Recipe) bool { return r.Name == name })
		if i < 0 {
			return nil, errors.New(errors.ErrCodeNotFound, "unknown example %q (see 'list examples')", name)
		}
		recipes = append(recipes, all[i])
	}
	return recipes, nil
}

// runBatch draws recipes in parallel and writes every successful figure to
// flags.outDir. One failing figure does not stop the others.
func (c *CLI) runBatch(ctx context.Context, recipes []figure.Recipe, flags batchFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts := c.baseOptions(cfg)
	if err := flags.apply(&opts); err != nil {
		return err
	}
	opts.Jobs = flags.jobs

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	total := len(recipes)
	spinner := newSpinner(ctx, "Drawing figures", total)
	opts.Progress = spinner.Record

	prog := newProgress(c.Logger)
	spinner.Start()
	outcomes, err := runner.Batch(ctx, recipes, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	var failed, cached int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			printWarning("skipped %s: %s", o.Name, errors.UserMessage(o.Err))
			continue
		}
		if o.Result.CacheInfo.RenderHit {
			cached++
		}
		paths, err := pipeline.WriteArtifacts(flags.outDir, o.Name, o.Result.Artifacts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			c.Logger.Debug("wrote", "path", p)
		}
	}

	prog.done(fmt.Sprintf("Drew %d figures", total-failed))
	printSuccess("Rendered %s of %d figures to %s",
		StyleNumber.Render(strconv.Itoa(total-failed)), total, StyleValue.Render(flags.outDir))
	if cached > 0 {
		printDetail("%d served from cache", cached)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d figures failed", failed, total)
	}
	return nil
}
