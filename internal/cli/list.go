package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiramirabilis/pkg/catalog"
	"github.com/matzehuels/spiramirabilis/pkg/errors"
	"github.com/matzehuels/spiramirabilis/pkg/figure"
)

var styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// listCommand creates the list command for browsing the catalog.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "list constants|examples",
		Short:     "List the constants or the annotated examples",
		ValidArgs: []string{"constants", "examples"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			switch args[0] {
			case "constants":
				fmt.Println(constantsTable(cfg.AllConstants()))
			case "examples":
				recipes, err := exampleRecipes(cfg, nil)
				if err != nil {
					return err
				}
				fmt.Println(examplesTable(recipes))
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown list %q", args[0])
			}
			if cfg.Path != "" {
				printDetail("including %s", cfg.Path)
			}
			return nil
		},
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})
}

func constantsTable(cs []catalog.Constant) string {
	t := newTable("Name", "Symbol", "Value", "Angles")
	for _, k := range cs {
		angles := make([]string, len(k.Angles))
		for i, a := range k.Angles {
			angles[i] = strconv.Itoa(a) + "°"
		}
		t.Row(k.Name, k.Symbol, strconv.FormatFloat(k.Value, 'f', 6, 64), strings.Join(angles, " "))
	}
	return t.Render()
}

func examplesTable(recipes []figure.Recipe) string {
	t := newTable("Name", "Spiral", "Fit", "Decorations", "Title")
	for _, r := range recipes {
		t.Row(r.Name, r.CaptionText(), r.Fit.String(), decorations(r), r.Title)
	}
	return t.Render()
}

// decorations summarises what a recipe draws besides the spiral.
func decorations(r figure.Recipe) string {
	var parts []string
	if r.Rectangle != nil {
		kind := "rectangle"
		if r.Rectangle.Triangle {
			kind = "triangle"
		}
		parts = append(parts, fmt.Sprintf("%s %s→%s", kind, r.Rectangle.From, r.Rectangle.To))
	}
	if r.Chain != nil {
		parts = append(parts, "chain")
	}
	if n := len(r.Markers); n > 0 {
		parts = append(parts, fmt.Sprintf("%d markers", n))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}
