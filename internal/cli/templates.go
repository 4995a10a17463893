package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/shape"
)

// templatesCommand creates the templates command.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the registered shape templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := shape.Default()
			fmt.Println(templatesTable(reg))
			if reg.Frozen() {
				printDetail("%d templates, registry frozen", reg.Len())
			} else {
				printDetail("%d templates", reg.Len())
			}
			return nil
		},
	}
}

// templatesTable renders the registry as a table, marking the fallbacks.
func templatesTable(reg *shape.Registry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("TEMPLATE", "IMPLEMENTATION", "FALLBACK").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Inherit(StyleTitle)
			case col == 0:
				return style.Inherit(StyleHighlight)
			default:
				return style.Inherit(StyleValue)
			}
		})

	for _, name := range reg.Names() {
		tpl, _ := reg.Get(name)
		fallback := ""
		switch name {
		case shape.DefaultNode:
			fallback = "nodes"
		case shape.DefaultEdge:
			fallback = "edges"
		}
		t.Row(name, fmt.Sprintf("%T", tpl), fallback)
	}
	return t.String()
}
