package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/diagram"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that every edge of a diagram file names existing nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			d, err := diagram.ReadFile(path)
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				printError("%s is not renderable", path)
				return err
			}

			printSuccess("%s is valid", path)
			printStats(d.NodeCount(), d.EdgeCount())
			printNextStep("Render it", "strategos render "+path)
			return nil
		},
	}
}
