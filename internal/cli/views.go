package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featureview/pkg/view"
)

// viewsCommand lists the built-in view table.
func (c *CLI) viewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the standard views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range view.All() {
				printKeyValue(d.Name, d.Label+StyleDim.Render("  "+describeView(d)))
			}
			return nil
		},
	}
}

// describeView summarises a view's camera.
func describeView(d view.Definition) string {
	if d.IsIsometric() {
		return fmt.Sprintf("%s dir=[%.2f,%.2f,%.2f]", d.Projection, d.Dir.X, d.Dir.Y, d.Dir.Z)
	}
	return fmt.Sprintf("%s dir=[%.0f,%.0f,%.0f]", d.Projection, d.Dir.X, d.Dir.Y, d.Dir.Z)
}
