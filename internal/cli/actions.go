package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillmorph/assistant-go/internal/tools"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the catalog actions the assistant can perform",
	Run: func(cmd *cobra.Command, args []string) {
		for _, entry := range tools.Catalog() {
			fmt.Println(actionStyle().Render(entry.Name))
			fmt.Printf("  %s\n", entry.Description)
			if entry.ValueRequired {
				fmt.Println(hintStyle().Render(fmt.Sprintf("  value: %s", entry.ValueHint)))
			}
		}
	},
}
