package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/dynstate/catalog"
)

var listOrdering string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listOrdering, "ordering", "", "Restrict to one ordering (default: all)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the case names of the scenario catalog",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	var names []string
	if listOrdering != "" {
		names = append(names, listOrdering)
	}
	orderings, err := orderingsFromNames(names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, o := range orderings {
		for _, c := range catalog.Cases(o) {
			fmt.Fprintf(out, "%s/%s\n", o, c.Name)
		}
	}
	return nil
}
