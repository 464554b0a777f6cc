// Package cli implements the dynstate command line: catalog listing and
// scenario execution against a selected backend.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/dynstate"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "dynstate",
	Short:        "Extended dynamic state conformance scenarios",
	Long:         "Runs pipeline dynamic-state scenarios: each one bakes a wrong value\ninto a pipeline, overrides it at command recording time, and verifies\nthe rendered color, depth, and stencil output per pixel.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			dynstate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// orderingsFromNames resolves ordering names to values; an empty list
// means every ordering.
func orderingsFromNames(names []string) ([]dynstate.Ordering, error) {
	if len(names) == 0 {
		return dynstate.Orderings(), nil
	}
	out := make([]dynstate.Ordering, 0, len(names))
	for _, name := range names {
		found := false
		for _, o := range dynstate.Orderings() {
			if o.String() == name {
				out = append(out, o)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown ordering %q", name)
		}
	}
	return out, nil
}
