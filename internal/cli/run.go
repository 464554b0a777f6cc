package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/catalog"
	"github.com/gogpu/dynstate/runner"
	"github.com/gogpu/dynstate/verify"
)

var (
	runBackend    string
	runFilter     string
	runConfigPath string
	runArtifacts  string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runBackend, "backend", "", "Backend to run on (softpipe|wgpu, default: best available)")
	runCmd.Flags().StringVar(&runFilter, "filter", "", "Substring filter on namespaced case names")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to a yaml run configuration")
	runCmd.Flags().StringVar(&runArtifacts, "artifacts", "", "Directory for PNG error masks of failed cases")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the scenario catalog against a backend",
	Long: "Enumerates the catalog, executes every matching case, and prints a\n" +
		"pass/fail/skip line per case plus a summary. The exit code is nonzero\n" +
		"when any case fails.",
	RunE: runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg := DefaultRunConfig()
	if runConfigPath != "" {
		loaded, err := LoadRunConfig(runConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if runBackend != "" {
		cfg.Backend = runBackend
	}
	if runFilter != "" {
		cfg.Filter = runFilter
	}
	if runArtifacts != "" {
		cfg.Artifacts = runArtifacts
	}

	orderings, err := orderingsFromNames(cfg.Orderings)
	if err != nil {
		return err
	}
	b, err := openBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer b.Close()

	if cfg.Artifacts != "" {
		if err := os.MkdirAll(cfg.Artifacts, 0o755); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend: %s\n", b.Name())

	r := runner.New(b)
	var passed, failed, skipped int
	for _, o := range orderings {
		for _, c := range catalog.Cases(o) {
			name := o.String() + "/" + c.Name
			if cfg.Filter != "" && !strings.Contains(name, cfg.Filter) {
				continue
			}

			res, err := r.Run(c.Config)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			switch res.Status {
			case runner.StatusPass:
				passed++
			case runner.StatusSkip:
				skipped++
			default:
				failed++
				if cfg.Artifacts != "" {
					if err := saveMasks(res, cfg.Artifacts, name, cfg.MaskScale); err != nil {
						return err
					}
				}
			}
			printResult(out, name, res)
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return fmt.Errorf("%d cases failed", failed)
	}
	return nil
}

func printResult(out io.Writer, name string, res *runner.Result) {
	line := fmt.Sprintf("%-4s %s", strings.ToUpper(res.Status.String()), name)
	if res.Reason != "" {
		line += " (" + res.Reason + ")"
	}
	fmt.Fprintln(out, line)
}

// openBackend resolves a backend by name, or probes the priority order
// when no name is given: the real device first, the software reference
// as fallback.
func openBackend(name string) (backend.Backend, error) {
	if name != "" && name != "auto" {
		b := backend.Get(name)
		if b == nil {
			return nil, fmt.Errorf("unknown backend %q (available: %s)",
				name, strings.Join(backend.Available(), ", "))
		}
		if err := b.Init(); err != nil {
			return nil, fmt.Errorf("init %s: %w", name, err)
		}
		return b, nil
	}

	if b := backend.Get(backend.BackendWgpu); b != nil {
		err := b.Init()
		if err == nil {
			return b, nil
		}
		dynstate.Logger().Warn("device backend unavailable, falling back",
			"backend", backend.BackendWgpu, "error", err)
	}
	b := backend.Get(backend.BackendSoftpipe)
	if b == nil {
		return nil, backend.ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}

// saveMasks writes the error mask of every mismatched channel.
func saveMasks(res *runner.Result, dir, name string, scale int) error {
	base := strings.ReplaceAll(name, "/", "_")
	for _, ch := range []struct {
		suffix string
		report *verify.Report
	}{
		{"color", res.Color},
		{"depth", res.Depth},
		{"stencil", res.Stencil},
	} {
		if ch.report == nil || ch.report.Match {
			continue
		}
		path := filepath.Join(dir, base+"_"+ch.suffix+".png")
		if err := verify.SaveMask(ch.report.Mask, path, scale); err != nil {
			return err
		}
	}
	return nil
}
