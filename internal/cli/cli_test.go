package cli

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/catalog"
	"github.com/gogpu/dynstate/runner"
	"github.com/gogpu/dynstate/verify"

	_ "github.com/gogpu/dynstate/backend/softpipe"
)

// execute resets the flag state and runs the root command once.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	runBackend, runFilter, runConfigPath, runArtifacts = "", "", "", ""
	listOrdering = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestListPrintsFullCatalog(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if want := len(catalog.All()); len(lines) != want {
		t.Fatalf("list printed %d lines, want %d", len(lines), want)
	}
	if !strings.Contains(out, "cmd_buffer_start/cull_none\n") {
		t.Error("list output missing cmd_buffer_start/cull_none")
	}
}

func TestListSingleOrdering(t *testing.T) {
	out, err := execute(t, "list", "--ordering", "before_draw")
	if err != nil {
		t.Fatalf("list = %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "before_draw/") {
			t.Fatalf("line %q outside requested ordering", line)
		}
	}
}

func TestListRejectsUnknownOrdering(t *testing.T) {
	if _, err := execute(t, "list", "--ordering", "sideways"); err == nil {
		t.Fatal("unknown ordering accepted")
	}
}

func TestRunFilteredCases(t *testing.T) {
	out, err := execute(t, "run", "--backend", "softpipe", "--filter", "/cull_")
	if err != nil {
		t.Fatalf("run = %v\n%s", err, out)
	}
	if !strings.Contains(out, "backend: softpipe") {
		t.Error("run output missing backend line")
	}
	if !strings.Contains(out, "PASS cmd_buffer_start/cull_back") {
		t.Errorf("run output missing expected pass line:\n%s", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("unexpected failure:\n%s", out)
	}
}

func TestRunUnknownBackend(t *testing.T) {
	if _, err := execute(t, "run", "--backend", "scanline"); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "backend: softpipe\nfilter: /rast_discard_\norderings: [before_draw]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--config", path)
	if err != nil {
		t.Fatalf("run = %v\n%s", err, out)
	}
	if strings.Contains(out, "cmd_buffer_start/") {
		t.Errorf("config ordering restriction ignored:\n%s", out)
	}
	if !strings.Contains(out, "PASS before_draw/rast_discard_disable") {
		t.Errorf("run output missing expected pass line:\n%s", out)
	}
}

func TestLoadRunConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"scale.yaml":    "mask_scale: 0\n",
		"ordering.yaml": "orderings: [sideways]\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRunConfig(path); err == nil {
			t.Errorf("%s: invalid config accepted", name)
		}
	}
}

func TestSaveMasksWritesFailedChannels(t *testing.T) {
	dir := t.TempDir()
	mask := image.NewNRGBA(image.Rect(0, 0, dynstate.FramebufferWidth, dynstate.FramebufferHeight))
	res := &runner.Result{
		Status: runner.StatusFail,
		Color:  &verify.Report{Match: false, Mismatches: 1, Mask: mask},
		Depth:  &verify.Report{Match: true, Mask: mask},
	}

	if err := saveMasks(res, dir, "cmd_buffer_start/cull_back", 2); err != nil {
		t.Fatalf("saveMasks() = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cmd_buffer_start_cull_back_color.png")); err != nil {
		t.Errorf("color mask not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cmd_buffer_start_cull_back_depth.png")); err == nil {
		t.Error("mask written for matching depth channel")
	}
}
