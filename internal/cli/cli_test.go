package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/featureview/pkg/cache"
	"github.com/matzehuels/featureview/pkg/config"
	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/pipeline"
	"github.com/matzehuels/featureview/pkg/view"
)

const testReport = `{
  "cylinders": [{"id": "f1", "location": [0, 0, 0], "radius_mm": 5, "axis": "Z"}],
  "planes": [{"id": "f2", "location": [0, 0, 20], "dims": [20, 20], "normal": [0, 0, 1], "area_mm2": 400}],
  "cones": [],
  "bounding_box": {"x_mm": 20, "y_mm": 20, "z_mm": 20}
}`

const testEdges = `{"edges": [
  [[-10, -10, 20], [10, -10, 20], [10, 10, 20], [-10, 10, 20], [-10, -10, 20]],
  [[-10, -10, 0], [10, -10, 0], [10, 10, 0], [-10, 10, 0], [-10, -10, 0]]
]}`

// isolate points config and cache lookups at a fresh temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, path, data string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fixture writes a model stub with its edge sidecar and feature report.
func fixture(t *testing.T, dir string) (modelPath, reportPath string) {
	t.Helper()
	modelPath = writeFile(t, filepath.Join(dir, "parts", "bracket.step"), "ISO-10303-21;")
	writeFile(t, filepath.Join(dir, "parts", "bracket.edges.json"), testEdges)
	reportPath = writeFile(t, filepath.Join(dir, "parts", "bracket.features.json"), testReport)
	return modelPath, reportPath
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func quietCLI() *CLI {
	return New(&bytes.Buffer{}, log.InfoLevel)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := quietCLI().RootCommand()
	want := []string{"render", "label", "views", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestRenderCommandWritesAllViews(t *testing.T) {
	dir := isolate(t)
	modelPath, reportPath := fixture(t, dir)
	out := filepath.Join(dir, "previews")

	err := execute(t, quietCLI(), "render", modelPath, "--features", reportPath, "-o", out, "--no-cache", "--workers", "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range view.Names() {
		path := filepath.Join(out, "bracket", name+".png")
		f, err := os.Open(path)
		if err != nil {
			t.Errorf("view %s: %v", name, err)
			continue
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("view %s: decode: %v", name, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 900 {
			t.Errorf("view %s size = %dx%d, want 1200x900", name, b.Dx(), b.Dy())
		}
	}
}

func TestRenderCommandViewSubset(t *testing.T) {
	dir := isolate(t)
	modelPath, reportPath := fixture(t, dir)
	out := filepath.Join(dir, "previews")

	err := execute(t, quietCLI(), "render", modelPath, "-f", reportPath, "-o", out, "--no-cache", "--views", "top,front")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(out, "bracket"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("wrote %d files, want 2", len(entries))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := isolate(t)
	modelPath, reportPath := fixture(t, dir)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{
			name: "missing report file",
			args: []string{"render", modelPath, "--features", filepath.Join(dir, "nope.json"), "--no-cache"},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "unknown view",
			args: []string{"render", modelPath, "--features", reportPath, "--views", "oblique", "--no-cache", "-o", filepath.Join(dir, "out")},
			code: errors.ErrCodeInvalidView,
		},
		{
			name: "bad worker count",
			args: []string{"render", modelPath, "--features", reportPath, "--workers", "0"},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "missing explicit config",
			args: []string{"--config", filepath.Join(dir, "missing.toml"), "render", modelPath, "--features", reportPath},
			code: errors.ErrCodeFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, quietCLI(), tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRenderCommandRequiresFeatures(t *testing.T) {
	dir := isolate(t)
	modelPath, _ := fixture(t, dir)

	err := execute(t, quietCLI(), "render", modelPath)
	if err == nil || !strings.Contains(err.Error(), "features") {
		t.Errorf("error = %v, want missing --features", err)
	}
}

func TestLabelCommand(t *testing.T) {
	dir := isolate(t)
	modelPath, reportPath := fixture(t, dir)

	if err := execute(t, quietCLI(), "label", modelPath, "--features", reportPath, "--no-cache"); err != nil {
		t.Fatalf("label: %v", err)
	}
	want := filepath.Join(dir, "parts", "bracket"+pipeline.LabeledSuffix)
	if _, err := os.Stat(want); err != nil {
		t.Errorf("labeled image missing: %v", err)
	}

	custom := filepath.Join(dir, "custom.png")
	if err := execute(t, quietCLI(), "label", modelPath, "--features", reportPath, "--no-cache", "-o", custom); err != nil {
		t.Fatalf("label -o: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Errorf("custom output missing: %v", err)
	}
}

func TestRenderCommandUsesFileCache(t *testing.T) {
	dir := isolate(t)
	modelPath, reportPath := fixture(t, dir)
	out := filepath.Join(dir, "previews")

	for i := 0; i < 2; i++ {
		if err := execute(t, quietCLI(), "render", modelPath, "-f", reportPath, "-o", out, "--views", "isometric"); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("cached entries = %d, want 1", n)
	}
}

func TestNewCache(t *testing.T) {
	dir := isolate(t)
	c := quietCLI()

	tests := []struct {
		name    string
		backend string
		noCache bool
		check   func(t *testing.T, got cache.Cache)
	}{
		{
			name:    "file backend",
			backend: config.BackendFile,
			check: func(t *testing.T, got cache.Cache) {
				fc, ok := got.(*cache.FileCache)
				if !ok {
					t.Fatalf("cache = %T, want *cache.FileCache", got)
				}
				want := filepath.Join(dir, "cache", appName)
				if fc.Dir() != want {
					t.Errorf("Dir() = %q, want %q", fc.Dir(), want)
				}
			},
		},
		{
			name:    "none backend",
			backend: config.BackendNone,
			check: func(t *testing.T, got cache.Cache) {
				if _, ok := got.(*cache.NullCache); !ok {
					t.Errorf("cache = %T, want *cache.NullCache", got)
				}
			},
		},
		{
			name:    "no-cache flag wins",
			backend: config.BackendFile,
			noCache: true,
			check: func(t *testing.T, got cache.Cache) {
				if _, ok := got.(*cache.NullCache); !ok {
					t.Errorf("cache = %T, want *cache.NullCache", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			got, err := c.newCache(context.Background(), cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer got.Close()
			tt.check(t, got)
		})
	}
}

func TestNewRunnerAppliesConfig(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Render.Workers = 4
	cfg.Cache.TTL = "1h"

	r, err := quietCLI().newRunner(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close()

	if r.Workers != 4 {
		t.Errorf("Workers = %d, want 4", r.Workers)
	}
	if r.TTL.Hours() != 1 {
		t.Errorf("TTL = %v, want 1h", r.TTL)
	}
}

func TestRenderOptsApply(t *testing.T) {
	cmd := &cobra.Command{}
	opts := renderOpts{}
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "")
	if err := cmd.Flags().Set("workers", "3"); err != nil {
		t.Fatal(err)
	}
	opts.output = "elsewhere"

	cfg := config.Default()
	if err := opts.apply(cmd, &cfg, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Render.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Render.Workers)
	}
	if cfg.Output.Dir != "elsewhere" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "elsewhere")
	}

	cfg = config.Default()
	if err := opts.apply(cmd, &cfg, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Output.Dir != config.DefaultOutputDir {
		t.Errorf("label must not treat -o as a directory, got %q", cfg.Output.Dir)
	}
}

func TestConfigCommandReadsFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "fv.toml"), "[render]\nworkers = 3\n")
	if err := execute(t, quietCLI(), "--config", path, "config"); err != nil {
		t.Errorf("config: %v", err)
	}

	bad := writeFile(t, filepath.Join(dir, "bad.toml"), "[render]\nwokers = 3\n")
	err := execute(t, quietCLI(), "--config", bad, "config")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := isolate(t)
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(context.Background(), cache.Hash([]byte(k)), []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := execute(t, quietCLI(), "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(context.Background(), cache.Hash([]byte("a"))); ok {
		t.Error("entry survived cache clear")
	}
}

func TestViewsCommand(t *testing.T) {
	if err := execute(t, quietCLI(), "views"); err != nil {
		t.Errorf("views: %v", err)
	}
}

func TestDescribeView(t *testing.T) {
	top, _ := view.Lookup(view.NameTop)
	if got := describeView(top); !strings.Contains(got, "dir=[0,0,1]") {
		t.Errorf("describeView(top) = %q", got)
	}
}

func TestKeyPrefix(t *testing.T) {
	if !strings.HasPrefix(keyPrefix(), redisPrefix) {
		t.Errorf("keyPrefix() = %q, want prefix %q", keyPrefix(), redisPrefix)
	}
	if !strings.HasSuffix(keyPrefix(), ":") {
		t.Errorf("keyPrefix() = %q, want trailing colon", keyPrefix())
	}
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell   string
		wantErr bool
	}{
		{"bash", false},
		{"zsh", false},
		{"fish", false},
		{"powershell", false},
		{"tcsh", true},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := quietCLI().RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"completion", tt.shell})
			err := root.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("completion %s error = %v, wantErr %v", tt.shell, err, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %s", tt.shell, appName)
			}
		})
	}
}
