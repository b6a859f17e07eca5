package pipeline

import (
	"context"
	stderrors "errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/layout"
)

const barConfig = `{
	"title": "Q1 Sales",
	"subtitle": "January through March",
	"footer": "Source: finance team",
	"graph": {
		"type": "bar",
		"data": {"labels": ["Jan", "Feb", "Mar"], "values": [10, 20, 15]}
	}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func testRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{ConfigPath: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, DefaultOutputDir)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsMissingConfigPath(t *testing.T) {
	opts := Options{}
	err := opts.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("expected error for missing config path")
	}
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigNotFound)
	}
}

func TestExecute(t *testing.T) {
	outDir := t.TempDir()
	opts := Options{
		ConfigPath: writeConfig(t, barConfig),
		OutputDir:  outDir,
	}

	result, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if got := filepath.Base(result.Path); got != "q1-sales.png" {
		t.Errorf("output file = %q, want %q", got, "q1-sales.png")
	}
	if result.ChartType != "bar" {
		t.Errorf("ChartType = %q, want %q", result.ChartType, "bar")
	}

	f, err := os.Open(result.Path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != layout.CanvasWidth || img.Bounds().Dy() != layout.CanvasHeight {
		t.Errorf("canvas = %v, want %d×%d", img.Bounds(), layout.CanvasWidth, layout.CanvasHeight)
	}
}

func TestExecuteCollisionSuffix(t *testing.T) {
	outDir := t.TempDir()
	runner := testRunner()
	opts := Options{
		ConfigPath: writeConfig(t, barConfig),
		OutputDir:  outDir,
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}

	if got := filepath.Base(first.Path); got != "q1-sales.png" {
		t.Errorf("first output = %q, want %q", got, "q1-sales.png")
	}
	if got := filepath.Base(second.Path); got != "q1-sales-1.png" {
		t.Errorf("second output = %q, want %q", got, "q1-sales-1.png")
	}
}

func TestExecuteMissingConfig(t *testing.T) {
	opts := Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.json"),
		OutputDir:  t.TempDir(),
	}
	_, err := testRunner().Execute(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for missing configuration")
	}
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigNotFound)
	}
}

func TestExecuteUnsupportedChart(t *testing.T) {
	cfg := `{"title": "T", "graph": {"type": "scatter", "data": {"labels": ["A"], "values": [1]}}}`
	opts := Options{
		ConfigPath: writeConfig(t, cfg),
		OutputDir:  t.TempDir(),
	}
	_, err := testRunner().Execute(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for unsupported chart type")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedChart) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedChart)
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{
		ConfigPath: writeConfig(t, barConfig),
		OutputDir:  t.TempDir(),
	}
	_, err := testRunner().Execute(ctx, opts)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoadConfig(t *testing.T) {
	opts := Options{ConfigPath: writeConfig(t, barConfig)}
	cfg, err := testRunner().LoadConfig(context.Background(), opts)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Title != "Q1 Sales" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Q1 Sales")
	}
	if cfg.Graph.Type != "bar" {
		t.Errorf("Graph.Type = %q, want %q", cfg.Graph.Type, "bar")
	}
}
