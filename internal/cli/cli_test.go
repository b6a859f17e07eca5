package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/pipeline"
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

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if root.Version == "" {
		t.Error("root command should carry a version")
	}

	configFlag := root.Flags().Lookup("config")
	if configFlag == nil {
		t.Fatal("root command should define --config")
	}
	if configFlag.Shorthand != "c" {
		t.Errorf("config shorthand = %q, want %q", configFlag.Shorthand, "c")
	}

	outFlag := root.Flags().Lookup("output-dir")
	if outFlag == nil {
		t.Fatal("root command should define --output-dir")
	}
	if outFlag.Shorthand != "o" {
		t.Errorf("output-dir shorthand = %q, want %q", outFlag.Shorthand, "o")
	}
	if outFlag.DefValue != pipeline.DefaultOutputDir {
		t.Errorf("output-dir default = %q, want %q", outFlag.DefValue, pipeline.DefaultOutputDir)
	}

	want := map[string]bool{"validate": false, "completion": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command should register subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if got := c.Logger.GetLevel(); got != LogInfo {
		t.Fatalf("initial level = %v, want %v", got, LogInfo)
	}

	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level after SetLogLevel = %v, want %v", got, LogDebug)
	}
}

func TestExecuteRenderWritesImage(t *testing.T) {
	cfgPath := writeConfig(t, barConfig)
	outDir := t.TempDir()

	c := New(io.Discard, LogWarn)
	err := c.Execute(context.Background(), []string{"--config", cfgPath, "--output-dir", outDir})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "q1-sales.png")); err != nil {
		t.Errorf("expected generated image: %v", err)
	}
}

func TestExecuteRequiresConfigFlag(t *testing.T) {
	c := New(io.Discard, LogWarn)
	if err := c.Execute(context.Background(), nil); err == nil {
		t.Error("Execute() without --config should fail")
	}
}

func TestExecuteRenderMissingConfig(t *testing.T) {
	c := New(io.Discard, LogWarn)
	missing := filepath.Join(t.TempDir(), "missing.json")

	err := c.Execute(context.Background(), []string{"--config", missing})
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("Execute() error = %v, want %s", err, errors.ErrCodeConfigNotFound)
	}
}

func TestExecuteValidate(t *testing.T) {
	cfgPath := writeConfig(t, barConfig)

	c := New(io.Discard, LogWarn)
	if err := c.Execute(context.Background(), []string{"validate", cfgPath}); err != nil {
		t.Errorf("Execute(validate) error = %v", err)
	}
}

func TestExecuteValidateRejectsBadConfig(t *testing.T) {
	cfgPath := writeConfig(t, `{"title": "No Chart"}`)

	c := New(io.Discard, LogWarn)
	err := c.Execute(context.Background(), []string{"validate", cfgPath})
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Execute(validate) error = %v, want %s", err, errors.ErrCodeConfigInvalid)
	}
}
