package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dashgen/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "dashboard.json", `{
		"title": "Q1 Sales",
		"subtitle": "Quarterly overview",
		"graph": {
			"type": "bar",
			"data": {"labels": ["Jan", "Feb"], "values": [10, 20]}
		}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Title != "Q1 Sales" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Q1 Sales")
	}
	if cfg.Subtitle != "Quarterly overview" {
		t.Errorf("Subtitle = %q, want %q", cfg.Subtitle, "Quarterly overview")
	}
	if cfg.Graph == nil {
		t.Fatal("Graph = nil, want chart config")
	}
	if cfg.Graph.Type != TypeBar {
		t.Errorf("Graph.Type = %q, want %q", cfg.Graph.Type, TypeBar)
	}

	s, err := cfg.Graph.Series()
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}
	if len(s.Labels) != 2 || s.Labels[0] != "Jan" {
		t.Errorf("Series labels = %v, want [Jan Feb]", s.Labels)
	}
	if len(s.Values) != 2 || s.Values[1] != 20 {
		t.Errorf("Series values = %v, want [10 20]", s.Values)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "dashboard.toml", `
title = "Market Report"

[graph]
type = "stacked_bar"

[graph.data]
years = ["2023", "2024"]
categories = ["Oil", "Isolates"]
values = [[1.5, 2.5], [3.0, 4.0]]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Title != "Market Report" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Market Report")
	}
	if cfg.Graph == nil || cfg.Graph.Type != TypeStackedBar {
		t.Fatalf("Graph.Type = %v, want %q", cfg.Graph, TypeStackedBar)
	}

	s, err := cfg.Graph.Stacked()
	if err != nil {
		t.Fatalf("Stacked() error = %v", err)
	}
	if len(s.Years) != 2 || len(s.Values) != 2 || s.Values[1][1] != 4.0 {
		t.Errorf("Stacked payload = %+v, want 2 years with values", s)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Load() error = nil, want not-found error")
	}
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigNotFound)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "truncated JSON",
			file:    "bad.json",
			content: `{"title": "Oops"`,
		},
		{
			name:    "not JSON at all",
			file:    "bad2.json",
			content: `this is not json`,
		},
		{
			name:    "broken TOML",
			file:    "bad.toml",
			content: `title = `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want decode error")
			}
			if !errors.Is(err, errors.ErrCodeConfigInvalid) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigInvalid)
			}
		})
	}
}

func TestSeriesShapeMismatch(t *testing.T) {
	// Stacked payload decoded through the flat-series accessor must fail.
	path := writeFile(t, "mismatch.json", `{
		"title": "Mismatch",
		"graph": {
			"type": "line",
			"data": {"labels": ["a"], "values": [[1, 2]]}
		}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := cfg.Graph.Series(); err == nil {
		t.Error("Series() error = nil, want shape error")
	} else if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfigInvalid)
	}
}
