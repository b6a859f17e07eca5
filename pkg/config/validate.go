package config

import (
	"strings"

	"github.com/matzehuels/dashgen/pkg/errors"
)

// Validate checks cfg against the structural rules for its chart type and
// returns a descriptive error for the first violation found. A valid config
// passes through unchanged; Validate never mutates it.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing configuration")
	}
	if cfg.Title == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: title")
	}
	if cfg.Graph == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph")
	}
	if cfg.Graph.Type == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.type")
	}
	if !Supported(cfg.Graph.Type) {
		return errors.New(errors.ErrCodeUnsupportedChart, "unsupported chart type: %q (supported: %s)",
			cfg.Graph.Type, strings.Join(Types(), ", "))
	}
	if len(cfg.Graph.Data) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data")
	}

	if cfg.Graph.Type == TypeStackedBar {
		return validateStacked(cfg.Graph)
	}
	return validateSeries(cfg.Graph)
}

func validateSeries(g *Chart) error {
	s, err := g.Series()
	if err != nil {
		return err
	}
	if s.Labels == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data.labels")
	}
	if s.Values == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data.values")
	}
	if len(s.Labels) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "graph.data.labels must not be empty")
	}
	if len(s.Labels) != len(s.Values) {
		return errors.New(errors.ErrCodeConfigInvalid, "graph.data.labels and graph.data.values must have the same length")
	}
	return nil
}

func validateStacked(g *Chart) error {
	s, err := g.Stacked()
	if err != nil {
		return err
	}
	if s.Years == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data.years")
	}
	if s.Categories == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data.categories")
	}
	if s.Values == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "missing required field: graph.data.values")
	}
	if len(s.Years) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "graph.data.years must not be empty")
	}
	if len(s.Categories) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "graph.data.categories must not be empty")
	}
	if len(s.Values) != len(s.Years) {
		return errors.New(errors.ErrCodeConfigInvalid, "graph.data.values must have the same length as graph.data.years")
	}
	for _, row := range s.Values {
		if len(row) != len(s.Categories) {
			return errors.New(errors.ErrCodeConfigInvalid, "each year's values must have the same length as graph.data.categories")
		}
	}
	return nil
}
