// Package config defines the dashboard configuration model and its loader.
//
// A configuration describes one dashboard: a title block, an optional logo
// and footer, and exactly one chart. The chart's data payload is kept raw
// until a typed accessor decodes it, because its shape depends on the chart
// type (stacked charts carry a value matrix, the other types a flat series).
//
// Configurations are decoded from JSON (default) or TOML (by file
// extension). Once loaded they are treated as immutable; validation performs
// no transformation.
package config

import (
	"encoding/json"

	"github.com/matzehuels/dashgen/pkg/errors"
)

// Chart type tags.
const (
	TypeStackedBar = "stacked_bar"
	TypeLine       = "line"
	TypeArea       = "area"
	TypeBar        = "bar"
	TypePie        = "pie"
)

// Types returns the supported chart type tags in display order.
func Types() []string {
	return []string{TypeStackedBar, TypeLine, TypeArea, TypeBar, TypePie}
}

// Supported reports whether tag is one of the five chart types.
func Supported(tag string) bool {
	switch tag {
	case TypeStackedBar, TypeLine, TypeArea, TypeBar, TypePie:
		return true
	}
	return false
}

// Config is one dashboard description.
type Config struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Footer   string `json:"footer,omitempty"`
	LogoPath string `json:"logo_path,omitempty"`
	Graph    *Chart `json:"graph"`
}

// Chart selects a chart type and carries its raw data payload.
type Chart struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Series is the data payload shared by line, area, bar, and pie charts:
// one numeric value per label.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Stacked is the data payload for stacked_bar charts: one row of category
// values per year.
type Stacked struct {
	Years      []string    `json:"years"`
	Categories []string    `json:"categories"`
	Values     [][]float64 `json:"values"`
}

// Series decodes the chart's payload as a flat label/value series.
func (c *Chart) Series() (Series, error) {
	var s Series
	if err := json.Unmarshal(c.Data, &s); err != nil {
		return Series{}, errors.Wrap(errors.ErrCodeConfigInvalid, err, "graph.data does not match the %s chart shape", c.Type)
	}
	return s, nil
}

// Stacked decodes the chart's payload as a year×category value matrix.
func (c *Chart) Stacked() (Stacked, error) {
	var s Stacked
	if err := json.Unmarshal(c.Data, &s); err != nil {
		return Stacked{}, errors.Wrap(errors.ErrCodeConfigInvalid, err, "graph.data does not match the %s chart shape", c.Type)
	}
	return s, nil
}
