// Package chart builds the JSON data files read by the 3D chart drawings.
package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Axis is one chart axis. Axes made with Auto derive their range from the
// points.
type Axis struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Step        int    `json:"step"`

	auto bool
}

// NewAxis returns an explicit axis
func NewAxis(label, description string, min, max, step int) Axis {
	return Axis{Label: label, Description: description, Min: min, Max: max, Step: step}
}

// Auto returns an axis spanning 0 to the largest point coordinate on it
func Auto(label string) Axis {
	return Axis{Label: label, auto: true}
}

// Point is a colored point with free-form rendering options
type Point struct {
	X, Y, Z int
	Color   string
	Options map[string]any
}

func (p Point) coord(i int) int {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// MarshalJSON encodes the point as [x, y, z, color, options]
func (p Point) MarshalJSON() ([]byte, error) {
	opts := p.Options
	if opts == nil {
		opts = map[string]any{}
	}
	return json.Marshal([]any{p.X, p.Y, p.Z, p.Color, opts})
}

// Chart is a named set of axes and points
type Chart struct {
	Name   string
	Axes   []Axis
	Points []Point
}

type document struct {
	Axes   []Axis  `json:"axes"`
	Points []Point `json:"points"`
}

func (c *Chart) resolveAxes() []Axis {
	axes := make([]Axis, len(c.Axes))
	for i, a := range c.Axes {
		if a.auto {
			a.Min, a.Step = 0, 1
			for j, p := range c.Points {
				if v := p.coord(i); j == 0 || v > a.Max {
					a.Max = v
				}
			}
		}
		if a.Description == "" {
			a.Description = fmt.Sprintf("The %s-axis", a.Label)
		}
		axes[i] = a
	}
	return axes
}

// MarshalJSON encodes the chart as {"axes": [...], "points": [...]}
func (c *Chart) MarshalJSON() ([]byte, error) {
	points := c.Points
	if points == nil {
		points = []Point{}
	}
	return json.Marshal(document{Axes: c.resolveAxes(), Points: points})
}

// Write stores the chart as <dir>/<name>.json
func (c *Chart) Write(dir string) (string, error) {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, c.Name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}

// Sample returns the four point demo chart
func Sample() *Chart {
	return &Chart{
		Name: "experimental_1",
		Axes: []Axis{Auto("x"), Auto("y"), Auto("z")},
		Points: []Point{
			{1, 2, 3, "red", map[string]any{"size": 1.0, "label": "point 1"}},
			{2, 3, 4, "blue", map[string]any{"size": 0.8, "label": "point 2"}},
			{3, 4, 5, "green", map[string]any{"size": 0.4, "label": "point 3"}},
			{4, 5, 6, "yellow", map[string]any{"size": 1.1, "label": "point 4"}},
		},
	}
}
