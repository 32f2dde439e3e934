package domain

import (
	"fmt"
	"time"
)

// ShapeType is the inferred semantic of an SVG path
type ShapeType string

const (
	ShapeRect   ShapeType = "rect"
	ShapeText   ShapeType = "text"
	ShapeCircle ShapeType = "circle"
	ShapeBadge  ShapeType = "badge"
)

// ShapeTypes lists every shape type in classification precedence order
var ShapeTypes = []ShapeType{ShapeRect, ShapeText, ShapeCircle, ShapeBadge}

// Valid reports whether t is one of the known shape types
func (t ShapeType) Valid() bool {
	switch t {
	case ShapeRect, ShapeText, ShapeCircle, ShapeBadge:
		return true
	}
	return false
}

// ParseShapeType converts a stored attribute value into a ShapeType
func ParseShapeType(s string) (ShapeType, error) {
	t := ShapeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown shape type %q", s)
	}
	return t, nil
}

// Shape is the annotation state of one path element
type Shape struct {
	PathID  string    `json:"path_id"`
	GroupID string    `json:"group_id,omitempty"`
	Type    ShapeType `json:"type"`
	Fill    string    `json:"fill,omitempty"`
}

// Summary describes the outcome of annotating one document
type Summary struct {
	Paths   int               `json:"paths"`
	Unknown int               `json:"unknown"`
	Counts  map[ShapeType]int `json:"counts"`
	Shapes  []Shape           `json:"shapes,omitempty"`
}

// Run is a recorded annotation of a named drawing
type Run struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
	Summary   Summary   `json:"summary"`
}
