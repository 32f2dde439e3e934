// Package annotate infers shape semantics for the paths of an exported SVG
// drawing and records them as data-orig-type and data-orig-fill attributes,
// which the three.js SVG loader reads back when extruding the drawing.
package annotate

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pbaille/gallery/internal/domain"
	"go.uber.org/zap"
)

const (
	attrOrigFill = "data-orig-fill"
	attrOrigType = "data-orig-type"

	// badgeLineTos is the number of lineto commands in the hexagonal badge
	// outline used by the exported diagrams.
	badgeLineTos = 5
)

// Annotator classifies the paths of one document at a time. It holds no
// per-document state and may be shared.
type Annotator struct {
	log *zap.Logger
}

// New creates an Annotator logging to log. A nil logger discards output.
func New(log *zap.Logger) *Annotator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Annotator{log: log}
}

// Process parses data, annotates it and serializes the result
func (a *Annotator) Process(data []byte, opts Options) ([]byte, domain.Summary, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, domain.Summary{}, err
	}
	StripNamespaces(&doc.Element)
	summary := a.Annotate(doc)

	out, err := Serialize(doc, opts)
	if err != nil {
		return nil, domain.Summary{}, err
	}
	return out, summary, nil
}

// Annotate classifies every path nested in a group, in document order, and
// writes the results onto the tree. Tags must already be free of namespace
// prefixes. Attributes already present are never overwritten, except the
// type of a matched duplicate which is re-asserted. Running Annotate twice
// leaves the document unchanged the second time.
func (a *Annotator) Annotate(doc *etree.Document) domain.Summary {
	root := &doc.Element
	unknown := make(map[*etree.Element]bool)

	// Snapshot groups and their paths before any write.
	groups := collect(root, "g")
	paths := make([][]*etree.Element, len(groups))
	for i, g := range groups {
		paths[i] = collect(g, "path")
	}

	for i, g := range groups {
		group := groupStyle{
			id:     attrValue(g, "id"),
			fill:   attrValue(g, "fill"),
			stroke: attrValue(g, "stroke"),
		}
		for _, p := range paths[i] {
			if !a.classify(root, group, p) {
				unknown[p] = true
			}
		}
	}

	summary := Collect(doc)
	for p := range unknown {
		if !hasAttr(p, attrOrigType) {
			summary.Unknown++
		}
	}
	return summary
}

type groupStyle struct {
	id, fill, stroke string
}

// hasPrefix reports whether the path or its group id carries prefix
func (g groupStyle) hasPrefix(pathID, prefix string) bool {
	return strings.HasPrefix(pathID, prefix) || strings.HasPrefix(g.id, prefix)
}

// classify annotates one path seen through one of its enclosing groups and
// reports whether a type could be inferred.
func (a *Annotator) classify(root *etree.Element, g groupStyle, p *etree.Element) bool {
	pathID := attrValue(p, "id")
	d := attrValue(p, "d")

	if g.fill != "" {
		setAttrOnce(p, attrOrigFill, g.fill)
	}

	switch {
	case g.hasPrefix(pathID, "rect"):
		setAttrOnce(p, attrOrigType, string(domain.ShapeRect))
	case g.hasPrefix(pathID, "text"):
		setAttrOnce(p, attrOrigType, string(domain.ShapeText))
	case g.hasPrefix(pathID, "circle"):
		setAttrOnce(p, attrOrigType, string(domain.ShapeCircle))
		match := FindMatchingD(root, d, pathID, true)
		if match == nil {
			a.log.Debug("no circle outline for path",
				zap.String("path_id", pathID), zap.String("group_id", g.id))
			return true
		}
		setAttr(match, attrOrigType, string(domain.ShapeCircle))
		if g.fill != "" {
			setAttrOnce(match, attrOrigFill, g.fill)
		}
	case isBadge(d):
		setAttrOnce(p, attrOrigType, string(domain.ShapeBadge))
		match := FindMatchingD(root, d, pathID, false)
		if match == nil {
			a.log.Debug("no badge duplicate for path",
				zap.String("path_id", pathID), zap.String("group_id", g.id))
			return true
		}
		// The outline is stroke-only; its duplicate is the filled interior.
		if g.stroke != "" {
			setAttrOnce(match, attrOrigFill, g.stroke)
		}
		setAttr(match, attrOrigType, string(domain.ShapeBadge))
	default:
		a.log.Info("unknown type",
			zap.String("path_id", pathID), zap.String("group_id", g.id), zap.String("d", d))
		return false
	}
	return true
}

// isBadge matches the path data signature of the badge outline: a moveto
// followed by exactly five linetos.
func isBadge(d string) bool {
	return strings.HasPrefix(d, "M") && strings.Count(d, "L") == badgeLineTos
}

// Collect reads back the annotation state of every path in the document
func Collect(doc *etree.Document) domain.Summary {
	summary := domain.Summary{Counts: make(map[domain.ShapeType]int)}
	for _, p := range collect(&doc.Element, "path") {
		summary.Paths++
		v, ok := attr(p, attrOrigType)
		if !ok {
			continue
		}
		t, err := domain.ParseShapeType(v)
		if err != nil {
			continue
		}
		shape := domain.Shape{
			PathID: attrValue(p, "id"),
			Type:   t,
			Fill:   attrValue(p, attrOrigFill),
		}
		if parent := enclosingGroup(p); parent != nil {
			shape.GroupID = attrValue(parent, "id")
		}
		summary.Counts[t]++
		summary.Shapes = append(summary.Shapes, shape)
	}
	return summary
}

func enclosingGroup(el *etree.Element) *etree.Element {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "g" {
			return p
		}
	}
	return nil
}
