package annotate

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/net/html/charset"
)

const svgMediaType = "image/svg+xml"

// ErrEmptyDocument is returned when the input holds no root element
var ErrEmptyDocument = errors.New("document has no root element")

// Options controls serialization of the annotated tree
type Options struct {
	// Minify compacts the output markup. Attribute values set by the
	// annotator are kept as is.
	Minify bool
}

// Parse builds an element tree from SVG markup. Non UTF-8 encodings declared
// in the XML prolog are decoded.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}

// Serialize renders the tree back to markup
func Serialize(doc *etree.Document, opts Options) ([]byte, error) {
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize svg: %w", err)
	}
	if !opts.Minify {
		return out, nil
	}

	m := minify.New()
	m.AddFunc(svgMediaType, svg.Minify)
	small, err := m.Bytes(svgMediaType, out)
	if err != nil {
		return nil, fmt.Errorf("minify svg: %w", err)
	}
	return small, nil
}

// attr looks up an un-prefixed attribute
func attr(el *etree.Element, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// attrValue returns the attribute value, or "" when absent
func attrValue(el *etree.Element, key string) string {
	v, _ := attr(el, key)
	return v
}

func hasAttr(el *etree.Element, key string) bool {
	_, ok := attr(el, key)
	return ok
}

// setAttr replaces or appends an un-prefixed attribute. Keys never contain
// a colon here, so CreateAttr keeps them un-prefixed.
func setAttr(el *etree.Element, key, value string) {
	el.CreateAttr(key, value)
}

// setAttrOnce writes the attribute only if it is not present yet
func setAttrOnce(el *etree.Element, key, value string) {
	if !hasAttr(el, key) {
		setAttr(el, key, value)
	}
}

// collect returns el and every element below it whose tag equals tag, in
// document order.
func collect(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(el)
	return out
}
