package annotate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/pbaille/gallery/internal/domain"
)

func annotateString(t *testing.T, src string) (*etree.Document, domain.Summary) {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	StripNamespaces(&doc.Element)
	summary := New(nil).Annotate(doc)
	return doc, summary
}

func pathByID(t *testing.T, doc *etree.Document, id string) *etree.Element {
	t.Helper()
	for _, p := range collect(&doc.Element, "path") {
		if attrValue(p, "id") == id {
			return p
		}
	}
	t.Fatalf("path %q not found", id)
	return nil
}

func assertAttr(t *testing.T, el *etree.Element, key, want string) {
	t.Helper()
	got, ok := attr(el, key)
	if !ok {
		t.Errorf("%s: missing %s, want %q", attrValue(el, "id"), key, want)
		return
	}
	if got != want {
		t.Errorf("%s: %s = %q, want %q", attrValue(el, "id"), key, got, want)
	}
}

func assertNoAttr(t *testing.T, el *etree.Element, key string) {
	t.Helper()
	if v, ok := attr(el, key); ok {
		t.Errorf("%s: unexpected %s=%q", attrValue(el, "id"), key, v)
	}
}

func TestClassifyByPrefix(t *testing.T) {
	tests := []struct {
		name    string
		groupID string
		pathID  string
		want    string
	}{
		{"rect path id", "", "rect12", "rect"},
		{"rect group id", "rect3", "p1", "rect"},
		{"text path id", "", "text7", "text"},
		{"text group id", "text-block", "p1", "text"},
		{"circle path id", "", "circle4", "circle"},
		{"circle group id", "circle-g", "p1", "circle"},
		{"path rect wins over group text", "textbox", "rect1", "rect"},
		{"group rect wins over path text", "rect-frame", "text1", "rect"},
		{"text wins over circle", "circles", "text2", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `<svg><g id="` + tt.groupID + `"><path id="` + tt.pathID + `" d="M0,0 Z"/></g></svg>`
			doc, _ := annotateString(t, src)
			assertAttr(t, pathByID(t, doc, tt.pathID), attrOrigType, tt.want)
		})
	}
}

func TestCirclePairing(t *testing.T) {
	src := `<svg>
  <g fill="red">
    <path id="circle_a" d="M1,1 A5,5 0 1 1 1,2"/>
    <path id="circle_b" d="M1,1 A5,5 0 1 1 1,2"/>
  </g>
</svg>`
	doc, summary := annotateString(t, src)

	for _, id := range []string{"circle_a", "circle_b"} {
		p := pathByID(t, doc, id)
		assertAttr(t, p, attrOrigType, "circle")
		assertAttr(t, p, attrOrigFill, "red")
	}
	if summary.Counts[domain.ShapeCircle] != 2 {
		t.Errorf("circle count = %d, want 2", summary.Counts[domain.ShapeCircle])
	}
}

func TestCirclePartnerAcrossGroups(t *testing.T) {
	src := `<svg>
  <g id="circle-fill" fill="green"><path id="fill1" d="M3,3 A1,1 0 1 1 3,4"/></g>
  <g><path id="circle_outline" d="M3,3 A1,1 0 1 1 3,4"/></g>
</svg>`
	doc, _ := annotateString(t, src)

	outline := pathByID(t, doc, "circle_outline")
	assertAttr(t, outline, attrOrigType, "circle")
	assertAttr(t, outline, attrOrigFill, "green")
}

func TestCircleWithoutPartner(t *testing.T) {
	src := `<svg><g fill="blue"><path id="circle_lonely" d="M9,9 A2,2 0 1 1 9,10"/></g></svg>`
	doc, summary := annotateString(t, src)

	p := pathByID(t, doc, "circle_lonely")
	assertAttr(t, p, attrOrigType, "circle")
	assertAttr(t, p, attrOrigFill, "blue")
	if summary.Unknown != 0 {
		t.Errorf("unknown = %d, want 0", summary.Unknown)
	}
}

func TestBadgeSignature(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want bool
	}{
		{"five linetos", "M0,0 L1,1 L2,2 L3,3 L4,4 L5,5 Z", true},
		{"four linetos", "M0,0 L1,1 L2,2 L3,3 L4,4 Z", false},
		{"six linetos", "M0,0 L1,1 L2,2 L3,3 L4,4 L5,5 L6,6 Z", false},
		{"no moveto", "L0,0 L1,1 L2,2 L3,3 L4,4 Z", false},
		{"relative moveto", "m0,0 L1,1 L2,2 L3,3 L4,4 L5,5 Z", false},
		{"close only", "Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBadge(tt.d); got != tt.want {
				t.Errorf("isBadge(%q) = %v, want %v", tt.d, got, tt.want)
			}

			doc, _ := annotateString(t, `<svg><g><path id="p" d="`+tt.d+`"/></g></svg>`)
			p := pathByID(t, doc, "p")
			if tt.want {
				assertAttr(t, p, attrOrigType, "badge")
			} else {
				assertNoAttr(t, p, attrOrigType)
			}
		})
	}
}

func TestFillScopedToGroup(t *testing.T) {
	src := `<svg>
  <g id="plain"><path id="p1" d="Z"/></g>
  <g fill="orange"><path id="p2" d="Z"/></g>
</svg>`
	doc, _ := annotateString(t, src)

	assertNoAttr(t, pathByID(t, doc, "p1"), attrOrigFill)
	assertAttr(t, pathByID(t, doc, "p2"), attrOrigFill, "orange")
}

func TestUnknownPassthrough(t *testing.T) {
	doc, summary := annotateString(t, `<svg><g><path id="blob" d="Z"/></g></svg>`)

	assertNoAttr(t, pathByID(t, doc, "blob"), attrOrigType)
	if summary.Unknown != 1 {
		t.Errorf("unknown = %d, want 1", summary.Unknown)
	}
	if summary.Paths != 1 {
		t.Errorf("paths = %d, want 1", summary.Paths)
	}
}

func TestExistingAttributesKept(t *testing.T) {
	src := `<svg><g fill="red" id="rect-g"><path id="p" d="Z" data-orig-fill="white" data-orig-type="text"/></g></svg>`
	doc, _ := annotateString(t, src)

	p := pathByID(t, doc, "p")
	assertAttr(t, p, attrOrigFill, "white")
	assertAttr(t, p, attrOrigType, "text")
}

func TestNestedGroupsOuterFirst(t *testing.T) {
	src := `<svg><g id="outer" fill="red"><g id="inner" fill="blue"><path id="rect1" d="Z"/></g></g></svg>`
	doc, _ := annotateString(t, src)

	assertAttr(t, pathByID(t, doc, "rect1"), attrOrigFill, "red")
}

func TestEndToEnd(t *testing.T) {
	const shared = "M5,5 L6,5 L6,6 L5,6 L4,4 L5,5 Z"
	src := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <g id="g1" fill="rgb(255,0,0)">
    <path id="rect10" d="M0,0 L10,0 L10,10 L0,10 Z"/>
  </g>
  <g id="g2" stroke="rgb(0,0,255)">
    <path id="badge_a" d="` + shared + `"/>
    <path id="other_x" d="` + shared + `"/>
  </g>
</svg>`

	out, summary, err := New(nil).Process([]byte(src), Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	rect := pathByID(t, doc, "rect10")
	assertAttr(t, rect, attrOrigType, "rect")
	assertAttr(t, rect, attrOrigFill, "rgb(255,0,0)")

	assertAttr(t, pathByID(t, doc, "badge_a"), attrOrigType, "badge")

	other := pathByID(t, doc, "other_x")
	assertAttr(t, other, attrOrigType, "badge")
	assertAttr(t, other, attrOrigFill, "rgb(0,0,255)")

	if summary.Counts[domain.ShapeRect] != 1 || summary.Counts[domain.ShapeBadge] != 2 {
		t.Errorf("counts = %v", summary.Counts)
	}
	if len(summary.Shapes) != 3 {
		t.Fatalf("shapes = %d, want 3", len(summary.Shapes))
	}
	if summary.Shapes[0].GroupID != "g1" {
		t.Errorf("rect10 group = %q, want g1", summary.Shapes[0].GroupID)
	}
}

func TestIdempotent(t *testing.T) {
	src := `<svg>
  <g id="g1" fill="red"><path id="circle_1" d="M1,1 A1,1 0 1 1 1,2"/><path id="text3" d="Z"/></g>
  <g stroke="black"><path id="circle_2" d="M1,1 A1,1 0 1 1 1,2"/><path id="hex" d="M0,0 L1,0 L2,1 L1,2 L0,2 L0,1 Z"/></g>
  <g fill="blue"><path id="hex_fill" d="M0,0 L1,0 L2,1 L1,2 L0,2 L0,1 Z"/></g>
</svg>`
	a := New(nil)

	first, _, err := a.Process([]byte(src), Options{})
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, _, err := a.Process(first, Options{})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("second pass changed document:\n%s\n---\n%s", first, second)
	}
}

func TestNamespacedInput(t *testing.T) {
	src := `<svg:svg xmlns:svg="http://www.w3.org/2000/svg">
  <svg:g id="rect-layer" fill="#fff"><svg:path id="a" d="M0,0 Z"/></svg:g>
</svg:svg>`
	out, summary, err := New(nil).Process([]byte(src), Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if summary.Counts[domain.ShapeRect] != 1 {
		t.Errorf("rect count = %d, want 1", summary.Counts[domain.ShapeRect])
	}
	if strings.Contains(string(out), "<svg:") {
		t.Errorf("output still carries prefixed tags:\n%s", out)
	}
}

func TestProcessMinify(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
    <g id="rect-g" fill="red">
        <path id="r" d="M0,0 L10,0 L10,10 Z"/>
    </g>
</svg>`
	out, _, err := New(nil).Process([]byte(src), Options{Minify: true})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(string(out), "data-orig-type") {
		t.Errorf("minified output lost annotation:\n%s", out)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte("   ")); err == nil {
		t.Error("expected error for empty document")
	}
}
