package annotate

import (
	"strings"

	"github.com/beevik/etree"
)

// FindMatchingD returns the first path under root, in document order, whose
// d attribute equals d exactly and whose id differs from excludedID. With
// circle set the id must also start with "circle". It returns nil when no
// path qualifies.
//
// Exported drawings duplicate a shape as two paths with byte-identical
// geometry, one for the fill and one for the outline; this finds the other
// half.
func FindMatchingD(root *etree.Element, d, excludedID string, circle bool) *etree.Element {
	for _, p := range collect(root, "path") {
		if attrValue(p, "d") != d {
			continue
		}
		id := attrValue(p, "id")
		if id == excludedID {
			continue
		}
		if circle && !strings.HasPrefix(id, "circle") {
			continue
		}
		return p
	}
	return nil
}
