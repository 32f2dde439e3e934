package annotate

import (
	"strings"

	"github.com/beevik/etree"
)

// StripNamespaces removes namespace prefixes from el and all of its
// descendants, so that "svg:g" becomes "g". Attributes are left alone.
func StripNamespaces(el *etree.Element) {
	el.Space = ""
	// etree splits "ns:tag" on read, but trees built by hand may still carry
	// the prefix in Tag.
	if _, local, ok := strings.Cut(el.Tag, ":"); ok {
		el.Tag = local
	}
	for _, c := range el.ChildElements() {
		StripNamespaces(c)
	}
}
