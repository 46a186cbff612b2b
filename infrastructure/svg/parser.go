// Package svg decodes a rendered SVG document into the primitive tree
// and serializes the mutated tree back to markup. The document is
// treated as opaque vector output: element order and unknown
// attributes survive the round trip untouched.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
)

// Parse decodes SVG markup into a primitive element tree rooted at the
// outermost element.
func Parse(document string) (*primitives.Element, error) {
	dec := xml.NewDecoder(strings.NewReader(document))
	var root, current *primitives.Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := primitives.NewElement(t.Name.Local)
			for _, a := range t.Attr {
				name := a.Name.Local
				switch {
				case a.Name.Space == "xmlns":
					name = "xmlns:" + a.Name.Local
				case a.Name.Space != "":
					// Preserve prefixed attributes like xlink:href.
					name = prefixFor(a.Name.Space) + ":" + a.Name.Local
				}
				el.SetAttr(name, a.Value)
			}
			if current != nil {
				current.Append(el)
			} else if root == nil {
				root = el
			} else {
				return nil, fmt.Errorf("parse document: multiple roots")
			}
			current = el
		case xml.EndElement:
			if current == nil {
				return nil, fmt.Errorf("parse document: unbalanced close tag %q", t.Name.Local)
			}
			current = current.Parent
		case xml.CharData:
			if current != nil {
				current.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parse document: no root element")
	}
	if current != nil {
		return nil, fmt.Errorf("parse document: unterminated element %q", current.Tag)
	}
	return root, nil
}

// prefixFor maps the namespace URIs the renderer emits back to their
// conventional prefixes.
func prefixFor(space string) string {
	switch space {
	case "http://www.w3.org/1999/xlink":
		return "xlink"
	case "http://www.w3.org/XML/1998/namespace":
		return "xml"
	default:
		return space
	}
}
