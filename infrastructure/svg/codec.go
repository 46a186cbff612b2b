package svg

import (
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
)

// Codec adapts this package's Parse and Serialize to the application
// layer's document codec port.
type Codec struct{}

func (Codec) Parse(document string) (*primitives.Element, error) {
	return Parse(document)
}

func (Codec) Serialize(root *primitives.Element) string {
	return Serialize(root)
}
