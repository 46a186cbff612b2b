package ports

import (
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
)

// DocumentCodec decodes rendered vector markup into the primitive tree
// and serializes a mutated tree back to markup.
type DocumentCodec interface {
	Parse(document string) (*primitives.Element, error)
	Serialize(root *primitives.Element) string
}
