package scene

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// idNamespace seeds every content-derived identifier. Changing it
// invalidates all persisted layouts, so it never does.
var idNamespace = uuid.MustParse("9f2d7c31-6b44-4c5a-8e0f-25c1b7a90d13")

// DeriveNodeID hashes a node's rounded origin and label into a
// deterministic identifier: identical documents reconstruct to
// identical ids, which is what lets a persisted layout re-attach across
// sessions.
func DeriveNodeID(origin geometry.Point, label string) NodeID {
	seed := fmt.Sprintf("node:%d:%d:%s", round(origin.X), round(origin.Y), label)
	return NodeID(uuid.NewSHA1(idNamespace, []byte(seed)).String())
}

// DeriveGroupID hashes a group's box dimensions and label.
func DeriveGroupID(box geometry.Box, label string) string {
	seed := fmt.Sprintf("group:%d:%d:%s", round(box.W), round(box.H), label)
	return uuid.NewSHA1(idNamespace, []byte(seed)).String()
}

// DeriveEdgeID hashes the resolved endpoint identifiers and the rounded
// terminal points, so parallel edges between the same pair stay
// distinct.
func DeriveEdgeID(source, target NodeID, first, last geometry.Point) string {
	seed := fmt.Sprintf("edge:%s:%s:%d:%d:%d:%d",
		source, target, round(first.X), round(first.Y), round(last.X), round(last.Y))
	return uuid.NewSHA1(idNamespace, []byte(seed)).String()
}

// DeriveDocumentID binds a source document to a storage namespace, so
// distinct documents never collide in the layout store.
func DeriveDocumentID(namespace, document string) string {
	return uuid.NewSHA1(idNamespace, []byte("doc:"+namespace+":"+document)).String()
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
