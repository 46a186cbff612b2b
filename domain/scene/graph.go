package scene

import "github.com/nibzard/beautiful-mermaid/domain/primitives"

// Family is the detected diagram family.
type Family string

const (
	FamilyFlowchart Family = "flowchart"
	FamilySequence  Family = "sequence"
	FamilyState     Family = "state"
	FamilyClass     Family = "class"
	FamilyER        Family = "er"
	FamilyUnknown   Family = "unknown"
)

// Graph is the aggregate one reconstruction pass produces. It is handed
// to exactly one tracker, which then owns all mutable position state.
type Graph struct {
	Family Family
	Nodes  []*Node
	Edges  []*Edge
	Groups []*Group

	// Root of the primitive tree the graph was reconstructed from.
	Document *primitives.Element
}

// NodeByID returns the node with the given identifier, or nil.
func (g *Graph) NodeByID(id NodeID) *Node {
	for _, n := range g.Nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// EdgeByID returns the edge with the given identifier, or nil.
func (g *Graph) EdgeByID(id string) *Edge {
	for _, e := range g.Edges {
		if e.ID() == id {
			return e
		}
	}
	return nil
}
