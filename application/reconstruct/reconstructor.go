// Package reconstruct rebuilds a semantic scene graph from the flat,
// id-less primitive tree a diagram renderer emits. All structure is
// inferred from geometry and from the styling-token contract; nothing
// in the input carries an identifier or a relationship.
//
// Every association here is a small-N nearest-neighbor search over tens
// of elements, so the passes scan in O(n²) rather than maintaining a
// spatial index. That is a deliberate trade for simplicity at typical
// diagram sizes.
package reconstruct

import (
	"strings"

	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
)

// Reconstructor turns one raw vector document into a scene graph. It
// runs once per document and retains nothing afterwards.
type Reconstructor struct {
	contract primitives.Contract
	th       Thresholds
	logger   *zap.Logger
}

// NewReconstructor creates a reconstructor over a classification
// contract and threshold set.
func NewReconstructor(contract primitives.Contract, th Thresholds, logger *zap.Logger) *Reconstructor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconstructor{contract: contract, th: th, logger: logger}
}

// Reconstruct runs the full inference pipeline over the document root.
func (r *Reconstructor) Reconstruct(doc *primitives.Element) *scene.Graph {
	p := &pass{
		Reconstructor: r,
		doc:           doc,
		all:           doc.FindAll(func(*primitives.Element) bool { return true }),
	}

	family := p.detectFamily()
	p.findGroupChrome()
	p.findEdgeLabelRects()
	p.clusterNodes(family)
	p.expandNodes()
	if family == scene.FamilySequence {
		p.attachSequenceChrome()
	}
	// Groups claim their header text ahead of edge-label matching.
	p.buildGroups()
	p.identifyEdges()
	p.associateLabels()
	p.associateDecorations()

	r.logger.Debug("scene reconstructed",
		zap.String("family", string(family)),
		zap.Int("nodes", len(p.nodes)),
		zap.Int("edges", len(p.edges)),
		zap.Int("groups", len(p.groups)),
	)

	return &scene.Graph{
		Family:   family,
		Nodes:    p.nodes,
		Edges:    p.edges,
		Groups:   p.groups,
		Document: doc,
	}
}

// pass holds the intermediate state of one reconstruction.
type pass struct {
	*Reconstructor

	doc *primitives.Element
	all []*primitives.Element

	// chrome discovered before clustering, excluded from it
	clusterRects   []*primitives.Element
	headerRects    []*primitives.Element
	edgeLabelRects []*primitives.Element

	nodes  []*scene.Node
	edges  []*scene.Edge
	groups []*scene.Group

	// claimed marks primitives owned by an edge label or group chrome
	// so later passes never re-associate them.
	claimed map[*primitives.Element]bool
}

func (p *pass) claim(e *primitives.Element) {
	if p.claimed == nil {
		p.claimed = make(map[*primitives.Element]bool)
	}
	p.claimed[e] = true
}

func (p *pass) isClaimed(e *primitives.Element) bool {
	return p.claimed[e]
}

// isChrome reports whether an element is group or edge-label furniture.
func (p *pass) isChrome(e *primitives.Element) bool {
	for _, r := range p.clusterRects {
		if r == e {
			return true
		}
	}
	for _, r := range p.headerRects {
		if r == e {
			return true
		}
	}
	for _, r := range p.edgeLabelRects {
		if r == e {
			return true
		}
	}
	return p.isClaimed(e)
}

// findGroupChrome records container and header rects ahead of
// clustering.
func (p *pass) findGroupChrome() {
	for _, e := range p.all {
		if e.InDefs() {
			continue
		}
		switch {
		case p.contract.IsClusterRect(e):
			p.clusterRects = append(p.clusterRects, e)
		case p.contract.IsClusterHeaderRect(e):
			p.headerRects = append(p.headerRects, e)
		}
	}
}

// findEdgeLabelRects records edge-label background rects ahead of
// clustering.
func (p *pass) findEdgeLabelRects() {
	for _, e := range p.all {
		if !e.InDefs() && p.contract.IsEdgeLabelRect(e, p.th.EdgeLabelMaxHeight) {
			p.edgeLabelRects = append(p.edgeLabelRects, e)
		}
	}
}

// isConnector reports whether an element draws a connector run rather
// than a shape: polylines, unfilled paths, and lines carrying an
// arrowhead marker.
func (p *pass) isConnector(e *primitives.Element) bool {
	switch e.Tag {
	case "polyline":
		return true
	case "path":
		fill := e.Fill()
		return fill == "" || fill == "none"
	case "line":
		return e.MarkerEnd() != ""
	}
	return false
}

// nodeOwning returns the node whose owned set covers el or one of its
// ancestors, or nil.
func (p *pass) nodeOwning(el *primitives.Element) *scene.Node {
	for _, n := range p.nodes {
		if n.Owns(el) {
			return n
		}
	}
	return nil
}

// textContent flattens an element's text, including tspan children.
func textContent(e *primitives.Element) string {
	var sb strings.Builder
	e.Walk(func(el *primitives.Element) {
		sb.WriteString(el.Text)
	})
	return strings.TrimSpace(sb.String())
}
