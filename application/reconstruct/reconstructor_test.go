package reconstruct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/beautiful-mermaid/application/reconstruct"
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/infrastructure/svg"
)

// flowchartDoc is a four-node decision diagram: Start flows into Check,
// which branches to Left and Right with framed Yes/No labels.
const flowchartDoc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 400">` +
	`<defs><marker id="arrowEnd"><path d="M0,0L8,4L0,8Z"/></marker></defs>` +
	`<rect x="100" y="100" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="150" y="124">Start</text>` +
	`<rect x="100" y="200" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="150" y="224">Check</text>` +
	`<rect x="20" y="300" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="70" y="324">Left</text>` +
	`<rect x="220" y="300" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="270" y="324">Right</text>` +
	`<path d="M150,140L150,200" fill="none" stroke="var(--bm-edge)" marker-end="url(#arrowEnd)"/>` +
	`<path d="M130,240L130,270L70,270L70,300" fill="none" stroke="var(--bm-edge)" marker-end="url(#arrowEnd)"/>` +
	`<path d="M170,240L170,270L270,270L270,300" fill="none" stroke="var(--bm-edge)" marker-end="url(#arrowEnd)"/>` +
	`<rect x="90" y="263" width="24" height="14" fill="none" stroke="var(--bm-label-frame)"/>` +
	`<text x="95" y="273">Yes</text>` +
	`<rect x="210" y="263" width="24" height="14" fill="none" stroke="var(--bm-label-frame)"/>` +
	`<text x="215" y="273">No</text>` +
	`</svg>`

func reconstructDoc(t *testing.T, doc string) *scene.Graph {
	t.Helper()
	root, err := svg.Parse(doc)
	require.NoError(t, err)
	r := reconstruct.NewReconstructor(primitives.DefaultContract(), reconstruct.DefaultThresholds(), nil)
	return r.Reconstruct(root)
}

func nodeByLabel(t *testing.T, g *scene.Graph, label string) *scene.Node {
	t.Helper()
	for _, n := range g.Nodes {
		if n.Label() == label {
			return n
		}
	}
	t.Fatalf("no node labeled %q", label)
	return nil
}

func edgeByLabel(g *scene.Graph, label string) *scene.Edge {
	for _, e := range g.Edges {
		if e.Label != nil && e.Label.Text == label {
			return e
		}
	}
	return nil
}

func TestReconstruct_Flowchart(t *testing.T) {
	g := reconstructDoc(t, flowchartDoc)

	assert.Equal(t, scene.FamilyFlowchart, g.Family)
	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Edges, 3)
	assert.Empty(t, g.Groups)

	labels := make(map[string]bool)
	for _, n := range g.Nodes {
		labels[n.Label()] = true
		assert.Equal(t, scene.ShapeRectangle, n.Shape())
	}
	assert.Equal(t, map[string]bool{"Start": true, "Check": true, "Left": true, "Right": true}, labels)

	for _, e := range g.Edges {
		assert.True(t, e.Resolved(), "edge %s must resolve both endpoints", e.ID())
	}
}

func TestReconstruct_FlowchartEdgeLabels(t *testing.T) {
	g := reconstructDoc(t, flowchartDoc)

	check := nodeByLabel(t, g, "Check")
	left := nodeByLabel(t, g, "Left")
	right := nodeByLabel(t, g, "Right")

	yes := edgeByLabel(g, "Yes")
	require.NotNil(t, yes)
	assert.Equal(t, check.ID(), yes.SourceID)
	assert.Equal(t, left.ID(), yes.TargetID)
	assert.NotNil(t, yes.Label.Background)

	no := edgeByLabel(g, "No")
	require.NotNil(t, no)
	assert.Equal(t, check.ID(), no.SourceID)
	assert.Equal(t, right.ID(), no.TargetID)

	// Label text never leaks into the node set.
	for _, n := range g.Nodes {
		assert.NotEqual(t, "Yes", n.Label())
		assert.NotEqual(t, "No", n.Label())
	}
}

func TestReconstruct_FlowchartEndpointOffsets(t *testing.T) {
	g := reconstructDoc(t, flowchartDoc)

	start := nodeByLabel(t, g, "Start")
	check := nodeByLabel(t, g, "Check")

	var first *scene.Edge
	for _, e := range g.Edges {
		if e.SourceID == start.ID() {
			first = e
		}
	}
	require.NotNil(t, first)
	assert.Equal(t, check.ID(), first.TargetID)

	// Offsets reproduce the original entry points from the node centers.
	assert.Equal(t, first.Points[0], start.Box().Center().Add(first.SourceOff))
	assert.Equal(t, first.Points[len(first.Points)-1], check.Box().Center().Add(first.TargetOff))
}

func TestReconstruct_Deterministic(t *testing.T) {
	first := reconstructDoc(t, flowchartDoc)
	second := reconstructDoc(t, flowchartDoc)

	ids := func(g *scene.Graph) map[string]bool {
		out := make(map[string]bool)
		for _, n := range g.Nodes {
			out["n:"+string(n.ID())] = true
		}
		for _, e := range g.Edges {
			out["e:"+e.ID()] = true
		}
		return out
	}

	assert.Equal(t, ids(first), ids(second))
}

const groupDoc = `<svg xmlns="http://www.w3.org/2000/svg">` +
	`<rect x="80" y="80" width="140" height="80" fill="var(--bm-cluster-bg)"/>` +
	`<rect x="80" y="80" width="140" height="20" fill="var(--bm-cluster-header)"/>` +
	`<text x="90" y="94">Zone</text>` +
	`<rect x="100" y="110" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="150" y="134">Inner</text>` +
	`</svg>`

func TestReconstruct_Group(t *testing.T) {
	g := reconstructDoc(t, groupDoc)

	require.Len(t, g.Nodes, 1)
	require.Len(t, g.Groups, 1)

	inner := nodeByLabel(t, g, "Inner")
	grp := g.Groups[0]

	assert.Equal(t, "Zone", grp.Label())
	assert.Equal(t, []scene.NodeID{inner.ID()}, grp.Members())
	assert.Equal(t, scene.Insets{Left: 20, Top: 30, Right: 20, Bottom: 10}, grp.Padding())

	// Container chrome never becomes a node.
	for _, n := range g.Nodes {
		assert.NotEqual(t, "Zone", n.Label())
	}
}

const sequenceDoc = `<svg xmlns="http://www.w3.org/2000/svg">` +
	`<rect x="40" y="20" width="80" height="30" fill="var(--bm-node-bg)"/>` +
	`<text x="80" y="40">Alice</text>` +
	`<rect x="200" y="20" width="80" height="30" fill="var(--bm-node-bg)"/>` +
	`<text x="240" y="40">Bob</text>` +
	`<line x1="80" y1="50" x2="80" y2="200" stroke="var(--bm-edge)" stroke-dasharray="3,3"/>` +
	`<line x1="240" y1="50" x2="240" y2="200" stroke="var(--bm-edge)" stroke-dasharray="3,3"/>` +
	`<rect x="75" y="70" width="10" height="60" fill="var(--bm-node-bg)"/>` +
	`<line x1="85" y1="70" x2="235" y2="70" stroke="var(--bm-edge)" marker-end="url(#msgEnd)"/>` +
	`<text x="150" y="64">hello</text>` +
	`<defs><marker id="messageEnd"><path d="M0,0L8,4L0,8Z"/></marker></defs>` +
	`</svg>`

func TestReconstruct_Sequence(t *testing.T) {
	g := reconstructDoc(t, sequenceDoc)

	assert.Equal(t, scene.FamilySequence, g.Family)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)

	alice := nodeByLabel(t, g, "Alice")
	bob := nodeByLabel(t, g, "Bob")

	// Participant box, label, lifeline and activation bar drag as one.
	assert.Len(t, alice.Elements(), 4)
	assert.Len(t, bob.Elements(), 3)

	msg := g.Edges[0]
	assert.Equal(t, alice.ID(), msg.SourceID)
	assert.Equal(t, bob.ID(), msg.TargetID)
	require.NotNil(t, msg.Label)
	assert.Equal(t, "hello", msg.Label.Text)
}

func TestReconstruct_FamilyDetection(t *testing.T) {
	erDoc := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect x="20" y="20" width="120" height="60" fill="var(--bm-node-bg)"/>` +
		`<text x="80" y="40">USER</text>` +
		`<circle cx="35" cy="60" r="5" fill="var(--bm-key-badge)"/>` +
		`<text x="50" y="64" style="font-family:monospace">id</text>` +
		`</svg>`
	classDoc := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect x="20" y="20" width="120" height="80" fill="var(--bm-node-bg)"/>` +
		`<text x="80" y="40">Account</text>` +
		`<text x="30" y="60" style="font-family:JetBrains Mono">+balance: int</text>` +
		`</svg>`
	stateDoc := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<circle cx="50" cy="50" r="7" fill="var(--bm-pseudostate)"/>` +
		`<rect x="100" y="30" width="80" height="40" fill="var(--bm-node-bg)"/>` +
		`<text x="140" y="54">Idle</text>` +
		`</svg>`
	emptyDoc := `<svg xmlns="http://www.w3.org/2000/svg"></svg>`

	assert.Equal(t, scene.FamilyER, reconstructDoc(t, erDoc).Family)
	assert.Equal(t, scene.FamilyClass, reconstructDoc(t, classDoc).Family)
	assert.Equal(t, scene.FamilyState, reconstructDoc(t, stateDoc).Family)
	assert.Equal(t, scene.FamilyUnknown, reconstructDoc(t, emptyDoc).Family)
}

func TestReconstruct_BadgeNeverBecomesNode(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect x="20" y="20" width="120" height="60" fill="var(--bm-node-bg)"/>` +
		`<text x="80" y="40">USER</text>` +
		`<circle cx="35" cy="60" r="5" fill="var(--bm-key-badge)"/>` +
		`<text x="50" y="64" style="font-family:monospace">id</text>` +
		`</svg>`

	g := reconstructDoc(t, doc)

	require.Len(t, g.Nodes, 1)
	user := nodeByLabel(t, g, "USER")
	// The badge and its member row are absorbed into the entity.
	assert.Len(t, user.Elements(), 4)
}

// lineDecorDoc finishes its connector with a short plain line glyph,
// the way relationship-arity markers render.
const lineDecorDoc = `<svg xmlns="http://www.w3.org/2000/svg">` +
	`<rect x="0" y="100" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="50" y="124">A</text>` +
	`<rect x="200" y="100" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="250" y="124">B</text>` +
	`<path d="M100,120L200,120" fill="none" stroke="var(--bm-edge)" marker-end="url(#arrowEnd)"/>` +
	`<line x1="180" y1="112" x2="194" y2="126" stroke="var(--bm-edge)"/>` +
	`<defs><marker id="arrowEnd"><path d="M0,0L8,4L0,8Z"/></marker></defs>` +
	`</svg>`

func TestReconstruct_LineDecorationGlyph(t *testing.T) {
	g := reconstructDoc(t, lineDecorDoc)

	require.Len(t, g.Edges, 1)
	edge := g.Edges[0]
	require.Len(t, edge.Decor, 1)

	dec := edge.Decor[0]
	assert.Equal(t, "line", dec.El.Tag)
	assert.False(t, dec.AtSource)
	assert.Equal(t, -13.0, dec.Offset.X)
	assert.Equal(t, -1.0, dec.Offset.Y)
}

// headerStealDoc runs a connector directly under the group header
// text, well within label-attachment range of it.
const headerStealDoc = `<svg xmlns="http://www.w3.org/2000/svg">` +
	`<rect x="80" y="80" width="140" height="80" fill="var(--bm-cluster-bg)"/>` +
	`<rect x="80" y="80" width="140" height="20" fill="var(--bm-cluster-header)"/>` +
	`<text x="90" y="94">Zone</text>` +
	`<rect x="100" y="110" width="100" height="40" fill="var(--bm-node-bg)"/>` +
	`<text x="150" y="134">Inner</text>` +
	`<rect x="0" y="0" width="60" height="30" fill="var(--bm-node-bg)"/>` +
	`<text x="30" y="20">Outside</text>` +
	`<path d="M30,30L30,90L110,90" fill="none" stroke="var(--bm-edge)" marker-end="url(#arrowEnd)"/>` +
	`<defs><marker id="arrowEnd"><path d="M0,0L8,4L0,8Z"/></marker></defs>` +
	`</svg>`

func TestReconstruct_GroupHeaderTextNeverBecomesEdgeLabel(t *testing.T) {
	g := reconstructDoc(t, headerStealDoc)

	require.Len(t, g.Groups, 1)
	assert.Equal(t, "Zone", g.Groups[0].Label())

	require.Len(t, g.Edges, 1)
	assert.True(t, g.Edges[0].Resolved())
	assert.Nil(t, g.Edges[0].Label)
}
