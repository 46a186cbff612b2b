package primitives

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contract is the primitive classification contract: the table of
// symbolic styling tokens the upstream renderer emits, mapped to the
// structural roles the reconstructor infers from them. The token names
// are a fixed agreement with the renderer; bump Version when that
// agreement changes rather than editing matchers in place.
type Contract struct {
	Version int `yaml:"version"`

	// Fill tokens.
	NodeFill        string `yaml:"nodeFill"`
	ClusterFill     string `yaml:"clusterFill"`
	ClusterHeader   string `yaml:"clusterHeader"`
	KeyBadgeFill    string `yaml:"keyBadgeFill"`
	PseudostateFill string `yaml:"pseudostateFill"`

	// Stroke tokens.
	EdgeStroke      string `yaml:"edgeStroke"`
	EdgeLabelStroke string `yaml:"edgeLabelStroke"`
	InnerStroke     string `yaml:"innerStroke"`

	// Dash pattern the renderer uses for sequence lifelines.
	LifelineDash string `yaml:"lifelineDash"`

	// Marker-id fragments that identify sequence message arrowheads.
	SequenceMarkers []string `yaml:"sequenceMarkers"`
	// Marker-id fragments for entity-relationship cardinality markers.
	RelationMarkers []string `yaml:"relationMarkers"`
}

// DefaultContract returns the contract for the current renderer output.
func DefaultContract() Contract {
	return Contract{
		Version:         1,
		NodeFill:        "--bm-node-bg",
		ClusterFill:     "--bm-cluster-bg",
		ClusterHeader:   "--bm-cluster-header",
		KeyBadgeFill:    "--bm-key-badge",
		PseudostateFill: "--bm-pseudostate",
		EdgeStroke:      "--bm-edge",
		EdgeLabelStroke: "--bm-label-frame",
		InnerStroke:     "--bm-inner-stroke",
		LifelineDash:    "3,3",
		SequenceMarkers: []string{"messageEnd", "sequence"},
		RelationMarkers: []string{"OnlyOne", "ZeroOrOne", "OneOrMore", "ZeroOrMore"},
	}
}

// LoadContract reads a contract override from a YAML file, filling any
// field the file leaves empty from the defaults.
func LoadContract(path string) (Contract, error) {
	c := DefaultContract()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read contract file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return DefaultContract(), fmt.Errorf("parse contract file: %w", err)
	}
	return c, nil
}

// matchesToken reports whether a paint value references the token,
// tolerating the var() wrapper and fallback arguments.
func matchesToken(value, token string) bool {
	return token != "" && value != "" && strings.Contains(value, token)
}

// HasNodeFill reports whether the element is painted with the node fill
// token.
func (c Contract) HasNodeFill(e *Element) bool {
	return matchesToken(e.Fill(), c.NodeFill)
}

// IsClusterRect reports whether a rect is a group container box.
func (c Contract) IsClusterRect(e *Element) bool {
	return e.Tag == "rect" && matchesToken(e.Fill(), c.ClusterFill)
}

// IsClusterHeaderRect reports whether a rect is a group header band.
func (c Contract) IsClusterHeaderRect(e *Element) bool {
	return e.Tag == "rect" && matchesToken(e.Fill(), c.ClusterHeader)
}

// IsEdgeLabelRect reports whether a rect is an edge-label background:
// the label frame stroke token plus a height ceiling, so tall node
// bodies with a similar stroke never match.
func (c Contract) IsEdgeLabelRect(e *Element, maxHeight float64) bool {
	return e.Tag == "rect" &&
		matchesToken(e.Stroke(), c.EdgeLabelStroke) &&
		e.Float("height") <= maxHeight
}

// IsKeyBadge reports whether a circle is a relationship key badge.
func (c Contract) IsKeyBadge(e *Element) bool {
	return e.Tag == "circle" && matchesToken(e.Fill(), c.KeyBadgeFill)
}

// IsPseudostate reports whether a circle is a state-diagram
// pseudostate.
func (c Contract) IsPseudostate(e *Element) bool {
	return e.Tag == "circle" && matchesToken(e.Fill(), c.PseudostateFill)
}

// HasEdgeStroke reports whether the element carries the connector
// stroke token.
func (c Contract) HasEdgeStroke(e *Element) bool {
	return matchesToken(e.Stroke(), c.EdgeStroke)
}

// IsLifeline reports whether a line matches the lifeline dash pattern
// and runs vertically for at least minExtent.
func (c Contract) IsLifeline(e *Element, minExtent float64) bool {
	if e.Tag != "line" || e.DashPattern() != c.LifelineDash {
		return false
	}
	dy := e.Float("y2") - e.Float("y1")
	if dy < 0 {
		dy = -dy
	}
	dx := e.Float("x2") - e.Float("x1")
	if dx < 0 {
		dx = -dx
	}
	return dx < 1 && dy >= minExtent
}

// IsMonospaceText reports whether a text element uses the monospaced
// member-row convention.
func (c Contract) IsMonospaceText(e *Element) bool {
	return e.Tag == "text" && strings.Contains(strings.ToLower(e.FontFamily()), "mono")
}

// MatchesMarker reports whether a marker id contains any of the given
// fragments.
func MatchesMarker(id string, fragments []string) bool {
	for _, f := range fragments {
		if f != "" && strings.Contains(id, f) {
			return true
		}
	}
	return false
}
