package reconstruct

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds are the empirical distances the reconstructor matches
// against. They are tuned to the upstream renderer's typical node sizes
// and exposed as configuration rather than inlined, since no principled
// derivation exists for them.
type Thresholds struct {
	// EndpointSlack widens a node's half-max-dimension radius when
	// resolving connector endpoints.
	EndpointSlack float64 `yaml:"endpointSlack"`
	// LabelAttach is the maximum projected distance at which a text
	// element still counts as an edge label.
	LabelAttach float64 `yaml:"labelAttach"`
	// DecorAttach is the maximum distance from a glyph to an edge
	// endpoint for decoration association.
	DecorAttach float64 `yaml:"decorAttach"`
	// BadgeRadiusMax: circles at or under this radius are arity badges,
	// never nodes.
	BadgeRadiusMax float64 `yaml:"badgeRadiusMax"`
	// EdgeLabelMaxHeight is the height ceiling for edge-label
	// background rects.
	EdgeLabelMaxHeight float64 `yaml:"edgeLabelMaxHeight"`
	// LabelPad expands a node box when electing its label.
	LabelPad float64 `yaml:"labelPad"`
	// CaptionBelowMax is how far below a node box a caption may sit for
	// the outside-label fallback.
	CaptionBelowMax float64 `yaml:"captionBelowMax"`
	// DecorGlyphMax is the largest bounding dimension of an endpoint
	// decoration glyph.
	DecorGlyphMax float64 `yaml:"decorGlyphMax"`
	// LifelineMinExtent is the minimum vertical run of a lifeline.
	LifelineMinExtent float64 `yaml:"lifelineMinExtent"`
	// CenterTol matches lifelines and activation bars to a node's
	// horizontal center.
	CenterTol float64 `yaml:"centerTol"`
	// ActivationMaxWidth is the widest rect still read as an
	// activation bar in sequence diagrams.
	ActivationMaxWidth float64 `yaml:"activationMaxWidth"`
}

// DefaultThresholds returns the values tuned to the current renderer.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EndpointSlack:      10,
		LabelAttach:        30,
		DecorAttach:        30,
		BadgeRadiusMax:     8,
		EdgeLabelMaxHeight: 30,
		LabelPad:           4,
		CaptionBelowMax:    24,
		DecorGlyphMax:      16,
		LifelineMinExtent:  40,
		CenterTol:          2,
		ActivationMaxWidth: 14,
	}
}

// LoadThresholds reads overrides from a YAML file over the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	data, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return DefaultThresholds(), fmt.Errorf("parse thresholds file: %w", err)
	}
	return th, nil
}
