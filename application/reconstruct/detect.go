package reconstruct

import (
	"strings"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
)

// detectFamily inspects family-specific styling conventions in a fixed
// priority order; the first match wins and the default is the
// flowchart-like family. A document with no shape content at all is
// unknown.
func (p *pass) detectFamily() scene.Family {
	switch {
	case p.looksSequence():
		return scene.FamilySequence
	case p.looksClass():
		return scene.FamilyClass
	case p.looksER():
		return scene.FamilyER
	case p.looksState():
		return scene.FamilyState
	case p.hasShapes():
		return scene.FamilyFlowchart
	default:
		return scene.FamilyUnknown
	}
}

// looksSequence matches sequence message arrow markers or dashed
// lifelines.
func (p *pass) looksSequence() bool {
	for _, e := range p.all {
		if e.Tag == "marker" && primitives.MatchesMarker(e.ID(), p.contract.SequenceMarkers) {
			return true
		}
		if !e.InDefs() && p.contract.IsLifeline(e, p.th.LifelineMinExtent) {
			return true
		}
	}
	return false
}

// looksClass matches member-visibility glyphs in monospaced text.
func (p *pass) looksClass() bool {
	for _, e := range p.all {
		if e.InDefs() || !p.contract.IsMonospaceText(e) {
			continue
		}
		t := textContent(e)
		if t == "" {
			continue
		}
		switch t[0] {
		case '+', '-', '#', '~':
			return true
		}
	}
	return false
}

// looksER matches key-badge fills or relationship cardinality markers.
func (p *pass) looksER() bool {
	for _, e := range p.all {
		if e.Tag == "marker" && primitives.MatchesMarker(e.ID(), p.contract.RelationMarkers) {
			return true
		}
		if !e.InDefs() && p.contract.IsKeyBadge(e) {
			return true
		}
	}
	return false
}

// looksState matches pseudostate circle fills.
func (p *pass) looksState() bool {
	for _, e := range p.all {
		if !e.InDefs() && p.contract.IsPseudostate(e) {
			return true
		}
	}
	return false
}

func (p *pass) hasShapes() bool {
	for _, e := range p.all {
		if e.InDefs() {
			continue
		}
		switch e.Tag {
		case "rect", "circle", "ellipse", "polygon", "polyline", "path", "line", "text":
			return true
		}
	}
	return false
}

// shapeKindOf classifies the rendered silhouette of a shape primitive.
func shapeKindOf(e *primitives.Element) scene.ShapeKind {
	switch e.Tag {
	case "rect":
		if e.Float("rx") > 0 || e.Float("ry") > 0 {
			return scene.ShapeRounded
		}
		return scene.ShapeRectangle
	case "circle", "ellipse":
		return scene.ShapeCircle
	case "polygon":
		if pts := e.Points(); len(pts) == 4 {
			return scene.ShapeDiamond
		}
		return scene.ShapePolygon
	case "path":
		if strings.Contains(strings.ToLower(e.Class()), "stadium") {
			return scene.ShapeStadium
		}
		return scene.ShapePolygon
	default:
		return scene.ShapeUnknown
	}
}
