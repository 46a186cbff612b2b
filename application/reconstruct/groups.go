package reconstruct

import (
	"math"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// buildGroups pairs each container rect with its optional header band,
// elects a header label, fixes membership by original containment and
// derives the padding held for later refits.
func (p *pass) buildGroups() {
	for _, rect := range p.clusterRects {
		box, ok := rect.BBox()
		if !ok || box.IsDegenerate() {
			continue
		}

		header := p.matchHeader(rect)
		var labelEl *primitives.Element
		label := ""
		if header != nil {
			if hbox, ok := header.BBox(); ok {
				labelEl = p.leftmostTextIn(hbox)
			}
		}
		if labelEl != nil {
			label = textContent(labelEl)
			p.claim(labelEl)
		}

		var members []scene.NodeID
		for _, n := range p.nodes {
			if box.Contains(n.Box().Center()) {
				members = append(members, n.ID())
			}
		}

		padding := p.derivePadding(box, members)
		id := scene.DeriveGroupID(box, label)
		p.groups = append(p.groups, scene.NewGroup(id, rect, header, labelEl, label, box, members, padding))
	}
}

// matchHeader finds the header rect sharing the container's top-left
// corner and width.
func (p *pass) matchHeader(rect *primitives.Element) *primitives.Element {
	rbox, ok := rect.BBox()
	if !ok {
		return nil
	}
	for _, h := range p.headerRects {
		hbox, ok := h.BBox()
		if !ok {
			continue
		}
		if math.Abs(hbox.X-rbox.X) < 0.5 && math.Abs(hbox.Y-rbox.Y) < 0.5 && math.Abs(hbox.W-rbox.W) < 0.5 {
			return h
		}
	}
	return nil
}

// leftmostTextIn returns the text with the smallest anchor x inside the
// band.
func (p *pass) leftmostTextIn(band geometry.Box) *primitives.Element {
	var best *primitives.Element
	bestX := math.Inf(1)
	for _, e := range p.texts() {
		anchor := e.AnchorPoint()
		if band.Contains(anchor) && anchor.X < bestX {
			best, bestX = e, anchor.X
		}
	}
	return best
}

// derivePadding measures the gap between the container edges and the
// members' bounding box. The padding is held fixed for the session so a
// refit preserves the original margin.
func (p *pass) derivePadding(box geometry.Box, members []scene.NodeID) scene.Insets {
	var mbox geometry.Box
	have := false
	for _, id := range members {
		for _, n := range p.nodes {
			if n.ID() != id {
				continue
			}
			if !have {
				mbox, have = n.Box(), true
			} else {
				mbox = mbox.Union(n.Box())
			}
		}
	}
	if !have {
		return scene.Insets{}
	}
	return scene.Insets{
		Left:   mbox.X - box.X,
		Top:    mbox.Y - box.Y,
		Right:  (box.X + box.W) - (mbox.X + mbox.W),
		Bottom: (box.Y + box.H) - (mbox.Y + mbox.H),
	}
}
