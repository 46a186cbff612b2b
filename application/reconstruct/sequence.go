package reconstruct

import "math"

// attachSequenceChrome ties lifelines and activation bars to their
// participant nodes so the whole column drags as one unit. A lifeline
// is a dashed vertical line under a participant; an activation bar is a
// narrow node-styled rect riding the lifeline.
func (p *pass) attachSequenceChrome() {
	for _, e := range p.all {
		if e.InDefs() || p.isChrome(e) || p.nodeOwning(e) != nil {
			continue
		}

		var x float64
		switch {
		case p.contract.IsLifeline(e, p.th.LifelineMinExtent):
			x = e.Float("x1") + e.AncestorOffset().X
		case p.isActivationBar(e):
			box, ok := e.BBox()
			if !ok {
				continue
			}
			x = box.Center().X
		default:
			continue
		}

		for _, n := range p.nodes {
			if math.Abs(n.Box().Center().X-x) <= p.th.CenterTol {
				n.Absorb(e)
				p.claim(e)
				break
			}
		}
	}
}
