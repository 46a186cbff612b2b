// Package primitives models the raw vector document the renderer emits:
// an ordered tree of shape, connector and text elements with no inherent
// semantic roles. The reconstructor assigns meaning to these elements;
// the tracker mutates their presentation in place.
package primitives

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Element is one vector drawing instruction in the document tree.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Element
	Parent   *Element

	// baseTransform preserves whatever transform the renderer emitted so
	// a tracker translation composes with it instead of replacing it.
	baseTransform    string
	baseTransformSet bool
}

// NewElement creates a detached element with an empty attribute map.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, Attrs: make(map[string]string)}
}

// Append adds child to e and sets its parent link.
func (e *Element) Append(child *Element) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

// Attr returns the named attribute or "".
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
}

// Float returns the named attribute parsed as a float, or 0.
func (e *Element) Float(name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Attrs[name]), 64)
	if err != nil {
		return 0
	}
	return v
}

// SetFloat writes a float attribute with trailing zeros trimmed.
func (e *Element) SetFloat(name string, v float64) {
	e.SetAttr(name, FormatFloat(v))
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.Attrs["id"]
}

// Class returns the element's class attribute.
func (e *Element) Class() string {
	return e.Attrs["class"]
}

// HasClass reports whether the class attribute contains name as a
// whitespace-separated token.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attrs["class"]) {
		if c == name {
			return true
		}
	}
	return false
}

// styleValue extracts a property from the style attribute, e.g.
// styleValue("fill") on style="fill:var(--x);stroke:none" yields
// "var(--x)".
func (e *Element) styleValue(prop string) string {
	style := e.Attrs["style"]
	if style == "" {
		return ""
	}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Fill returns the effective fill: the style declaration wins over the
// presentation attribute.
func (e *Element) Fill() string {
	if v := e.styleValue("fill"); v != "" {
		return v
	}
	return e.Attrs["fill"]
}

// Stroke returns the effective stroke.
func (e *Element) Stroke() string {
	if v := e.styleValue("stroke"); v != "" {
		return v
	}
	return e.Attrs["stroke"]
}

// DashPattern returns the effective stroke-dasharray with internal
// whitespace normalized away.
func (e *Element) DashPattern() string {
	v := e.styleValue("stroke-dasharray")
	if v == "" {
		v = e.Attrs["stroke-dasharray"]
	}
	return strings.ReplaceAll(v, " ", "")
}

// FontFamily returns the effective font-family.
func (e *Element) FontFamily() string {
	if v := e.styleValue("font-family"); v != "" {
		return v
	}
	return e.Attrs["font-family"]
}

// MarkerEnd returns the marker-end reference, if any.
func (e *Element) MarkerEnd() string {
	if v := e.styleValue("marker-end"); v != "" {
		return v
	}
	return e.Attrs["marker-end"]
}

// InDefs reports whether the element lives under a defs or marker
// region and is therefore template content, never scene content.
func (e *Element) InDefs() bool {
	for p := e.Parent; p != nil; p = p.Parent {
		if p.Tag == "defs" || p.Tag == "marker" {
			return true
		}
	}
	return false
}

// Walk visits e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant (including e) the predicate accepts,
// in document order.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) {
		if pred(el) {
			out = append(out, el)
		}
	})
	return out
}

// SetTranslation composes a translation over the element's original
// transform. A zero delta restores the original transform verbatim.
func (e *Element) SetTranslation(dx, dy float64) {
	if !e.baseTransformSet {
		e.baseTransform = e.Attrs["transform"]
		e.baseTransformSet = true
	}
	if dx == 0 && dy == 0 {
		if e.baseTransform == "" {
			delete(e.Attrs, "transform")
		} else {
			e.SetAttr("transform", e.baseTransform)
		}
		return
	}
	t := fmt.Sprintf("translate(%s, %s)", FormatFloat(dx), FormatFloat(dy))
	if e.baseTransform != "" {
		t = t + " " + e.baseTransform
	}
	e.SetAttr("transform", t)
}

// Translation returns the translation currently applied on top of the
// element's original transform.
func (e *Element) Translation() (dx, dy float64) {
	cur := e.Attrs["transform"]
	if !e.baseTransformSet || cur == e.baseTransform {
		return 0, 0
	}
	head, _, _ := strings.Cut(cur, ")")
	head = strings.TrimSpace(head)
	if !strings.HasPrefix(head, "translate(") {
		return 0, 0
	}
	args := strings.FieldsFunc(head[len("translate("):], func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(args) >= 1 {
		dx, _ = strconv.ParseFloat(args[0], 64)
	}
	if len(args) >= 2 {
		dy, _ = strconv.ParseFloat(args[1], 64)
	}
	return dx, dy
}

// FormatFloat renders a coordinate the way the upstream renderer does:
// no exponent, no trailing zeros.
func FormatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
