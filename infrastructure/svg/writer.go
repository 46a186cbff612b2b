package svg

import (
	"sort"
	"strings"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
)

// Serialize renders the primitive tree back to SVG markup. Attributes
// are emitted in sorted order so repeated serializations of the same
// tree are byte-identical.
func Serialize(root *primitives.Element) string {
	var sb strings.Builder
	writeElement(&sb, root)
	return sb.String()
}

func writeElement(sb *strings.Builder, e *primitives.Element) {
	sb.WriteByte('<')
	sb.WriteString(e.Tag)

	names := make([]string, 0, len(e.Attrs))
	for name := range e.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteByte(' ')
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(escape(e.Attrs[name]))
		sb.WriteByte('"')
	}

	if len(e.Children) == 0 && strings.TrimSpace(e.Text) == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	if text := e.Text; strings.TrimSpace(text) != "" {
		sb.WriteString(escape(strings.TrimSpace(text)))
	}
	for _, c := range e.Children {
		writeElement(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteByte('>')
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
