package primitives

import (
	"strconv"
	"strings"

	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// ParsePathData flattens a path data string into its vertex list.
// Supported commands are M, L, H, V, C, Q, T, S, A and Z in absolute
// or relative form; curve and arc commands contribute only their
// endpoints, which matches how the renderer emits connector paths
// (straight runs with short rounded corners whose control points never
// stray from the route).
func ParsePathData(d string) []geometry.Point {
	tokens := tokenizePath(d)
	var pts []geometry.Point
	var cur, start geometry.Point
	i := 0
	cmd := byte(0)
	for i < len(tokens) {
		tok := tokens[i]
		if len(tok) == 1 && isPathCommand(tok[0]) {
			cmd = tok[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				cur = start
				continue
			}
		}
		if cmd == 0 {
			return pts
		}
		rel := cmd >= 'a'
		upper := cmd &^ 0x20
		var argc int
		switch upper {
		case 'M', 'L', 'T':
			argc = 2
		case 'H', 'V':
			argc = 1
		case 'Q', 'S':
			argc = 4
		case 'C':
			argc = 6
		case 'A':
			argc = 7
		default:
			return pts
		}
		if i+argc > len(tokens) {
			return pts
		}
		args := make([]float64, argc)
		ok := true
		for j := 0; j < argc; j++ {
			v, err := strconv.ParseFloat(tokens[i+j], 64)
			if err != nil {
				ok = false
				break
			}
			args[j] = v
		}
		if !ok {
			return pts
		}
		i += argc

		next := cur
		switch upper {
		case 'H':
			next.X = args[0]
			if rel {
				next.X = cur.X + args[0]
			}
		case 'V':
			next.Y = args[0]
			if rel {
				next.Y = cur.Y + args[0]
			}
		default:
			next = geometry.Point{X: args[argc-2], Y: args[argc-1]}
			if rel {
				next = cur.Add(geometry.Point{X: args[argc-2], Y: args[argc-1]})
			}
		}
		cur = next
		pts = append(pts, cur)
		if upper == 'M' {
			start = cur
			// Subsequent pairs after a moveto are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		}
	}
	return pts
}

// FormatPathData renders a vertex list as an absolute move-line
// sequence.
func FormatPathData(pts []geometry.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		sb.WriteString(FormatFloat(p.X))
		sb.WriteByte(',')
		sb.WriteString(FormatFloat(p.Y))
	}
	return sb.String()
}

func isPathCommand(c byte) bool {
	switch c &^ 0x20 {
	case 'M', 'L', 'H', 'V', 'C', 'Q', 'S', 'T', 'Z', 'A':
		return true
	}
	return false
}

// tokenizePath splits path data into command letters and numbers.
func tokenizePath(d string) []string {
	var tokens []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			tokens = append(tokens, num.String())
			num.Reset()
		}
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case (c == 'e' || c == 'E') && num.Len() > 0:
			// Exponent marker inside a number, not a command letter.
			num.WriteByte(c)
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			flush()
			tokens = append(tokens, string(c))
		case c == ',' || c == ' ' || c == '\n' || c == '\t' || c == '\r':
			flush()
		case c == '-':
			// A minus sign starts a new number unless it follows an
			// exponent marker.
			if num.Len() > 0 && !strings.HasSuffix(num.String(), "e") && !strings.HasSuffix(num.String(), "E") {
				flush()
			}
			num.WriteByte(c)
		default:
			num.WriteByte(c)
		}
	}
	flush()
	return tokens
}
