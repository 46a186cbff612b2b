package primitives_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []geometry.Point
	}{
		{
			name: "move line",
			d:    "M10,20L30,40",
			want: []geometry.Point{{X: 10, Y: 20}, {X: 30, Y: 40}},
		},
		{
			name: "implicit lineto after moveto",
			d:    "M10 20 30 40",
			want: []geometry.Point{{X: 10, Y: 20}, {X: 30, Y: 40}},
		},
		{
			name: "relative commands",
			d:    "m10,20 l5,5",
			want: []geometry.Point{{X: 10, Y: 20}, {X: 15, Y: 25}},
		},
		{
			name: "horizontal and vertical",
			d:    "M0,0H10V20",
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}},
		},
		{
			name: "relative horizontal and vertical",
			d:    "M0,0h10v20",
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}},
		},
		{
			name: "cubic contributes endpoint only",
			d:    "M0,0C1,1 2,2 10,10",
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name: "quadratic and shorthand",
			d:    "M0,0Q5,0 10,10T20,20",
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}},
		},
		{
			name: "close adds no point",
			d:    "M0,0L10,0Z",
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
		{
			name: "compact negative numbers",
			d:    "M10-5L-10-20",
			want: []geometry.Point{{X: 10, Y: -5}, {X: -10, Y: -20}},
		},
		{
			name: "exponent notation",
			d:    "M1e2,1.5E1L3e0,4",
			want: []geometry.Point{{X: 100, Y: 15}, {X: 3, Y: 4}},
		},
		{
			name: "negative exponent",
			d:    "M1e-2,2L4e-1,2",
			want: []geometry.Point{{X: 0.01, Y: 2}, {X: 0.4, Y: 2}},
		},
		{
			name: "arc contributes endpoint only",
			d:    "M10,10A5,5 0 0 1 20,20L30,20",
			want: []geometry.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 20}},
		},
		{
			name: "relative arc",
			d:    "m10,10a5,5 0 0 1 10,0",
			want: []geometry.Point{{X: 10, Y: 10}, {X: 20, Y: 10}},
		},
		{
			name: "empty",
			d:    "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primitives.ParsePathData(tt.d))
		})
	}
}

func TestFormatPathData(t *testing.T) {
	assert.Equal(t, "", primitives.FormatPathData(nil))
	assert.Equal(t, "M1.5,2L3,4", primitives.FormatPathData([]geometry.Point{{X: 1.5, Y: 2}, {X: 3, Y: 4}}))
}

func TestParsePathData_SurvivesFormat(t *testing.T) {
	pts := []geometry.Point{{X: 100, Y: 120}, {X: 100, Y: 170}, {X: 200, Y: 170}}
	assert.Equal(t, pts, primitives.ParsePathData(primitives.FormatPathData(pts)))
}
