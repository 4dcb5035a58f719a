package surface

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestGuides(t *testing.T) {
	v, h := Guides(cp.BB{L: 0, B: 0, R: 800, T: 400}, DefaultGuides)
	wantV := []float64{200, 400, 600}
	wantH := []float64{100, 200, 300}
	for i := range wantV {
		if v[i] != wantV[i] || h[i] != wantH[i] {
			t.Fatalf("guides = %v / %v", v, h)
		}
	}
}

func TestGuidesAreWholePixels(t *testing.T) {
	v, h := Guides(cp.BB{L: 0, B: 0, R: 1023, T: 511}, DefaultGuides)
	wantV := []float64{256, 512, 767}
	wantH := []float64{128, 256, 383}
	for i := range wantV {
		if v[i] != wantV[i] || h[i] != wantH[i] {
			t.Fatalf("guides = %v / %v, want %v / %v", v, h, wantV, wantH)
		}
	}
}

func TestOnEdges(t *testing.T) {
	r := cp.BB{L: 590, B: 100, R: 800, T: 150}
	in := []Guide{{Vertical: true, Pos: 600}, {Vertical: true, Pos: 800}, {Vertical: false, Pos: 100}, {Vertical: false, Pos: 200}}
	got := onEdges(in, r)
	want := []Guide{{Vertical: true, Pos: 800}, {Vertical: false, Pos: 100}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("onEdges = %+v, want %+v", got, want)
	}
}

func TestSnap(t *testing.T) {
	guides := []float64{100, 200}
	cases := []struct {
		name      string
		edges     []float64
		wantShift float64
		wantGuide float64
		wantOK    bool
	}{
		{"exact", []float64{100}, 0, 100, true},
		{"below", []float64{96}, 4, 100, true},
		{"above", []float64{204}, -4, 200, true},
		{"at_threshold", []float64{195}, 5, 200, true},
		{"outside", []float64{150}, 0, 0, false},
		{"nearest_edge_wins", []float64{97, 199}, 1, 200, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			shift, guide, ok := snap(c.edges, guides, DefaultSnapThreshold)
			if ok != c.wantOK || shift != c.wantShift || guide != c.wantGuide {
				t.Fatalf("snap(%v) = %v,%v,%v want %v,%v,%v", c.edges, shift, guide, ok, c.wantShift, c.wantGuide, c.wantOK)
			}
		})
	}
}

func TestHandleRect(t *testing.T) {
	r := cp.BB{L: 10, B: 20, R: 110, T: 70}
	cases := []struct {
		h    Handle
		want cp.Vector
	}{
		{HandleNW, cp.Vector{X: 10, Y: 20}},
		{HandleN, cp.Vector{X: 60, Y: 20}},
		{HandleE, cp.Vector{X: 110, Y: 45}},
		{HandleSE, cp.Vector{X: 110, Y: 70}},
		{HandleS, cp.Vector{X: 60, Y: 70}},
	}
	for _, c := range cases {
		hr := HandleRect(c.h, r, 10)
		if !hr.ContainsVect(c.want) || hr.R-hr.L != 10 {
			t.Fatalf("%s handle %+v does not center on %+v", c.h, hr, c.want)
		}
	}
}
