package importer

import (
	"math"
	"strings"
	"testing"

	"floorplan-editor/internal/editor/models"
)

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="3000" height="2000">
  <rect id="Plot_1" x="0" y="0" width="3000" height="2000"/>
  <rect id="House_1" x="300" y="300" width="900" height="600"/>
  <rect id="decoration" x="10" y="10" width="50" height="50"/>
  <path id="Wall_1" d="M 1500,300 L 1500,900"/>
  <path id="House_2" d="M 1800 300 h 600 v 600 h -600 Z"/>
</svg>`

func TestParseSVG(t *testing.T) {
	shapes, err := ParseSVG(strings.NewReader(sampleSVG), 1)
	if err != nil {
		t.Fatalf("ParseSVG: %v", err)
	}
	// Элемент без классифицируемого id пропущен.
	if len(shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(shapes))
	}

	byName := map[string]models.Shape{}
	for _, s := range shapes {
		if s.ID == "" {
			t.Errorf("shape %q has no generated id", s.Name)
		}
		byName[s.Name] = s
	}

	plot := byName["Plot_1"]
	if plot.Layer != models.LayerPlot || plot.Type != models.ShapeRectangle {
		t.Errorf("Plot_1: layer=%s type=%s", plot.Layer, plot.Type)
	}
	if plot.Vertices[2] != (models.Point{X: 3000, Y: 2000}) {
		t.Errorf("Plot_1 far corner %+v, want {3000 2000}", plot.Vertices[2])
	}

	house := byName["House_1"]
	if house.Layer != models.LayerHouse || len(house.Vertices) != 4 {
		t.Errorf("House_1: layer=%s, %d vertices", house.Layer, len(house.Vertices))
	}
	if house.StrokeWidthMM <= 0 || house.StrokeColor == "" {
		t.Errorf("House_1 has no layer style: %+v", house)
	}

	wall := byName["Wall_1"]
	if wall.Layer != models.LayerWall || wall.Type != models.ShapeLine {
		t.Errorf("Wall_1: layer=%s type=%s", wall.Layer, wall.Type)
	}

	// Z-замыкание не плодит дублирующую вершину.
	poly := byName["House_2"]
	if poly.Type != models.ShapePolygon || len(poly.Vertices) != 4 {
		t.Errorf("House_2: type=%s, %d vertices, want polygon with 4", poly.Type, len(poly.Vertices))
	}
}

func TestParseSVGScale(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><rect id="House_1" x="0" y="0" width="3048" height="3048"/></svg>`

	shapes, err := ParseSVG(strings.NewReader(svg), 0) // <=0 — масштаб по умолчанию
	if err != nil {
		t.Fatalf("ParseSVG: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	// 3048 см = 100 футов.
	got := shapes[0].Vertices[2]
	if math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
		t.Errorf("far corner %+v, want {100 100}", got)
	}
}

func TestParseSVGInvalid(t *testing.T) {
	if _, err := ParseSVG(strings.NewReader("not xml at all"), 1); err == nil {
		t.Error("no error for malformed document")
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []models.Point
	}{
		{
			"absolute moves and lines",
			"M 0,0 L 10,0 L 10,5",
			[]models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}},
		},
		{
			"relative commands",
			"m 1,1 l 2,0 l 0,3",
			[]models.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 4}},
		},
		{
			"horizontal and vertical",
			"M 0 0 H 10 V 5 h -4 v -2",
			[]models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 3}},
		},
		{
			"close repeats first point",
			"M 0,0 L 4,0 L 4,4 Z",
			[]models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.d, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d points %+v, want %d", len(got), got, len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("point %d: %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}

	if _, err := ParsePath("   "); err == nil {
		t.Error("no error for an empty path")
	}
}
