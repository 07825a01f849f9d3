package importer

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/google/uuid"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name  `xml:"svg"`
	Rects   []SVGRect `xml:"rect"`
	Paths   []SVGPath `xml:"path"`
}

type SVGRect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type SVGPath struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

// ============================================================
// Importer
// ============================================================

// DefaultScale — футов мира на единицу SVG: планы обычно приходят в
// сантиметрах, 1 см ≈ 0.0328 фута.
const DefaultScale = 1.0 / 30.48

// ParseSVG разбирает план из SVG: rect и path элементы становятся
// фигурами, слой определяется префиксом id, неклассифицированные
// элементы пропускаются. scale переводит единицы документа в футы
// (<=0 — DefaultScale).
func ParseSVG(r io.Reader, scale float64) ([]models.Shape, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	var svg SVG
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, err
	}

	var shapes []models.Shape

	for _, rect := range svg.Rects {
		layer, ok := classifyLayerByID(rect.ID)
		if !ok {
			continue
		}
		vertices := []models.Point{
			{X: rect.X * scale, Y: rect.Y * scale},
			{X: (rect.X + rect.Width) * scale, Y: rect.Y * scale},
			{X: (rect.X + rect.Width) * scale, Y: (rect.Y + rect.Height) * scale},
			{X: rect.X * scale, Y: (rect.Y + rect.Height) * scale},
		}
		shapes = append(shapes, newShape(models.ShapeRectangle, layer, rect.ID, vertices))
	}

	for _, path := range svg.Paths {
		layer, ok := classifyLayerByID(path.ID)
		if !ok {
			continue
		}
		points, err := ParsePath(path.D)
		if err != nil || len(points) < 2 {
			continue
		}
		// Убираем дубль замыкания.
		if len(points) > 1 {
			first := points[0]
			last := points[len(points)-1]
			if first.X == last.X && first.Y == last.Y {
				points = points[:len(points)-1]
			}
		}
		for i := range points {
			points[i] = models.Point{X: points[i].X * scale, Y: points[i].Y * scale}
		}

		shapeType := models.ShapePolygon
		if len(points) < 3 {
			shapeType = models.ShapeLine
		}
		shapes = append(shapes, newShape(shapeType, layer, path.ID, points))
	}

	return shapes, nil
}

func newShape(t models.ShapeType, layer models.Layer, name string, vertices []models.Point) models.Shape {
	style := models.StyleFor(layer)
	return models.Shape{
		ID:            uuid.NewString(),
		Type:          t,
		Vertices:      vertices,
		StrokeWidthMM: style.StrokeWidthMM,
		StrokeColor:   style.StrokeColor,
		Layer:         layer,
		LabelVisible:  true,
		Name:          name,
	}
}

func classifyLayerByID(id string) (models.Layer, bool) {
	switch {
	case strings.HasPrefix(id, "Plot_") || strings.HasPrefix(id, "Plot"):
		return models.LayerPlot, true
	case strings.HasPrefix(id, "House_") || strings.HasPrefix(id, "House"):
		return models.LayerHouse, true
	case strings.HasPrefix(id, "Wall_"):
		return models.LayerWall, true
	}
	return "", false
}
