package export

import (
	"fmt"

	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/transform"
)

// ============================================================
// Export layout
// ============================================================

// Result — геометрия, готовая к генерации файла: размеры страницы в
// пикселях целевого DPI плюс, по запросу, сетка и подписи размеров
// для рендерера.
type Result struct {
	PixelWidth          int                       `json:"pixelWidth"`
	PixelHeight         int                       `json:"pixelHeight"`
	Shapes              []models.Shape            `json:"shapes"`
	IncludeGrid         bool                      `json:"includeGrid"`
	IncludeMeasurements bool                      `json:"includeMeasurements"`
	GridLines           []models.GridLine         `json:"gridLines,omitempty"`
	Measurements        []models.MeasurementLabel `json:"measurements,omitempty"`
}

// Validate проверяет формат и dpi экспорта.
func Validate(opts models.ExportOptions) error {
	if opts.Format != models.FormatPNG && opts.Format != models.FormatPDF {
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
	if !coords.ValidDPI(opts.DPI) {
		return fmt.Errorf("unsupported dpi %d (expected one of %v)", opts.DPI, coords.ExportDPIs)
	}
	return nil
}

// Layout собирает экспортную геометрию.
func Layout(shapes []models.Shape, opts models.ExportOptions) (Result, error) {
	if err := Validate(opts); err != nil {
		return Result{}, err
	}

	w, h := coords.SheetPixelSize(opts.DPI)
	res := Result{
		PixelWidth:          w,
		PixelHeight:         h,
		Shapes:              shapes,
		IncludeGrid:         opts.IncludeGrid,
		IncludeMeasurements: opts.IncludeMeasurements,
	}
	if opts.IncludeGrid {
		res.GridLines = GridLines()
	}
	if opts.IncludeMeasurements {
		res.Measurements = MeasurementLabels(shapes)
	}
	return res, nil
}

// GridLines — линии сетки листа с шагом по умолчанию, в мировых
// координатах.
func GridLines() []models.GridLine {
	var out []models.GridLine
	for x := 0.0; x <= coords.SheetWidthFeet; x += coords.DefaultGridFeet {
		out = append(out, models.GridLine{
			From: models.Point{X: x, Y: 0},
			To:   models.Point{X: x, Y: coords.SheetHeightFeet},
		})
	}
	for y := 0.0; y <= coords.SheetHeightFeet; y += coords.DefaultGridFeet {
		out = append(out, models.GridLine{
			From: models.Point{X: 0, Y: y},
			To:   models.Point{X: coords.SheetWidthFeet, Y: y},
		})
	}
	return out
}

// MeasurementLabels — подпись на каждое ребро замкнутых фигур с
// включенной видимостью подписей. Позиции считаются по эффективным
// (повернутым) вершинам.
func MeasurementLabels(shapes []models.Shape) []models.MeasurementLabel {
	var out []models.MeasurementLabel
	for _, s := range shapes {
		if !s.LabelVisible || !s.Type.Closed() || len(s.Vertices) < 2 {
			continue
		}
		vs := transform.EffectiveVertices(s)
		for i := range vs {
			a := vs[i]
			b := vs[(i+1)%len(vs)]
			out = append(out, models.MeasurementLabel{
				Start:    a,
				End:      b,
				Length:   geometry.Distance(a, b),
				Midpoint: models.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2},
				Angle:    geometry.SegmentAngle(a, b),
			})
		}
	}
	return out
}
