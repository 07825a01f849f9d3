package export

import (
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/roof"
	"floorplan-editor/internal/editor/transform"
	"floorplan-editor/internal/editor/walls"
)

// ============================================================
// PDF vector export
// ============================================================

// PDF — векторный формат: страница задается в пунктах (1/72 дюйма),
// dpi из опций влияет только на растровый экспорт. Размер страницы
// считается из миллиметровых констант листа.
const pdfDPI = 72

// RenderPDF пишет однополосный PDF листа в файл path.
func RenderPDF(path string, shapes []models.Shape, doors []models.Door, opts models.ExportOptions) error {
	layout, err := Layout(shapes, opts)
	if err != nil {
		return err
	}

	pageW := coords.SheetWidthMM / coords.MMPerInch * pdfDPI
	pageH := coords.SheetHeightMM / coords.MMPerInch * pdfDPI

	page, err := document.CreateSinglePage(path, &pdf.Rectangle{URx: pageW, URy: pageH}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	w := pdfWriter{page: page, pageH: pageH}

	if layout.IncludeGrid {
		page.SetStrokeColor(pdfcolor.DeviceGray(0.87))
		page.SetLineWidth(coords.MMToPixels(0.1, pdfDPI))
		for _, gl := range layout.GridLines {
			w.line(gl.From, gl.To)
		}
		page.Stroke()
	}

	page.SetStrokeColor(pdfcolor.DeviceGray(0.7))
	page.SetLineWidth(coords.MMToPixels(0.2, pdfDPI))
	for _, s := range shapes {
		if !s.Layer.RoofEligible() {
			continue
		}
		for _, sec := range roof.DetectRoofSections(s) {
			w.roofSection(sec)
		}
	}
	page.Stroke()

	for _, s := range shapes {
		strokeMM := s.StrokeWidthMM
		if strokeMM <= 0 {
			strokeMM = models.DefaultStrokeWidthMM
		}
		r, g, b := hexComponents(s.StrokeColor)
		page.SetStrokeColor(pdfcolor.DeviceRGB{r, g, b})
		page.SetLineWidth(coords.MMToPixels(strokeMM, pdfDPI))
		w.polyline(transform.EffectiveVertices(s), s.Type.Closed())
		page.Stroke()
	}

	for _, d := range doors {
		a, b := walls.DoorEndpoints(d)

		// Проем: разрыв стены белым поверх контура.
		page.SetStrokeColor(pdfcolor.DeviceGray(1))
		page.SetLineWidth(coords.MMToPixels(models.DefaultStrokeWidthMM, pdfDPI) * 3)
		w.line(a, b)
		page.Stroke()

		page.SetStrokeColor(pdfcolor.DeviceRGB{0.55, 0.31, 0.16})
		page.SetLineWidth(coords.MMToPixels(0.3, pdfDPI))
		w.line(a, b)
		rad := (d.Rotation + 90) * math.Pi / 180
		w.line(a, models.Point{X: a.X + math.Cos(rad)*d.Width, Y: a.Y + math.Sin(rad)*d.Width})
		page.Stroke()
	}

	if layout.IncludeMeasurements {
		page.SetStrokeColor(pdfcolor.DeviceGray(0.33))
		page.SetLineWidth(coords.MMToPixels(0.15, pdfDPI))
		for _, m := range layout.Measurements {
			w.measurement(m)
		}
		page.Stroke()
	}

	return page.Close()
}

// ============================================================
// Page writer
// ============================================================

type pdfWriter struct {
	page  *document.Page
	pageH float64
}

// toPage переводит мировую точку в координаты страницы. Начало PDF —
// левый нижний угол, мировая ось Y растет вниз, поэтому Y зеркалится.
func (w pdfWriter) toPage(p models.Point) (float64, float64) {
	px := coords.WorldToExportPixels(p, pdfDPI, models.Point{})
	return px.X, w.pageH - px.Y
}

func (w pdfWriter) line(a, b models.Point) {
	ax, ay := w.toPage(a)
	bx, by := w.toPage(b)
	w.page.MoveTo(ax, ay)
	w.page.LineTo(bx, by)
}

func (w pdfWriter) polyline(pts []models.Point, closed bool) {
	if len(pts) < 2 {
		return
	}
	x, y := w.toPage(pts[0])
	w.page.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = w.toPage(p)
		w.page.LineTo(x, y)
	}
	if closed {
		w.page.ClosePath()
	}
}

func (w pdfWriter) roofSection(sec models.RoofSection) {
	b := sec.Bounds
	outline := []models.Point{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
	w.polyline(outline, true)

	ra, rb := roof.Ridge(sec)
	w.line(ra, rb)
	for _, corner := range outline {
		end := ra
		if math.Hypot(corner.X-rb.X, corner.Y-rb.Y) < math.Hypot(corner.X-ra.X, corner.Y-ra.Y) {
			end = rb
		}
		w.line(corner, end)
	}
}

func (w pdfWriter) measurement(m models.MeasurementLabel) {
	const offsetFeet = 0.8
	const tickFeet = 0.4

	rad := m.Angle * math.Pi / 180
	nx := -math.Sin(rad) * offsetFeet
	ny := math.Cos(rad) * offsetFeet

	start := models.Point{X: m.Start.X + nx, Y: m.Start.Y + ny}
	end := models.Point{X: m.End.X + nx, Y: m.End.Y + ny}
	w.line(start, end)

	tx := -math.Sin(rad) * tickFeet / 2
	ty := math.Cos(rad) * tickFeet / 2
	for _, base := range []models.Point{start, end} {
		w.line(
			models.Point{X: base.X - tx, Y: base.Y - ty},
			models.Point{X: base.X + tx, Y: base.Y + ty},
		)
	}
}

// hexComponents — компоненты "#rrggbb" в [0,1]; мусор дает черный.
func hexComponents(s string) (float64, float64, float64) {
	c := parseHexColor(s)
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}
