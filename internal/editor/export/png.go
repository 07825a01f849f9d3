package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/vector"

	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/roof"
	"floorplan-editor/internal/editor/transform"
	"floorplan-editor/internal/editor/walls"
)

// ============================================================
// PNG raster export
// ============================================================

var (
	gridColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	roofColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	tickColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	doorColor = color.NRGBA{R: 0x8d, G: 0x4e, B: 0x2a, A: 0xff}
)

// RenderPNG растеризует лист в PNG целевого DPI. Толщины штрихов
// задаются в миллиметрах и пересчитываются через MMToPixels — размеры
// на печати не зависят от выбранного разрешения.
func RenderPNG(shapes []models.Shape, doors []models.Door, opts models.ExportOptions) ([]byte, error) {
	layout, err := Layout(shapes, opts)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, layout.PixelWidth, layout.PixelHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	p := painter{dst: dst, dpi: opts.DPI}

	if layout.IncludeGrid {
		hairline := coords.MMToPixels(0.1, opts.DPI)
		for _, gl := range layout.GridLines {
			p.stroke([]models.Point{gl.From, gl.To}, false, hairline, gridColor)
		}
	}

	// Секции крыши рисуются под контурами фигур.
	roofWidth := coords.MMToPixels(0.2, opts.DPI)
	for _, s := range shapes {
		if !s.Layer.RoofEligible() {
			continue
		}
		for _, sec := range roof.DetectRoofSections(s) {
			b := sec.Bounds
			outline := []models.Point{
				b.Min,
				{X: b.Max.X, Y: b.Min.Y},
				b.Max,
				{X: b.Min.X, Y: b.Max.Y},
			}
			p.stroke(outline, true, roofWidth, roofColor)

			ra, rb := roof.Ridge(sec)
			p.stroke([]models.Point{ra, rb}, false, roofWidth, roofColor)
			// Хребты вальм: каждый угол секции к ближайшему концу конька.
			for _, corner := range outline {
				end := ra
				if math.Hypot(corner.X-rb.X, corner.Y-rb.Y) < math.Hypot(corner.X-ra.X, corner.Y-ra.Y) {
					end = rb
				}
				p.stroke([]models.Point{corner, end}, false, roofWidth, roofColor)
			}
		}
	}

	for _, s := range shapes {
		width := coords.MMToPixels(s.StrokeWidthMM, opts.DPI)
		if width <= 0 {
			width = coords.MMToPixels(models.DefaultStrokeWidthMM, opts.DPI)
		}
		p.stroke(transform.EffectiveVertices(s), s.Type.Closed(), width, parseHexColor(s.StrokeColor))
	}

	for _, d := range doors {
		p.door(d, shapes)
	}

	if layout.IncludeMeasurements {
		p.measurements(layout.Measurements)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ============================================================
// Painter
// ============================================================

type painter struct {
	dst *image.RGBA
	dpi int
}

func (p *painter) toPixels(pt models.Point) models.Point {
	return coords.WorldToExportPixels(pt, p.dpi, models.Point{})
}

// stroke обводит ломаную квадами через сканлайн-растеризатор.
func (p *painter) stroke(pts []models.Point, closed bool, widthPx float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	if widthPx < 1 {
		widthPx = 1
	}

	b := p.dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())

	n := len(pts)
	limit := n - 1
	if closed {
		limit = n
	}
	for i := 0; i < limit; i++ {
		a := p.toPixels(pts[i])
		c := p.toPixels(pts[(i+1)%n])
		addSegmentQuad(r, a, c, widthPx/2)
	}

	r.Draw(p.dst, b, image.NewUniform(col), image.Point{})
}

// addSegmentQuad добавляет прямоугольник вдоль отрезка с квадратными
// торцами (торец выступает на полширины, стыки перекрываются).
func addSegmentQuad(r *vector.Rasterizer, a, b models.Point, half float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		dx, dy, length = 1, 0, 1
	}
	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux

	r.MoveTo(float32(a.X-ux+nx), float32(a.Y-uy+ny))
	r.LineTo(float32(b.X+ux+nx), float32(b.Y+uy+ny))
	r.LineTo(float32(b.X+ux-nx), float32(b.Y+uy-ny))
	r.LineTo(float32(a.X-ux-nx), float32(a.Y-uy-ny))
	r.ClosePath()
}

// door — проем (белый разрыв в стене) и полотно с перпендикулярной
// створкой от петлевого конца.
func (p *painter) door(d models.Door, shapes []models.Shape) {
	a, b := walls.DoorEndpoints(d)

	host := models.DefaultStrokeWidthMM
	for _, s := range shapes {
		if s.ID == d.WallShapeID && s.StrokeWidthMM > 0 {
			host = s.StrokeWidthMM
			break
		}
	}

	gap := coords.MMToPixels(host, p.dpi) * 3
	p.stroke([]models.Point{a, b}, false, gap, color.White)

	leafWidth := coords.MMToPixels(0.3, p.dpi)
	p.stroke([]models.Point{a, b}, false, leafWidth, doorColor)

	// Створка: перпендикуляр длиной в ширину полотна от петли.
	rad := (d.Rotation + 90) * math.Pi / 180
	swing := models.Point{
		X: a.X + math.Cos(rad)*d.Width,
		Y: a.Y + math.Sin(rad)*d.Width,
	}
	p.stroke([]models.Point{a, swing}, false, leafWidth, doorColor)
}

// measurements — размерные засечки: тонкая выносная линия вдоль ребра
// и перпендикулярные штрихи на концах.
func (p *painter) measurements(labels []models.MeasurementLabel) {
	lineW := coords.MMToPixels(0.15, p.dpi)
	const offsetFeet = 0.8
	const tickFeet = 0.4

	for _, m := range labels {
		rad := m.Angle * math.Pi / 180
		nx := -math.Sin(rad) * offsetFeet
		ny := math.Cos(rad) * offsetFeet

		start := models.Point{X: m.Start.X + nx, Y: m.Start.Y + ny}
		end := models.Point{X: m.End.X + nx, Y: m.End.Y + ny}
		p.stroke([]models.Point{start, end}, false, lineW, tickColor)

		tx := -math.Sin(rad) * tickFeet / 2
		ty := math.Cos(rad) * tickFeet / 2
		for _, base := range []models.Point{start, end} {
			p.stroke([]models.Point{
				{X: base.X - tx, Y: base.Y - ty},
				{X: base.X + tx, Y: base.Y + ty},
			}, false, lineW, tickColor)
		}
	}
}

// ============================================================
// Colors
// ============================================================

// parseHexColor разбирает "#rrggbb"; на мусоре возвращает черный.
func parseHexColor(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
