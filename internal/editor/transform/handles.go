package transform

import (
	"math"

	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Handles
// ============================================================

type HandleType string

const (
	HandleCenter HandleType = "center"
	HandleN      HandleType = "n"
	HandleS      HandleType = "s"
	HandleE      HandleType = "e"
	HandleW      HandleType = "w"
	HandleNW     HandleType = "nw"
	HandleNE     HandleType = "ne"
	HandleSE     HandleType = "se"
	HandleSW     HandleType = "sw"
	HandleRotate HandleType = "rotate"
)

const (
	// HandleHitRadiusPx — радиус попадания по хендлу в пикселях экрана.
	HandleHitRadiusPx = 8.0
	// RotateHandleOffsetPx — отступ хендла вращения над верхним ребром.
	RotateHandleOffsetPx = 24.0
	// Попадание по незамкнутой фигуре считается в пределах этого
	// радиуса от ближайшего ребра.
	openShapeHitFeet = 0.5
)

// handleOrder — стабильный порядок перебора при hit-тесте: угловые и
// реберные хендлы проверяются раньше центра, rotate — первым.
var handleOrder = []HandleType{
	HandleRotate,
	HandleNW, HandleNE, HandleSE, HandleSW,
	HandleN, HandleS, HandleE, HandleW,
	HandleCenter,
}

// RotateAbout поворачивает p вокруг c на deg градусов.
func RotateAbout(p, c models.Point, deg float64) models.Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return models.Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// EffectiveVertices — вершины фигуры с примененным Rotation (вокруг
// центра bounding box). Единая точка правды для рендера и hit-тестов.
func EffectiveVertices(s models.Shape) []models.Point {
	if s.Rotation == 0 {
		return s.CloneVertices()
	}
	center := geometry.Bounds(s.Vertices).Center()
	out := make([]models.Point, len(s.Vertices))
	for i, v := range s.Vertices {
		out[i] = RotateAbout(v, center, s.Rotation)
	}
	return out
}

// HandleWorldPositions — мировые позиции хендлов с учетом Rotation.
// Отступ rotate-хендла задан в пикселях и пересчитывается в футы
// через текущий масштаб.
func HandleWorldPositions(s models.Shape, vt models.ViewTransform, dpi int) map[HandleType]models.Point {
	box := geometry.Bounds(s.Vertices)
	center := box.Center()

	rotateOffset := RotateHandleOffsetPx / (coords.PixelsPerFoot(dpi) * vt.Zoom)

	raw := map[HandleType]models.Point{
		HandleCenter: center,
		HandleN:      {X: center.X, Y: box.Min.Y},
		HandleS:      {X: center.X, Y: box.Max.Y},
		HandleW:      {X: box.Min.X, Y: center.Y},
		HandleE:      {X: box.Max.X, Y: center.Y},
		HandleNW:     box.Min,
		HandleNE:     {X: box.Max.X, Y: box.Min.Y},
		HandleSE:     box.Max,
		HandleSW:     {X: box.Min.X, Y: box.Max.Y},
		HandleRotate: {X: center.X, Y: box.Min.Y - rotateOffset},
	}

	if s.Rotation != 0 {
		for k, p := range raw {
			raw[k] = RotateAbout(p, center, s.Rotation)
		}
	}
	return raw
}

// ============================================================
// Hit testing
// ============================================================

// HitTestHandles ищет хендл под точкой экрана. Нет попадания — drag не
// начинается, событие проваливается в выбор/снятие выбора фигуры.
func HitTestHandles(s models.Shape, screen models.Point, vt models.ViewTransform, dpi int, viewportW, viewportH float64) (HandleType, bool) {
	positions := HandleWorldPositions(s, vt, dpi)
	for _, h := range handleOrder {
		sp := coords.WorldToScreen(positions[h], vt, dpi, viewportW, viewportH)
		if geometry.Distance(screen, sp) <= HandleHitRadiusPx {
			return h, true
		}
	}
	return "", false
}

// HitTestShape проверяет попадание мировой точки в фигуру: для
// замкнутых — point-in-polygon по эффективным (повернутым) вершинам,
// для линий — близость к ребрам.
func HitTestShape(s models.Shape, world models.Point) bool {
	vs := EffectiveVertices(s)
	if s.Type.Closed() && len(vs) >= 3 {
		return geometry.PointInPolygon(world, vs)
	}
	for i := 0; i+1 < len(vs); i++ {
		if d, _ := geometry.PointToSegmentDistance(world, vs[i], vs[i+1]); d <= openShapeHitFeet {
			return true
		}
	}
	return false
}
