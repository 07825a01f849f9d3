package transform

import (
	"math"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Drag session
// ============================================================

// Допуск принадлежности вершины ребру bounding box. Принадлежность
// всегда оценивается по снапшоту вершин на момент mouse-down, иначе
// многовершинная деформация дрейфует от порядка обхода.
const edgeEpsilon = 1e-6

// Шаг округления угла при зажатом angle-snap модификаторе.
const angleSnapDeg = 15.0

// Modifiers — состояние клавиш-модификаторов на момент жеста.
// Shift — aspect-lock на углах и angle-snap на вращении,
// Alt — симметричное масштабирование относительно центра.
type Modifiers struct {
	Shift bool `json:"shift"`
	Alt   bool `json:"alt"`
	Ctrl  bool `json:"ctrl"`
}

// Session — эфемерное состояние одного drag-жеста. Создается на
// mouse-down по хендлу, применяется на каждый mouse-move, сбрасывается
// на mouse-up. Не персистится.
type Session struct {
	Handle          HandleType
	ShapeID         string
	Anchor          models.Point // мировая точка начала жеста
	Initial         []models.Point
	InitialRotation float64
	Mods            Modifiers

	box models.Rect // bounding box снапшота
}

// Begin создает сессию для фигуры и хендла.
func Begin(shape models.Shape, handle HandleType, startWorld models.Point, mods Modifiers) *Session {
	initial := shape.CloneVertices()
	return &Session{
		Handle:          handle,
		ShapeID:         shape.ID,
		Anchor:          startWorld,
		Initial:         initial,
		InitialRotation: shape.Rotation,
		Mods:            mods,
		box:             geometry.Bounds(initial),
	}
}

// Apply возвращает новую фигуру для текущей точки указателя. Вход не
// мутируется; вершины всегда считаются от снапшота.
func (s *Session) Apply(shape models.Shape, current models.Point) models.Shape {
	out := shape
	switch s.Handle {
	case HandleCenter:
		out.Vertices = s.translate(current)
	case HandleN, HandleS, HandleE, HandleW:
		out.Vertices = s.dragEdge(current)
	case HandleNW, HandleNE, HandleSE, HandleSW:
		if s.Mods.Shift || shape.LockAspect {
			out.Vertices = s.dragCornerAspect(current)
		} else {
			out.Vertices = s.dragCornerFree(current)
		}
	case HandleRotate:
		out.Vertices = s.snapshot()
		out.Rotation = s.rotate(current)
	default:
		out.Vertices = s.snapshot()
	}
	return out
}

func (s *Session) snapshot() []models.Point {
	out := make([]models.Point, len(s.Initial))
	copy(out, s.Initial)
	return out
}

// ============================================================
// Translate
// ============================================================

func (s *Session) translate(current models.Point) []models.Point {
	dx := current.X - s.Anchor.X
	dy := current.Y - s.Anchor.Y
	out := make([]models.Point, len(s.Initial))
	for i, v := range s.Initial {
		out[i] = models.Point{X: v.X + dx, Y: v.Y + dy}
	}
	return out
}

// ============================================================
// Edge scale
// ============================================================

// dragEdge — одноосное масштабирование: двигаются только вершины
// перетаскиваемого ребра, противоположное ребро — якорь. С Alt
// масштаб идет от центра: оба ребра двигаются встречно.
func (s *Session) dragEdge(current models.Point) []models.Point {
	out := s.snapshot()

	var edge, opposite float64
	vertical := s.Handle == HandleN || s.Handle == HandleS
	switch s.Handle {
	case HandleN:
		edge, opposite = s.box.Min.Y, s.box.Max.Y
	case HandleS:
		edge, opposite = s.box.Max.Y, s.box.Min.Y
	case HandleW:
		edge, opposite = s.box.Min.X, s.box.Max.X
	case HandleE:
		edge, opposite = s.box.Max.X, s.box.Min.X
	}

	var delta float64
	if vertical {
		delta = current.Y - s.Anchor.Y
	} else {
		delta = current.X - s.Anchor.X
	}

	for i, v := range s.Initial {
		coord := v.X
		if vertical {
			coord = v.Y
		}

		var moved float64
		switch {
		case math.Abs(coord-edge) <= edgeEpsilon:
			moved = coord + delta
		case s.Mods.Alt && math.Abs(coord-opposite) <= edgeEpsilon:
			moved = coord - delta
		default:
			continue
		}

		if vertical {
			out[i].Y = moved
		} else {
			out[i].X = moved
		}
	}
	return out
}

// ============================================================
// Corner drag
// ============================================================

func (s *Session) cornerCoords() (cornerX, cornerY, anchorX, anchorY float64) {
	switch s.Handle {
	case HandleNW:
		return s.box.Min.X, s.box.Min.Y, s.box.Max.X, s.box.Max.Y
	case HandleNE:
		return s.box.Max.X, s.box.Min.Y, s.box.Min.X, s.box.Max.Y
	case HandleSE:
		return s.box.Max.X, s.box.Max.Y, s.box.Min.X, s.box.Min.Y
	default: // sw
		return s.box.Min.X, s.box.Max.Y, s.box.Max.X, s.box.Min.Y
	}
}

// dragCornerFree — свободная поребровая деформация: вершины на
// перетаскиваемом вертикальном ребре двигаются по X, вершины на
// горизонтальном — по Y, независимо. Так L-образные и прочие
// прямоугольные контуры деформируются пореброво.
func (s *Session) dragCornerFree(current models.Point) []models.Point {
	out := s.snapshot()
	cornerX, cornerY, _, _ := s.cornerCoords()

	dx := current.X - s.Anchor.X
	dy := current.Y - s.Anchor.Y

	for i, v := range s.Initial {
		if math.Abs(v.X-cornerX) <= edgeEpsilon {
			out[i].X = v.X + dx
		}
		if math.Abs(v.Y-cornerY) <= edgeEpsilon {
			out[i].Y = v.Y + dy
		}
	}
	return out
}

// dragCornerAspect — равномерное масштабирование с сохранением
// пропорций, якорь — противоположный угол. Фактор — среднее отношений
// по осям; вырожденная ось (нулевая ширина или высота) дает отношение
// 1, чтобы не плодить NaN.
func (s *Session) dragCornerAspect(current models.Point) []models.Point {
	cornerX, cornerY, anchorX, anchorY := s.cornerCoords()

	sx := 1.0
	if w := cornerX - anchorX; math.Abs(w) > edgeEpsilon {
		sx = (current.X - anchorX) / w
	}
	sy := 1.0
	if h := cornerY - anchorY; math.Abs(h) > edgeEpsilon {
		sy = (current.Y - anchorY) / h
	}
	scale := (sx + sy) / 2

	out := make([]models.Point, len(s.Initial))
	for i, v := range s.Initial {
		out[i] = models.Point{
			X: anchorX + (v.X-anchorX)*scale,
			Y: anchorY + (v.Y-anchorY)*scale,
		}
	}
	return out
}

// ============================================================
// Rotation
// ============================================================

// rotate — накопленный угол фигуры: к исходному Rotation добавляется
// знаковый угол между center→anchor и center→current; с Shift дельта
// округляется к ближайшим 15°.
func (s *Session) rotate(current models.Point) float64 {
	center := s.box.Center()

	a0 := math.Atan2(s.Anchor.Y-center.Y, s.Anchor.X-center.X)
	a1 := math.Atan2(current.Y-center.Y, current.X-center.X)
	delta := (a1 - a0) * 180 / math.Pi

	if s.Mods.Shift {
		delta = math.Round(delta/angleSnapDeg) * angleSnapDeg
	}
	return s.InitialRotation + delta
}
