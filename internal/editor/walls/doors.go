package walls

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Wall segment search
// ============================================================

const (
	// PlacementThresholdFeet — допуск постановки двери на стену.
	PlacementThresholdFeet = 1.0
	// DragThresholdFeet — ослабленный допуск при перетаскивании:
	// дверь остается приклеенной к стене.
	DragThresholdFeet = 3.0

	// MinDoorWidthFeet — нижняя граница ширины дверного проема.
	MinDoorWidthFeet = 2.0

	DefaultSingleWidthFeet = 3.0
	DefaultDoubleWidthFeet = 6.0

	// Радиусы кругового hit-теста двери и ее концевых хендлов.
	DoorHitRadiusFeet    = 1.0
	DoorHandleRadiusFeet = 0.75
)

// ErrInvalidPlacement — попытка поставить дверь вне стены. Состояние
// не меняется, вызывающий показывает пользователю отказ.
var ErrInvalidPlacement = errors.New("invalid placement: no wall segment near point")

// WallHit — результат поиска ближайшего ребра стены.
type WallHit struct {
	ShapeID       string
	SegmentIndex  int
	Point         models.Point // проекция на ребро
	Angle         float64      // угол ребра, градусы
	Distance      float64
	SegmentLength float64
}

// segmentAt возвращает ребро index фигуры; у замкнутых типов ребра
// замыкаются на первую вершину.
func segmentAt(s models.Shape, index int) (models.Point, models.Point, bool) {
	n := len(s.Vertices)
	if n < 2 || index < 0 {
		return models.Point{}, models.Point{}, false
	}
	if s.Type.Closed() {
		if index >= n {
			return models.Point{}, models.Point{}, false
		}
		return s.Vertices[index], s.Vertices[(index+1)%n], true
	}
	if index >= n-1 {
		return models.Point{}, models.Point{}, false
	}
	return s.Vertices[index], s.Vertices[index+1], true
}

func segmentCount(s models.Shape) int {
	n := len(s.Vertices)
	if n < 2 {
		return 0
	}
	if s.Type.Closed() {
		return n
	}
	return n - 1
}

// FindWallSegmentAtPoint перебирает все ребра фигур wall-eligible
// слоев и возвращает глобально ближайшую проекцию в пределах
// threshold. Равные минимумы разрешаются первым найденным: порядок
// обхода фигур и ребер стабилен.
func FindWallSegmentAtPoint(shapes []models.Shape, p models.Point, threshold float64) (WallHit, bool) {
	best := WallHit{Distance: math.MaxFloat64}
	found := false

	for _, shape := range shapes {
		if !shape.Layer.WallEligible() {
			continue
		}
		for i := 0; i < segmentCount(shape); i++ {
			a, b, ok := segmentAt(shape, i)
			if !ok {
				continue
			}
			dist, t := geometry.PointToSegmentDistance(p, a, b)
			if dist > threshold || dist >= best.Distance {
				continue
			}
			best = WallHit{
				ShapeID:      shape.ID,
				SegmentIndex: i,
				Point: models.Point{
					X: a.X + t*(b.X-a.X),
					Y: a.Y + t*(b.Y-a.Y),
				},
				Angle:         geometry.SegmentAngle(a, b),
				Distance:      dist,
				SegmentLength: geometry.Distance(a, b),
			}
			found = true
		}
	}
	return best, found
}

// ============================================================
// Door lifecycle
// ============================================================

// PlaceDoor создает дверь на ближайшей стене. Вне допуска возвращает
// ErrInvalidPlacement — дверь не создается.
func PlaceDoor(shapes []models.Shape, doorType models.DoorType, p models.Point) (models.Door, error) {
	hit, ok := FindWallSegmentAtPoint(shapes, p, PlacementThresholdFeet)
	if !ok {
		return models.Door{}, ErrInvalidPlacement
	}

	width := DefaultSingleWidthFeet
	if doorType == models.DoorDouble {
		width = DefaultDoubleWidthFeet
	}
	width = geometry.Clamp(width, MinDoorWidthFeet, math.Max(MinDoorWidthFeet, hit.SegmentLength))

	return models.Door{
		ID:               uuid.NewString(),
		Type:             doorType,
		Position:         hit.Point,
		Width:            width,
		WallShapeID:      hit.ShapeID,
		WallSegmentIndex: hit.SegmentIndex,
		Rotation:         hit.Angle,
	}, nil
}

// DragDoorCenter перетаскивает дверь за центральный хендл: повторный
// поиск ближайшей стены с ослабленным допуском; если стены рядом нет,
// дверь репроецируется на свое текущее ребро.
func DragDoorCenter(shapes []models.Shape, door models.Door, p models.Point) models.Door {
	out := door

	if hit, ok := FindWallSegmentAtPoint(shapes, p, DragThresholdFeet); ok {
		out.Position = hit.Point
		out.WallShapeID = hit.ShapeID
		out.WallSegmentIndex = hit.SegmentIndex
		out.Width = geometry.Clamp(out.Width, MinDoorWidthFeet, math.Max(MinDoorWidthFeet, hit.SegmentLength))
		if !out.FreeRotate {
			out.Rotation = hit.Angle
		}
		return out
	}

	if host, ok := findShape(shapes, door.WallShapeID); ok {
		if a, b, ok := segmentAt(host, door.WallSegmentIndex); ok {
			out.Position = geometry.ProjectOntoSegment(p, a, b)
		}
	}
	return out
}

// DragDoorEnd тянет концевой хендл: ширина меняется на знаковую
// проекцию дельты на направление стены, зажатую в
// [MinDoorWidthFeet, длина ребра]. endIndex: 0 — начало, 1 — конец.
func DragDoorEnd(shapes []models.Shape, door models.Door, start, current models.Point, endIndex int) models.Door {
	out := door

	host, ok := findShape(shapes, door.WallShapeID)
	if !ok {
		return out
	}
	a, b, ok := segmentAt(host, door.WallSegmentIndex)
	if !ok {
		return out
	}

	rad := door.Rotation * math.Pi / 180
	dirX, dirY := math.Cos(rad), math.Sin(rad)

	proj := (current.X-start.X)*dirX + (current.Y-start.Y)*dirY
	if endIndex == 0 {
		proj = -proj
	}

	segLen := geometry.Distance(a, b)
	out.Width = geometry.Clamp(door.Width+proj, MinDoorWidthFeet, math.Max(MinDoorWidthFeet, segLen))
	return out
}

func findShape(shapes []models.Shape, id string) (models.Shape, bool) {
	for _, s := range shapes {
		if s.ID == id {
			return s, true
		}
	}
	return models.Shape{}, false
}

// ============================================================
// Door hit testing
// ============================================================

// DoorEndpoints — концы дверного полотна: position ± половина ширины
// вдоль вектора поворота.
func DoorEndpoints(d models.Door) (models.Point, models.Point) {
	rad := d.Rotation * math.Pi / 180
	hx := math.Cos(rad) * d.Width / 2
	hy := math.Sin(rad) * d.Width / 2
	return models.Point{X: d.Position.X - hx, Y: d.Position.Y - hy},
		models.Point{X: d.Position.X + hx, Y: d.Position.Y + hy}
}

// FindDoorAtPoint — круговой hit-тест по позиции двери. Возвращает
// индекс первой двери в радиусе.
func FindDoorAtPoint(doors []models.Door, p models.Point, radius float64) (int, bool) {
	for i, d := range doors {
		if geometry.Distance(p, d.Position) <= radius {
			return i, true
		}
	}
	return -1, false
}

// FindDoorHandle — hit-тест концевых хендлов двери: 0 — начало,
// 1 — конец.
func FindDoorHandle(d models.Door, p models.Point, radius float64) (int, bool) {
	a, b := DoorEndpoints(d)
	if geometry.Distance(p, a) <= radius {
		return 0, true
	}
	if geometry.Distance(p, b) <= radius {
		return 1, true
	}
	return -1, false
}
