package geometry

import (
	"math"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Scalar helpers
// ============================================================

// Distance — евклидово расстояние между точками.
func Distance(a, b models.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp ограничивает v отрезком [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ============================================================
// Polygons
// ============================================================

// PolygonArea — площадь многоугольника по формуле шнурования
// (возвращается модуль). Для <3 вершин площадь равна 0.
func PolygonArea(vertices []models.Point) float64 {
	if len(vertices) < 3 {
		return 0
	}
	sum := 0.0
	for i := range vertices {
		j := (i + 1) % len(vertices)
		sum += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return math.Abs(sum) / 2
}

// Bounds — axis-aligned bounding box списка вершин.
// Для пустого входа возвращает вырожденный {0,0},{0,0}.
func Bounds(vertices []models.Point) models.Rect {
	if len(vertices) == 0 {
		return models.Rect{}
	}
	min := vertices[0]
	max := vertices[0]
	for _, p := range vertices[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return models.Rect{Min: min, Max: max}
}

// PointInPolygon — тест принадлежности методом ray casting (четность
// пересечений горизонтального луча).
func PointInPolygon(p models.Point, vertices []models.Point) bool {
	if len(vertices) < 3 {
		return false
	}
	inside := false
	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		vi := vertices[i]
		vj := vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ============================================================
// Segments
// ============================================================

// PointToSegmentDistance — расстояние от p до отрезка [a,b] и параметр
// проекции t, зажатый в [0,1]. Для вырожденного отрезка t = 0.
func PointToSegmentDistance(p, a, b models.Point) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return Distance(p, a), 0
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = Clamp(t, 0, 1)

	proj := models.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return Distance(p, proj), t
}

// ProjectOntoSegment возвращает точку отрезка [a,b], ближайшую к p.
func ProjectOntoSegment(p, a, b models.Point) models.Point {
	_, t := PointToSegmentDistance(p, a, b)
	return models.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// SegmentAngle — угол отрезка в градусах.
func SegmentAngle(a, b models.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// ============================================================
// Polyline simplification
// ============================================================

// SimplifyPolyline — рекурсивный Douglas-Peucker. Для ≤2 точек вход
// возвращается без изменений; упрощенная ломаная отклоняется от
// исходной не более чем на epsilon. Идемпотентен.
func SimplifyPolyline(points []models.Point, epsilon float64) []models.Point {
	if len(points) <= 2 {
		return points
	}

	// Ищем точку с максимальным отклонением от хорды.
	maxDist := 0.0
	maxIdx := 0
	first := points[0]
	last := points[len(points)-1]
	for i := 1; i < len(points)-1; i++ {
		d, _ := PointToSegmentDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []models.Point{first, last}
	}

	left := SimplifyPolyline(points[:maxIdx+1], epsilon)
	right := SimplifyPolyline(points[maxIdx:], epsilon)

	// Склейка без мутации входного слайса.
	out := make([]models.Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	out = append(out, right...)
	return out
}
