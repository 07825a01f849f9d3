package roof

import (
	"math"
	"sort"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Roof decomposition
// ============================================================

// Epsilon — допуск прямоугольности ребер и группировки координат.
// Вершины после привязки к сетке расходятся максимум на шум float,
// 0.05 фута покрывает его с запасом.
const Epsilon = 0.05

// DetectRoofSections раскладывает контур дома на axis-aligned
// прямоугольные секции; каждая рендерится отдельной вальмовой крышей.
// Чисто производная геометрия: сохраненные вершины не трогаются,
// результат детерминирован для одинакового входа.
//
// Жадное попарное слияние ячеек гарантирует минимальное покрытие
// только для прямоугольников и пресетных L/U контуров; для
// произвольных прямоугольных многоугольников покрытие может быть
// неминимальным — принятое приближение.
func DetectRoofSections(shape models.Shape) []models.RoofSection {
	if !shape.Type.Closed() || len(shape.Vertices) < 3 {
		return nil
	}

	if !IsRectilinear(shape.Vertices, Epsilon) {
		return []models.RoofSection{{Bounds: geometry.Bounds(shape.Vertices)}}
	}

	xs := distinctSorted(coordsOf(shape.Vertices, true), Epsilon)
	ys := distinctSorted(coordsOf(shape.Vertices, false), Epsilon)
	if len(xs) < 2 || len(ys) < 2 {
		// Вырожденная сетка — fallback на общий bounding box.
		return []models.RoofSection{{Bounds: geometry.Bounds(shape.Vertices)}}
	}

	// Ячейки, чей центр лежит внутри контура.
	var cells []models.Rect
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			cell := models.Rect{
				Min: models.Point{X: xs[i], Y: ys[j]},
				Max: models.Point{X: xs[i+1], Y: ys[j+1]},
			}
			if geometry.PointInPolygon(cell.Center(), shape.Vertices) {
				cells = append(cells, cell)
			}
		}
	}
	if len(cells) == 0 {
		return []models.RoofSection{{Bounds: geometry.Bounds(shape.Vertices)}}
	}

	merged := mergeCells(cells)

	sections := make([]models.RoofSection, len(merged))
	for i, r := range merged {
		sections[i] = models.RoofSection{Bounds: r}
	}
	return sections
}

// IsRectilinear — каждое ребро горизонтально или вертикально в
// пределах eps (углы кратны 90°).
func IsRectilinear(vertices []models.Point, eps float64) bool {
	if len(vertices) < 3 {
		return false
	}
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		if math.Abs(a.X-b.X) > eps && math.Abs(a.Y-b.Y) > eps {
			return false
		}
	}
	return true
}

func coordsOf(vertices []models.Point, x bool) []float64 {
	out := make([]float64, len(vertices))
	for i, v := range vertices {
		if x {
			out[i] = v.X
		} else {
			out[i] = v.Y
		}
	}
	return out
}

func distinctSorted(vals []float64, eps float64) []float64 {
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)

	var out []float64
	for _, v := range sorted {
		if len(out) == 0 || v-out[len(out)-1] > eps {
			out = append(out, v)
		}
	}
	return out
}

// mergeCells итеративно склеивает прямоугольники, делящие полное общее
// ребро, до неподвижной точки.
func mergeCells(cells []models.Rect) []models.Rect {
	out := append([]models.Rect{}, cells...)

	for {
		mergedAny := false
		for i := 0; i < len(out) && !mergedAny; i++ {
			for j := i + 1; j < len(out); j++ {
				if m, ok := tryMerge(out[i], out[j]); ok {
					out[i] = m
					out = append(out[:j], out[j+1:]...)
					mergedAny = true
					break
				}
			}
		}
		if !mergedAny {
			return out
		}
	}
}

func tryMerge(a, b models.Rect) (models.Rect, bool) {
	sameY := math.Abs(a.Min.Y-b.Min.Y) <= Epsilon && math.Abs(a.Max.Y-b.Max.Y) <= Epsilon
	sameX := math.Abs(a.Min.X-b.Min.X) <= Epsilon && math.Abs(a.Max.X-b.Max.X) <= Epsilon

	// Горизонтальные соседи с совпадающими Y-границами.
	if sameY && (math.Abs(a.Max.X-b.Min.X) <= Epsilon || math.Abs(b.Max.X-a.Min.X) <= Epsilon) {
		return models.Rect{
			Min: models.Point{X: math.Min(a.Min.X, b.Min.X), Y: a.Min.Y},
			Max: models.Point{X: math.Max(a.Max.X, b.Max.X), Y: a.Max.Y},
		}, true
	}
	// Вертикальные соседи с совпадающими X-границами.
	if sameX && (math.Abs(a.Max.Y-b.Min.Y) <= Epsilon || math.Abs(b.Max.Y-a.Min.Y) <= Epsilon) {
		return models.Rect{
			Min: models.Point{X: a.Min.X, Y: math.Min(a.Min.Y, b.Min.Y)},
			Max: models.Point{X: a.Max.X, Y: math.Max(a.Max.Y, b.Max.Y)},
		}, true
	}
	return models.Rect{}, false
}

// ============================================================
// Ridge layout
// ============================================================

// Ridge — линия конька секции: вдоль длинной стороны, концы отступают
// от торцов на половину короткой стороны (классическая вальма).
// Для квадратной секции конек вырождается в точку-пик.
func Ridge(sec models.RoofSection) (models.Point, models.Point) {
	b := sec.Bounds
	w := b.Width()
	h := b.Height()
	c := b.Center()

	if w >= h {
		inset := h / 2
		if inset*2 > w {
			inset = w / 2
		}
		return models.Point{X: b.Min.X + inset, Y: c.Y}, models.Point{X: b.Max.X - inset, Y: c.Y}
	}
	inset := w / 2
	if inset*2 > h {
		inset = h / 2
	}
	return models.Point{X: c.X, Y: b.Min.Y + inset}, models.Point{X: c.X, Y: b.Max.Y - inset}
}
