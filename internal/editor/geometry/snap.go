package geometry

import (
	"math"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Snapping
// ============================================================

// SnapOptions — независимые переключатели привязки при рисовании.
type SnapOptions struct {
	GridEnabled   bool
	GridSpacing   float64
	VertexEnabled bool
	Threshold     float64
}

// SnapToGrid округляет каждую координату к ближайшему кратному spacing.
func SnapToGrid(p models.Point, spacing float64) models.Point {
	if spacing <= 0 {
		return p
	}
	return models.Point{
		X: math.Round(p.X/spacing) * spacing,
		Y: math.Round(p.Y/spacing) * spacing,
	}
}

// FindSnapTarget возвращает первую вершину-кандидата в пределах
// threshold от p. Используется для стыковки новых вершин с
// существующей геометрией.
func FindSnapTarget(p models.Point, candidates []models.Point, threshold float64) (models.Point, bool) {
	for _, c := range candidates {
		if Distance(p, c) <= threshold {
			return c, true
		}
	}
	return models.Point{}, false
}

// SnapPoint применяет привязки в порядке snap-then-refine: сначала
// сетка к сырой точке указателя, затем поиск вершины; найденная
// вершина имеет приоритет над узлом сетки.
func SnapPoint(raw models.Point, candidates []models.Point, opts SnapOptions) models.Point {
	p := raw
	if opts.GridEnabled {
		p = SnapToGrid(p, opts.GridSpacing)
	}
	if opts.VertexEnabled {
		if target, ok := FindSnapTarget(p, candidates, opts.Threshold); ok {
			return target
		}
	}
	return p
}
