package transform

import (
	"math"
	"testing"

	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/models"
)

func box10(t *testing.T) models.Shape {
	t.Helper()
	return models.Shape{
		ID:   "box",
		Type: models.ShapeRectangle,
		Vertices: []models.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
}

func lShape(t *testing.T) models.Shape {
	t.Helper()
	return models.Shape{
		ID:   "l",
		Type: models.ShapePolygon,
		Vertices: []models.Point{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10},
			{X: 10, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 20},
		},
	}
}

func wantVertices(t *testing.T, got, want []models.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("vertex %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	shape := box10(t)
	shape.Rotation = 30

	s := Begin(shape, HandleCenter, models.Point{X: 5, Y: 5}, Modifiers{})
	out := s.Apply(shape, models.Point{X: 8, Y: 3})

	wantVertices(t, out.Vertices, []models.Point{
		{X: 3, Y: -2}, {X: 13, Y: -2}, {X: 13, Y: 8}, {X: 3, Y: 8},
	})
	if out.Rotation != 30 {
		t.Errorf("translate changed rotation: %v", out.Rotation)
	}
	// Снапшот неизменен.
	if shape.Vertices[0] != (models.Point{X: 0, Y: 0}) {
		t.Errorf("input shape mutated: %+v", shape.Vertices[0])
	}
}

func TestDragEdge(t *testing.T) {
	t.Run("north edge only", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleN, models.Point{X: 5, Y: 0}, Modifiers{})
		out := s.Apply(shape, models.Point{X: 5, Y: 2})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 2}, {X: 10, Y: 2}, {X: 10, Y: 10}, {X: 0, Y: 10},
		})
	})

	t.Run("north symmetric with alt", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleN, models.Point{X: 5, Y: 0}, Modifiers{Alt: true})
		out := s.Apply(shape, models.Point{X: 5, Y: 2})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 2}, {X: 10, Y: 2}, {X: 10, Y: 8}, {X: 0, Y: 8},
		})
	})

	t.Run("east edge ignores vertical motion", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleE, models.Point{X: 10, Y: 5}, Modifiers{})
		out := s.Apply(shape, models.Point{X: 13, Y: 9})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 0}, {X: 13, Y: 0}, {X: 13, Y: 10}, {X: 0, Y: 10},
		})
	})

	t.Run("inner vertices stay put", func(t *testing.T) {
		// На L-контуре южное ребро bbox держат только вершины с Y=20.
		shape := lShape(t)
		s := Begin(shape, HandleS, models.Point{X: 5, Y: 20}, Modifiers{})
		out := s.Apply(shape, models.Point{X: 5, Y: 25})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10},
			{X: 10, Y: 10}, {X: 10, Y: 25}, {X: 0, Y: 25},
		})
	})
}

func TestDragCornerFree(t *testing.T) {
	// SE-угол bbox L-контура: по X двигаются вершины с X=20, по Y —
	// вершины с Y=20, независимо друг от друга.
	shape := lShape(t)
	s := Begin(shape, HandleSE, models.Point{X: 20, Y: 20}, Modifiers{})
	out := s.Apply(shape, models.Point{X: 23, Y: 18})

	wantVertices(t, out.Vertices, []models.Point{
		{X: 0, Y: 0}, {X: 23, Y: 0}, {X: 23, Y: 10},
		{X: 10, Y: 10}, {X: 10, Y: 18}, {X: 0, Y: 18},
	})
}

func TestDragCornerAspect(t *testing.T) {
	t.Run("uniform scale about opposite corner", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleSE, models.Point{X: 10, Y: 10}, Modifiers{Shift: true})
		out := s.Apply(shape, models.Point{X: 5, Y: 5})
		// sx = sy = 0.5, якорь — NW-угол (0,0).
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5},
		})
	})

	t.Run("averaged ratio on anisotropic drag", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleSE, models.Point{X: 10, Y: 10}, Modifiers{Shift: true})
		// sx = 2, sy = 1 -> scale = 1.5.
		out := s.Apply(shape, models.Point{X: 20, Y: 10})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 15, Y: 15}, {X: 0, Y: 15},
		})
	})

	t.Run("lock aspect flag forces uniform scale", func(t *testing.T) {
		shape := box10(t)
		shape.LockAspect = true
		s := Begin(shape, HandleSE, models.Point{X: 10, Y: 10}, Modifiers{})
		out := s.Apply(shape, models.Point{X: 5, Y: 5})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5},
		})
	})

	t.Run("degenerate axis contributes ratio 1", func(t *testing.T) {
		line := models.Shape{
			ID:       "flat",
			Type:     models.ShapePolygon,
			Vertices: []models.Point{{X: 0, Y: 5}, {X: 10, Y: 5}, {X: 5, Y: 5}},
		}
		s := Begin(line, HandleSE, models.Point{X: 10, Y: 5}, Modifiers{Shift: true})
		// Высота bbox нулевая: sy = 1, sx = 2 -> scale = 1.5.
		out := s.Apply(line, models.Point{X: 20, Y: 5})
		wantVertices(t, out.Vertices, []models.Point{
			{X: 0, Y: 5}, {X: 15, Y: 5}, {X: 7.5, Y: 5},
		})
	})
}

func TestRotate(t *testing.T) {
	t.Run("free rotation accumulates", func(t *testing.T) {
		shape := box10(t)
		shape.Rotation = 10
		// Центр (5,5); якорь справа (угол 0), указатель сверху-вниз по
		// экранной оси Y (угол 90).
		s := Begin(shape, HandleRotate, models.Point{X: 15, Y: 5}, Modifiers{})
		out := s.Apply(shape, models.Point{X: 5, Y: 15})
		if math.Abs(out.Rotation-100) > 1e-9 {
			t.Errorf("rotation = %v, want 100", out.Rotation)
		}
		wantVertices(t, out.Vertices, shape.Vertices)
	})

	t.Run("shift snaps to 15 degrees", func(t *testing.T) {
		shape := box10(t)
		s := Begin(shape, HandleRotate, models.Point{X: 15, Y: 5}, Modifiers{Shift: true})

		rad := 40 * math.Pi / 180
		current := models.Point{X: 5 + 10*math.Cos(rad), Y: 5 + 10*math.Sin(rad)}
		out := s.Apply(shape, current)
		if math.Abs(out.Rotation-45) > 1e-9 {
			t.Errorf("rotation = %v, want 45", out.Rotation)
		}
	})
}

func TestHitTestHandles(t *testing.T) {
	shape := box10(t)
	vt := models.ViewTransform{Zoom: 1}
	const dpi = 96
	const vw, vh = 1280.0, 800.0

	positions := HandleWorldPositions(shape, vt, dpi)

	t.Run("hits each handle at its screen position", func(t *testing.T) {
		for _, h := range handleOrder {
			screen := coords.WorldToScreen(positions[h], vt, dpi, vw, vh)
			// Соседний хендл может перекрыть при малом зуме, поэтому
			// проверяется только факт попадания.
			if _, ok := HitTestHandles(shape, screen, vt, dpi, vw, vh); !ok {
				t.Errorf("handle %s: no hit at its own position", h)
			}
		}
	})

	t.Run("miss far from any handle", func(t *testing.T) {
		if _, ok := HitTestHandles(shape, models.Point{X: 5, Y: 5}, vt, dpi, vw, vh); ok {
			t.Error("hit reported far from all handles")
		}
	})
}

func TestEffectiveVertices(t *testing.T) {
	shape := box10(t)
	shape.Rotation = 90

	got := EffectiveVertices(shape)
	// Квадрат симметричен: поворот на 90° вокруг центра переставляет
	// углы по кругу. (0,0) -> (10,0).
	want := []models.Point{
		{X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	wantVertices(t, got, want)

	shape.Rotation = 0
	same := EffectiveVertices(shape)
	wantVertices(t, same, shape.Vertices)
}

func TestHitTestShape(t *testing.T) {
	closed := box10(t)
	if !HitTestShape(closed, models.Point{X: 5, Y: 5}) {
		t.Error("interior point missed closed shape")
	}
	if HitTestShape(closed, models.Point{X: 15, Y: 5}) {
		t.Error("exterior point hit closed shape")
	}

	line := models.Shape{
		Type:     models.ShapeLine,
		Vertices: []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}
	if !HitTestShape(line, models.Point{X: 5, Y: 0.3}) {
		t.Error("point near line missed")
	}
	if HitTestShape(line, models.Point{X: 5, Y: 2}) {
		t.Error("point far from line hit")
	}
}
