package walls

import (
	"errors"
	"math"
	"testing"

	"floorplan-editor/internal/editor/models"
)

func houseSquare() models.Shape {
	return models.Shape{
		ID:    "house-1",
		Type:  models.ShapeRectangle,
		Layer: models.LayerHouse,
		Vertices: []models.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
}

func TestFindWallSegmentAtPoint(t *testing.T) {
	house := houseSquare()
	wall := models.Shape{
		ID:       "wall-1",
		Type:     models.ShapeLine,
		Layer:    models.LayerWall,
		Vertices: []models.Point{{X: 20, Y: 0}, {X: 20, Y: 10}},
	}
	plot := models.Shape{
		ID:       "plot-1",
		Type:     models.ShapeRectangle,
		Layer:    models.LayerPlot,
		Vertices: []models.Point{{X: -5, Y: -5}, {X: 30, Y: -5}, {X: 30, Y: 30}, {X: -5, Y: 30}},
	}
	shapes := []models.Shape{plot, house, wall}

	t.Run("projects onto nearest house edge", func(t *testing.T) {
		hit, ok := FindWallSegmentAtPoint(shapes, models.Point{X: 5, Y: -0.5}, 1)
		if !ok {
			t.Fatal("no hit near bottom edge")
		}
		if hit.ShapeID != "house-1" || hit.SegmentIndex != 0 {
			t.Errorf("hit %s segment %d, want house-1 segment 0", hit.ShapeID, hit.SegmentIndex)
		}
		if hit.Point != (models.Point{X: 5, Y: 0}) {
			t.Errorf("projection %+v, want {5 0}", hit.Point)
		}
		if hit.Angle != 0 || hit.SegmentLength != 10 {
			t.Errorf("angle=%v len=%v, want 0 and 10", hit.Angle, hit.SegmentLength)
		}
	})

	t.Run("closing edge of a closed shape counts", func(t *testing.T) {
		hit, ok := FindWallSegmentAtPoint(shapes, models.Point{X: -0.4, Y: 5}, 1)
		if !ok {
			t.Fatal("no hit near left edge")
		}
		if hit.ShapeID != "house-1" || hit.SegmentIndex != 3 {
			t.Errorf("hit %s segment %d, want house-1 segment 3", hit.ShapeID, hit.SegmentIndex)
		}
	})

	t.Run("standalone wall line is eligible", func(t *testing.T) {
		hit, ok := FindWallSegmentAtPoint(shapes, models.Point{X: 20.5, Y: 5}, 1)
		if !ok || hit.ShapeID != "wall-1" {
			t.Fatalf("got (%+v, %v), want wall-1", hit, ok)
		}
	})

	t.Run("plot layer is ignored", func(t *testing.T) {
		// Точка лежит прямо на ребре участка, но участок — не стена.
		if _, ok := FindWallSegmentAtPoint(shapes, models.Point{X: -5, Y: 15}, 1); ok {
			t.Error("hit on plot layer edge")
		}
	})

	t.Run("beyond threshold", func(t *testing.T) {
		if _, ok := FindWallSegmentAtPoint(shapes, models.Point{X: 5, Y: 5}, 1); ok {
			t.Error("hit in the middle of the house interior")
		}
	})
}

func TestPlaceDoor(t *testing.T) {
	shapes := []models.Shape{houseSquare()}

	t.Run("single door on wall", func(t *testing.T) {
		door, err := PlaceDoor(shapes, models.DoorSingle, models.Point{X: 5, Y: 0.5})
		if err != nil {
			t.Fatalf("PlaceDoor: %v", err)
		}
		if door.ID == "" {
			t.Error("door has no id")
		}
		if door.Position != (models.Point{X: 5, Y: 0}) {
			t.Errorf("position %+v, want projection {5 0}", door.Position)
		}
		if door.Width != DefaultSingleWidthFeet {
			t.Errorf("width %v, want %v", door.Width, DefaultSingleWidthFeet)
		}
		if door.WallShapeID != "house-1" || door.WallSegmentIndex != 0 {
			t.Errorf("binding %s/%d, want house-1/0", door.WallShapeID, door.WallSegmentIndex)
		}
		if door.Rotation != 0 {
			t.Errorf("rotation %v, want wall angle 0", door.Rotation)
		}
	})

	t.Run("double door is wider", func(t *testing.T) {
		door, err := PlaceDoor(shapes, models.DoorDouble, models.Point{X: 5, Y: 0.5})
		if err != nil {
			t.Fatalf("PlaceDoor: %v", err)
		}
		if door.Width != DefaultDoubleWidthFeet {
			t.Errorf("width %v, want %v", door.Width, DefaultDoubleWidthFeet)
		}
	})

	t.Run("double door clamped to short wall", func(t *testing.T) {
		short := []models.Shape{{
			ID:       "short",
			Type:     models.ShapeLine,
			Layer:    models.LayerWall,
			Vertices: []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}},
		}}
		door, err := PlaceDoor(short, models.DoorDouble, models.Point{X: 2, Y: 0.2})
		if err != nil {
			t.Fatalf("PlaceDoor: %v", err)
		}
		if door.Width != 4 {
			t.Errorf("width %v, want segment length 4", door.Width)
		}
	})

	t.Run("rejected away from walls", func(t *testing.T) {
		_, err := PlaceDoor(shapes, models.DoorSingle, models.Point{X: 50, Y: 50})
		if !errors.Is(err, ErrInvalidPlacement) {
			t.Errorf("err = %v, want ErrInvalidPlacement", err)
		}
	})
}

func TestDragDoorCenter(t *testing.T) {
	house := houseSquare()
	other := models.Shape{
		ID:       "wall-2",
		Type:     models.ShapeLine,
		Layer:    models.LayerWall,
		Vertices: []models.Point{{X: 0, Y: 20}, {X: 10, Y: 20}},
	}
	shapes := []models.Shape{house, other}

	door, err := PlaceDoor(shapes, models.DoorSingle, models.Point{X: 5, Y: 0.5})
	if err != nil {
		t.Fatalf("PlaceDoor: %v", err)
	}

	t.Run("slides along its wall", func(t *testing.T) {
		moved := DragDoorCenter(shapes, door, models.Point{X: 8, Y: 0.7})
		if moved.Position != (models.Point{X: 8, Y: 0}) {
			t.Errorf("position %+v, want {8 0}", moved.Position)
		}
		if moved.WallShapeID != "house-1" {
			t.Errorf("wall binding changed to %s", moved.WallShapeID)
		}
	})

	t.Run("reglues to a closer wall", func(t *testing.T) {
		moved := DragDoorCenter(shapes, door, models.Point{X: 5, Y: 19})
		if moved.WallShapeID != "wall-2" || moved.WallSegmentIndex != 0 {
			t.Errorf("binding %s/%d, want wall-2/0", moved.WallShapeID, moved.WallSegmentIndex)
		}
		if moved.Position != (models.Point{X: 5, Y: 20}) {
			t.Errorf("position %+v, want {5 20}", moved.Position)
		}
	})

	t.Run("far from any wall reprojects onto own segment", func(t *testing.T) {
		// Центр дома дальше DragThresholdFeet от каждого ребра.
		moved := DragDoorCenter(shapes, door, models.Point{X: 5, Y: 5})
		if moved.WallShapeID != "house-1" {
			t.Errorf("binding changed to %s", moved.WallShapeID)
		}
		if moved.Position != (models.Point{X: 5, Y: 0}) {
			t.Errorf("position %+v, want {5 0}", moved.Position)
		}
	})

	t.Run("free rotate keeps manual angle", func(t *testing.T) {
		rotated := door
		rotated.FreeRotate = true
		rotated.Rotation = 33

		moved := DragDoorCenter(shapes, rotated, models.Point{X: 5, Y: 19})
		if moved.Rotation != 33 {
			t.Errorf("rotation %v, want preserved 33", moved.Rotation)
		}
	})
}

func TestDragDoorEnd(t *testing.T) {
	shapes := []models.Shape{houseSquare()}
	door, err := PlaceDoor(shapes, models.DoorSingle, models.Point{X: 5, Y: 0.5})
	if err != nil {
		t.Fatalf("PlaceDoor: %v", err)
	}

	tests := []struct {
		name      string
		start     models.Point
		current   models.Point
		endIndex  int
		wantWidth float64
	}{
		{"pull end outward", models.Point{X: 6.5, Y: 0}, models.Point{X: 8.5, Y: 0}, 1, 5},
		{"pull start outward", models.Point{X: 3.5, Y: 0}, models.Point{X: 2.5, Y: 0}, 0, 4},
		{"clamped to minimum", models.Point{X: 6.5, Y: 0}, models.Point{X: 1, Y: 0}, 1, MinDoorWidthFeet},
		{"clamped to segment length", models.Point{X: 6.5, Y: 0}, models.Point{X: 30, Y: 0}, 1, 10},
		{"perpendicular motion is ignored", models.Point{X: 6.5, Y: 0}, models.Point{X: 6.5, Y: 5}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DragDoorEnd(shapes, door, tt.start, tt.current, tt.endIndex)
			if math.Abs(out.Width-tt.wantWidth) > 1e-9 {
				t.Errorf("width %v, want %v", out.Width, tt.wantWidth)
			}
		})
	}
}

func TestDoorEndpoints(t *testing.T) {
	d := models.Door{Position: models.Point{X: 5, Y: 0}, Width: 4}
	a, b := DoorEndpoints(d)
	if a != (models.Point{X: 3, Y: 0}) || b != (models.Point{X: 7, Y: 0}) {
		t.Errorf("endpoints %+v %+v, want {3 0} {7 0}", a, b)
	}

	d.Rotation = 90
	a, b = DoorEndpoints(d)
	if math.Abs(a.X-5) > 1e-9 || math.Abs(a.Y+2) > 1e-9 || math.Abs(b.Y-2) > 1e-9 {
		t.Errorf("rotated endpoints %+v %+v, want {5 -2} {5 2}", a, b)
	}
}

func TestDoorHitTests(t *testing.T) {
	doors := []models.Door{
		{ID: "d1", Position: models.Point{X: 5, Y: 0}, Width: 4},
		{ID: "d2", Position: models.Point{X: 20, Y: 0}, Width: 4},
	}

	if i, ok := FindDoorAtPoint(doors, models.Point{X: 20.5, Y: 0.5}, DoorHitRadiusFeet); !ok || i != 1 {
		t.Errorf("got (%d, %v), want second door", i, ok)
	}
	if _, ok := FindDoorAtPoint(doors, models.Point{X: 12, Y: 0}, DoorHitRadiusFeet); ok {
		t.Error("hit between doors")
	}

	if h, ok := FindDoorHandle(doors[0], models.Point{X: 3.2, Y: 0.2}, DoorHandleRadiusFeet); !ok || h != 0 {
		t.Errorf("got (%d, %v), want start handle", h, ok)
	}
	if h, ok := FindDoorHandle(doors[0], models.Point{X: 7.1, Y: -0.1}, DoorHandleRadiusFeet); !ok || h != 1 {
		t.Errorf("got (%d, %v), want end handle", h, ok)
	}
	if _, ok := FindDoorHandle(doors[0], models.Point{X: 5, Y: 0}, DoorHandleRadiusFeet); ok {
		t.Error("center hit the end handles")
	}
}
