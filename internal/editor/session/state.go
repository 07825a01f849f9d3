package session

import (
	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Editor state
// ============================================================

// Границы зума: нижняя строго положительна, иначе мировые координаты
// вырождаются в NaN.
const (
	MinZoom = 0.1
	MaxZoom = 16.0
)

// State — полное состояние сессии редактирования. Все операции
// возвращают новый State и не мутируют получатель: геометрическое ядро
// никогда не меняет входы на месте.
type State struct {
	Shapes []models.Shape       `json:"shapes"`
	Doors  []models.Door        `json:"doors"`
	View   models.ViewTransform `json:"viewTransform"`
}

// NewState — пустая сессия с единичным зумом.
func NewState() State {
	return State{View: models.ViewTransform{Zoom: 1}}
}

func (s State) cloneShapes() []models.Shape {
	out := make([]models.Shape, len(s.Shapes))
	copy(out, s.Shapes)
	return out
}

func (s State) cloneDoors() []models.Door {
	out := make([]models.Door, len(s.Doors))
	copy(out, s.Doors)
	return out
}

// ============================================================
// Shape operations
// ============================================================

// AddShape добавляет фигуру, завершившую жест рисования.
func (s State) AddShape(shape models.Shape) State {
	out := s
	out.Shapes = append(s.cloneShapes(), shape)
	return out
}

// UpdateShape заменяет фигуру с тем же id.
func (s State) UpdateShape(shape models.Shape) State {
	out := s
	out.Shapes = s.cloneShapes()
	for i, existing := range out.Shapes {
		if existing.ID == shape.ID {
			out.Shapes[i] = shape
			break
		}
	}
	return out
}

// DeleteShape удаляет фигуру и каскадно — двери, висящие на ней:
// осиротевшая дверь невалидна и не должна пережить свою стену.
func (s State) DeleteShape(id string) State {
	out := s
	out.Shapes = make([]models.Shape, 0, len(s.Shapes))
	for _, shape := range s.Shapes {
		if shape.ID != id {
			out.Shapes = append(out.Shapes, shape)
		}
	}
	out.Doors = make([]models.Door, 0, len(s.Doors))
	for _, d := range s.Doors {
		if d.WallShapeID != id {
			out.Doors = append(out.Doors, d)
		}
	}
	return out
}

// ShapeByID ищет фигуру по id.
func (s State) ShapeByID(id string) (models.Shape, bool) {
	for _, shape := range s.Shapes {
		if shape.ID == id {
			return shape, true
		}
	}
	return models.Shape{}, false
}

// ============================================================
// Door operations
// ============================================================

func (s State) AddDoor(d models.Door) State {
	out := s
	out.Doors = append(s.cloneDoors(), d)
	return out
}

func (s State) UpdateDoor(d models.Door) State {
	out := s
	out.Doors = s.cloneDoors()
	for i, existing := range out.Doors {
		if existing.ID == d.ID {
			out.Doors[i] = d
			break
		}
	}
	return out
}

func (s State) DeleteDoor(id string) State {
	out := s
	out.Doors = make([]models.Door, 0, len(s.Doors))
	for _, d := range s.Doors {
		if d.ID != id {
			out.Doors = append(out.Doors, d)
		}
	}
	return out
}

// ValidDoors — двери, чья стена еще существует. Осиротевшие (битые
// ссылки из загруженного проекта) исключаются из рендера и
// интеракции, а не роняют процесс.
func (s State) ValidDoors() []models.Door {
	out := make([]models.Door, 0, len(s.Doors))
	for _, d := range s.Doors {
		if _, ok := s.ShapeByID(d.WallShapeID); ok {
			out = append(out, d)
		}
	}
	return out
}

// ============================================================
// View operations
// ============================================================

// SetView задает трансформацию вьюпорта, зажимая зум в допустимые
// границы.
func (s State) SetView(vt models.ViewTransform) State {
	out := s
	vt.Zoom = geometry.Clamp(vt.Zoom, MinZoom, MaxZoom)
	out.View = vt
	return out
}

// Pan сдвигает вьюпорт на пиксельную дельту.
func (s State) Pan(dx, dy float64) State {
	vt := s.View
	vt.PanX += dx
	vt.PanY += dy
	return s.SetView(vt)
}

// ZoomBy умножает зум на factor.
func (s State) ZoomBy(factor float64) State {
	vt := s.View
	vt.Zoom *= factor
	return s.SetView(vt)
}
