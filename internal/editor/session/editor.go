package session

import (
	"floorplan-editor/internal/editor/coords"
	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/transform"
	"floorplan-editor/internal/editor/walls"
)

// ============================================================
// Editor controller
// ============================================================

// Viewport — параметры интерактивного вьюпорта.
type Viewport struct {
	DPI    int
	Width  float64
	Height float64
}

// doorDrag — эфемерное состояние перетаскивания двери.
type doorDrag struct {
	doorID string
	handle int // -1 центр, 0/1 концевые хендлы
	start  models.Point
	door   models.Door // снапшот на mouse-down
}

// Editor — единственный владелец состояния сессии. Все события
// указателя приходят сюда; каждая геометрическая операция — чистая
// функция (State, Event) -> State, контроллер лишь коммитит результат
// и дергает onChange (дебаунс-сохранение снаружи).
//
// Однопоточный по построению: одна интерактивная сессия на документ.
type Editor struct {
	state    State
	viewport Viewport

	shapeDrag *transform.Session
	door      *doorDrag

	onChange func(State)
}

func NewEditor(initial State, viewport Viewport, onChange func(State)) *Editor {
	initial = initial.SetView(initial.View) // нормализуем zoom загруженного проекта
	return &Editor{state: initial, viewport: viewport, onChange: onChange}
}

// State — текущее состояние сессии.
func (e *Editor) State() State { return e.state }

// Dragging сообщает, идет ли сейчас drag-жест.
func (e *Editor) Dragging() bool { return e.shapeDrag != nil || e.door != nil }

func (e *Editor) commit(next State) {
	e.state = next
	if e.onChange != nil {
		e.onChange(next)
	}
}

func (e *Editor) screenToWorld(screen models.Point) models.Point {
	return coords.ScreenToWorld(screen, e.state.View, e.viewport.DPI, e.viewport.Width, e.viewport.Height)
}

// ============================================================
// Shape drag gesture
// ============================================================

// BeginShapeDrag — mouse-down по выбранной фигуре. Попадание в хендл
// открывает drag-сессию; мимо хендлов — false, событие уходит в
// выбор/снятие выбора.
func (e *Editor) BeginShapeDrag(shapeID string, screen models.Point, mods transform.Modifiers) bool {
	shape, ok := e.state.ShapeByID(shapeID)
	if !ok {
		return false
	}

	handle, ok := transform.HitTestHandles(shape, screen, e.state.View, e.viewport.DPI, e.viewport.Width, e.viewport.Height)
	if !ok {
		return false
	}

	e.shapeDrag = transform.Begin(shape, handle, e.screenToWorld(screen), mods)
	return true
}

// MoveShapeDrag — mouse-move внутри жеста: применяем алгебру хендла к
// снапшоту и коммитим новую фигуру.
func (e *Editor) MoveShapeDrag(screen models.Point) {
	if e.shapeDrag == nil {
		return
	}
	shape, ok := e.state.ShapeByID(e.shapeDrag.ShapeID)
	if !ok {
		e.shapeDrag = nil
		return
	}
	next := e.shapeDrag.Apply(shape, e.screenToWorld(screen))
	e.commit(e.state.UpdateShape(next))
}

// EndDrag завершает любой текущий жест.
func (e *Editor) EndDrag() {
	e.shapeDrag = nil
	e.door = nil
}

// ============================================================
// Draw gesture
// ============================================================

// DefaultSnapOptions — привязки рисования по умолчанию: сетка листа
// и стыковка с вершинами существующих фигур.
func DefaultSnapOptions() geometry.SnapOptions {
	return geometry.SnapOptions{
		GridEnabled:   true,
		GridSpacing:   coords.DefaultGridFeet,
		VertexEnabled: true,
		Threshold:     coords.SnapThresholdFeet,
	}
}

// SnapDrawPoint переводит точку экрана в мир и применяет привязки:
// каждая вершина рисуемой фигуры проходит здесь до AddShape.
func (e *Editor) SnapDrawPoint(screen models.Point, opts geometry.SnapOptions) models.Point {
	world := e.screenToWorld(screen)
	if !opts.VertexEnabled {
		return geometry.SnapPoint(world, nil, opts)
	}

	var candidates []models.Point
	for _, s := range e.state.Shapes {
		candidates = append(candidates, s.Vertices...)
	}
	return geometry.SnapPoint(world, candidates, opts)
}

// ============================================================
// Door gestures
// ============================================================

// PlaceDoor ставит дверь по точке экрана. Вне стены возвращает
// walls.ErrInvalidPlacement без изменения состояния.
func (e *Editor) PlaceDoor(doorType models.DoorType, screen models.Point) (models.Door, error) {
	door, err := walls.PlaceDoor(e.state.Shapes, doorType, e.screenToWorld(screen))
	if err != nil {
		return models.Door{}, err
	}
	e.commit(e.state.AddDoor(door))
	return door, nil
}

// BeginDoorDrag — mouse-down по двери или ее концевому хендлу.
func (e *Editor) BeginDoorDrag(screen models.Point) bool {
	world := e.screenToWorld(screen)

	for _, d := range e.state.ValidDoors() {
		if h, ok := walls.FindDoorHandle(d, world, walls.DoorHandleRadiusFeet); ok {
			e.door = &doorDrag{doorID: d.ID, handle: h, start: world, door: d}
			return true
		}
	}
	doors := e.state.ValidDoors()
	if i, ok := walls.FindDoorAtPoint(doors, world, walls.DoorHitRadiusFeet); ok {
		e.door = &doorDrag{doorID: doors[i].ID, handle: -1, start: world, door: doors[i]}
		return true
	}
	return false
}

// MoveDoorDrag — mouse-move: центр переклеивает дверь на ближайшую
// стену, концевой хендл меняет ширину.
func (e *Editor) MoveDoorDrag(screen models.Point) {
	if e.door == nil {
		return
	}
	world := e.screenToWorld(screen)

	var next models.Door
	if e.door.handle < 0 {
		next = walls.DragDoorCenter(e.state.Shapes, e.door.door, world)
	} else {
		next = walls.DragDoorEnd(e.state.Shapes, e.door.door, e.door.start, world, e.door.handle)
	}
	e.commit(e.state.UpdateDoor(next))
}

// ============================================================
// Direct operations
// ============================================================

func (e *Editor) AddShape(shape models.Shape) { e.commit(e.state.AddShape(shape)) }

func (e *Editor) DeleteShape(id string) { e.commit(e.state.DeleteShape(id)) }

func (e *Editor) DeleteDoor(id string) { e.commit(e.state.DeleteDoor(id)) }

func (e *Editor) SetView(vt models.ViewTransform) { e.commit(e.state.SetView(vt)) }
