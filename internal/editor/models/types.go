package models

// ============================================================
// Geometry primitives
// ============================================================

// Point — точка в мировых координатах (футы) либо в пикселях
// (screen/export). Всегда копируется по значению.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect — axis-aligned прямоугольник.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width возвращает ширину прямоугольника.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height возвращает высоту прямоугольника.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center возвращает центр прямоугольника.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// ViewTransform — смещение и зум интерактивного вьюпорта.
type ViewTransform struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// ============================================================
// Layers
// ============================================================

// Layer — закрытый набор тегов слоя. Строковые значения
// сохранены как есть: они лежат в сохраненных проектах.
type Layer string

const (
	LayerDefault Layer = "default"
	LayerPlot    Layer = "plot"
	LayerHouse   Layer = "house"
	LayerWall    Layer = "wall"
)

// WallEligible сообщает, можно ли ставить двери на ребра фигур этого слоя.
func (l Layer) WallEligible() bool {
	return l == LayerHouse || l == LayerWall
}

// RoofEligible сообщает, строится ли крыша по фигурам этого слоя.
func (l Layer) RoofEligible() bool {
	return l == LayerHouse
}

// ============================================================
// Shapes
// ============================================================

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapePolygon   ShapeType = "polygon"
	ShapeLine      ShapeType = "line"
	ShapeFreehand  ShapeType = "freehand"
)

// Closed сообщает, замкнут ли контур фигуры.
func (t ShapeType) Closed() bool {
	return t == ShapeRectangle || t == ShapePolygon
}

// Shape — фигура в мировых координатах. Rotation хранится отдельным
// полем (градусы, pivot = центр bounding box) и применяется только
// при отрисовке и hit-тестах; сами вершины никогда не вращаются.
type Shape struct {
	ID            string    `json:"id"`
	Type          ShapeType `json:"type"`
	Vertices      []Point   `json:"vertices"`
	StrokeWidthMM float64   `json:"strokeWidthMm"`
	StrokeColor   string    `json:"strokeColor"`
	Layer         Layer     `json:"layer"`
	LabelVisible  bool      `json:"labelVisible"`
	LockAspect    bool      `json:"lockAspect"`
	Rotation      float64   `json:"rotation"`
	Name          string    `json:"name,omitempty"`
}

// CloneVertices возвращает копию списка вершин.
func (s Shape) CloneVertices() []Point {
	out := make([]Point, len(s.Vertices))
	copy(out, s.Vertices)
	return out
}

// ============================================================
// Doors
// ============================================================

type DoorType string

const (
	DoorSingle DoorType = "single"
	DoorDouble DoorType = "double"
)

// Door — дверь, привязанная к ребру фигуры-стены. Position лежит на
// ребре WallSegmentIndex фигуры WallShapeID; Rotation равен углу этого
// ребра, пока не включен FreeRotate.
type Door struct {
	ID               string   `json:"id"`
	Type             DoorType `json:"type"`
	Position         Point    `json:"position"`
	Width            float64  `json:"width"`
	WallShapeID      string   `json:"wallShapeId"`
	WallSegmentIndex int      `json:"wallSegmentIndex"`
	Rotation         float64  `json:"rotation"`
	FreeRotate       bool     `json:"freeRotate,omitempty"`
}

// ============================================================
// Derived render geometry
// ============================================================

// RoofSection — секция крыши, выводится из фигуры дома на каждый
// рендер. Не персистится и не имеет собственного id.
type RoofSection struct {
	Bounds Rect `json:"bounds"`
}

// ============================================================
// Project record
// ============================================================

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	CurrentStep int           `json:"currentStep"`
	Shapes      []Shape       `json:"shapes"`
	Doors       []Door        `json:"doors"`
	View        ViewTransform `json:"viewTransform"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// ============================================================
// Export
// ============================================================

type ExportFormat string

const (
	FormatPNG ExportFormat = "png"
	FormatPDF ExportFormat = "pdf"
)

type ExportOptions struct {
	Format              ExportFormat `json:"format"`
	DPI                 int          `json:"dpi"`
	IncludeGrid         bool         `json:"includeGrid"`
	IncludeMeasurements bool         `json:"includeMeasurements"`
}

// MeasurementLabel — подпись длины ребра для рендерера.
type MeasurementLabel struct {
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Length   float64 `json:"length"`
	Midpoint Point   `json:"midpoint"`
	Angle    float64 `json:"angle"`
}

// GridLine — линия сетки листа в мировых координатах.
type GridLine struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}
