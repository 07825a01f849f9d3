package coords

import (
	"math"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Sheet constants
// ============================================================

// Физический контракт совместимости: экспортированные документы должны
// быть размерно точны при печати, поэтому все DPI-зависимые величины
// воспроизводятся только из этих констант.
const (
	SheetWidthMM  = 420.0 // лист A3 альбомной ориентации
	SheetHeightMM = 297.0
	MMPerInch     = 25.4

	// Ширина листа соответствует 60 футам мира.
	SheetWidthFeet  = 60.0
	SheetHeightFeet = SheetWidthFeet * SheetHeightMM / SheetWidthMM

	DefaultGridFeet   = 1.0
	SnapThresholdFeet = 0.5
)

// ExportDPIs — поддерживаемые разрешения экспорта.
var ExportDPIs = []int{96, 150, 300, 600}

// ValidDPI проверяет dpi по списку поддерживаемых.
func ValidDPI(dpi int) bool {
	for _, d := range ExportDPIs {
		if d == dpi {
			return true
		}
	}
	return false
}

// ============================================================
// Unit conversion
// ============================================================

// PixelsPerFoot — пикселей на фут мира при данном dpi.
// Линейна по dpi: ppf(600) == 4*ppf(150).
func PixelsPerFoot(dpi int) float64 {
	return SheetWidthMM / MMPerInch * float64(dpi) / SheetWidthFeet
}

// MMToPixels переводит миллиметры (толщина штриха) в пиксели при dpi.
func MMToPixels(mm float64, dpi int) float64 {
	return mm / MMPerInch * float64(dpi)
}

// SheetCenter — центр листа в мировых координатах.
func SheetCenter() models.Point {
	return models.Point{X: SheetWidthFeet / 2, Y: SheetHeightFeet / 2}
}

// SheetPixelSize — размер листа в пикселях при dpi.
func SheetPixelSize(dpi int) (int, int) {
	w := math.Round(SheetWidthMM / MMPerInch * float64(dpi))
	h := math.Round(SheetHeightMM / MMPerInch * float64(dpi))
	return int(w), int(h)
}

// ============================================================
// World <-> screen
// ============================================================

// WorldToScreen отображает мировую точку в пиксели вьюпорта: центр
// листа попадает в центр вьюпорта, затем применяются zoom и pan.
// Вызывающий обязан держать vt.Zoom строго положительным.
func WorldToScreen(p models.Point, vt models.ViewTransform, dpi int, viewportW, viewportH float64) models.Point {
	ppf := PixelsPerFoot(dpi) * vt.Zoom
	center := SheetCenter()
	return models.Point{
		X: viewportW/2 + (p.X-center.X)*ppf + vt.PanX,
		Y: viewportH/2 + (p.Y-center.Y)*ppf + vt.PanY,
	}
}

// ScreenToWorld — точная алгебраическая инверсия WorldToScreen.
func ScreenToWorld(p models.Point, vt models.ViewTransform, dpi int, viewportW, viewportH float64) models.Point {
	ppf := PixelsPerFoot(dpi) * vt.Zoom
	center := SheetCenter()
	return models.Point{
		X: (p.X-viewportW/2-vt.PanX)/ppf + center.X,
		Y: (p.Y-viewportH/2-vt.PanY)/ppf + center.Y,
	}
}

// ============================================================
// World -> export
// ============================================================

// WorldToExportPixels — отображение для генерации файлов: без pan и
// zoom, origin задает левый верхний угол экспортируемой области.
func WorldToExportPixels(p models.Point, dpi int, origin models.Point) models.Point {
	ppf := PixelsPerFoot(dpi)
	return models.Point{
		X: (p.X - origin.X) * ppf,
		Y: (p.Y - origin.Y) * ppf,
	}
}
