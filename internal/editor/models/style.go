package models

// ============================================================
// Layer styles
// ============================================================

// Style — стиль отрисовки, назначаемый слою. Таблица вынесена из
// условий в шагах визарда: шаг выбирает слой, слой дает стиль.
type Style struct {
	StrokeColor   string
	StrokeWidthMM float64
}

// DefaultStrokeWidthMM — толщина линии по умолчанию (чертежный стандарт).
const DefaultStrokeWidthMM = 0.25

var layerStyles = map[Layer]Style{
	LayerPlot:    {StrokeColor: "#2e7d32", StrokeWidthMM: 0.35},
	LayerHouse:   {StrokeColor: "#1a1a1a", StrokeWidthMM: 0.5},
	LayerWall:    {StrokeColor: "#424242", StrokeWidthMM: 0.35},
	LayerDefault: {StrokeColor: "#1565c0", StrokeWidthMM: DefaultStrokeWidthMM},
}

// StyleFor возвращает стиль слоя; для неизвестного слоя — стиль default.
func StyleFor(layer Layer) Style {
	if s, ok := layerStyles[layer]; ok {
		return s
	}
	return layerStyles[LayerDefault]
}
