package dashboard

// GridColumns is the fixed width of the dashboard placement grid.
const GridColumns = 12

type widgetSize struct {
	W, H       int
	MinW, MinH int
}

// defaultSize returns the footprint a widget of the given type gets when
// the caller does not supply an explicit position.
func defaultSize(t WidgetType) widgetSize {
	switch t {
	case WidgetTypeMetric:
		return widgetSize{W: 3, H: 2, MinW: 2, MinH: 2}
	case WidgetTypeChart, WidgetTypeTable, WidgetTypeFunnel:
		return widgetSize{W: 6, H: 4, MinW: 4, MinH: 3}
	case WidgetTypeList, WidgetTypeLeaderboard:
		return widgetSize{W: 4, H: 4, MinW: 3, MinH: 3}
	default:
		return widgetSize{W: 4, H: 3, MinW: 2, MinH: 2}
	}
}

// FindNextPosition finds the first free spot for a w×h rectangle on the
// 12-column grid, scanning row-major (y outer, x inner). When no gap
// exists within the occupied rows, the widget starts a new row beneath
// everything. A placement is always found.
func FindNextPosition(existing []LayoutItem, w, h int) WidgetPosition {
	if len(existing) == 0 {
		return WidgetPosition{X: 0, Y: 0, Width: w, Height: h}
	}

	maxY := 0
	for _, item := range existing {
		if item.Y+item.H > maxY {
			maxY = item.Y + item.H
		}
	}

	for y := 0; y <= maxY; y++ {
		for x := 0; x <= GridColumns-w; x++ {
			if fits(existing, x, y, w, h) {
				return WidgetPosition{X: x, Y: y, Width: w, Height: h}
			}
		}
	}

	return WidgetPosition{X: 0, Y: maxY, Width: w, Height: h}
}

// fits reports whether the rectangle [x,x+w)×[y,y+h) is free of overlap
// with every existing item (strict axis-aligned box test).
func fits(existing []LayoutItem, x, y, w, h int) bool {
	for _, item := range existing {
		if x < item.X+item.W && x+w > item.X && y < item.Y+item.H && y+h > item.Y {
			return false
		}
	}
	return true
}
