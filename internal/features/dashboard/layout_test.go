package dashboard

import "testing"

func TestFindNextPositionEmptyLayout(t *testing.T) {
	pos := FindNextPosition(nil, 6, 4)
	if pos.X != 0 || pos.Y != 0 || pos.Width != 6 || pos.Height != 4 {
		t.Errorf("expected origin placement, got %+v", pos)
	}
}

func TestFindNextPosition(t *testing.T) {
	tests := []struct {
		name     string
		existing []LayoutItem
		w, h     int
		wantX    int
		wantY    int
	}{
		{
			name: "fills gap to the right",
			existing: []LayoutItem{
				{WidgetID: "a", X: 0, Y: 0, W: 6, H: 4},
			},
			w: 6, h: 4,
			wantX: 6, wantY: 0,
		},
		{
			name: "full row pushes to next row",
			existing: []LayoutItem{
				{WidgetID: "a", X: 0, Y: 0, W: 6, H: 4},
				{WidgetID: "b", X: 6, Y: 0, W: 6, H: 4},
			},
			w: 6, h: 4,
			wantX: 0, wantY: 4,
		},
		{
			name: "small widget slots into partial row",
			existing: []LayoutItem{
				{WidgetID: "a", X: 0, Y: 0, W: 6, H: 4},
				{WidgetID: "b", X: 6, Y: 0, W: 4, H: 4},
			},
			w: 2, h: 2,
			wantX: 10, wantY: 0,
		},
		{
			name: "gap between rows is reused",
			existing: []LayoutItem{
				{WidgetID: "a", X: 0, Y: 0, W: 12, H: 2},
				{WidgetID: "b", X: 4, Y: 2, W: 8, H: 2},
			},
			w: 4, h: 2,
			wantX: 0, wantY: 2,
		},
		{
			name: "too wide for any gap starts a new row",
			existing: []LayoutItem{
				{WidgetID: "a", X: 0, Y: 0, W: 10, H: 3},
			},
			w: 3, h: 3,
			wantX: 0, wantY: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := FindNextPosition(tt.existing, tt.w, tt.h)
			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("got (%d,%d), want (%d,%d)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			if pos.Width != tt.w || pos.Height != tt.h {
				t.Errorf("size changed: got %dx%d, want %dx%d", pos.Width, pos.Height, tt.w, tt.h)
			}
			if !fits(tt.existing, pos.X, pos.Y, pos.Width, pos.Height) && pos.Y <= maxBottom(tt.existing)-1 {
				t.Errorf("placement (%d,%d) overlaps existing items", pos.X, pos.Y)
			}
		})
	}
}

func TestFindNextPositionNeverOverlaps(t *testing.T) {
	// Place a sequence of default-sized widgets and verify every pair of
	// resulting rectangles is disjoint.
	types := []WidgetType{
		WidgetTypeMetric, WidgetTypeMetric, WidgetTypeChart,
		WidgetTypeList, WidgetTypeTable, WidgetTypeLeaderboard,
		WidgetTypeFunnel, WidgetTypeMetric,
	}

	var layout []LayoutItem
	for i, typ := range types {
		size := defaultSize(typ)
		pos := FindNextPosition(layout, size.W, size.H)
		if pos.X < 0 || pos.X+pos.Width > GridColumns {
			t.Fatalf("widget %d out of grid bounds: %+v", i, pos)
		}
		layout = append(layout, LayoutItem{
			WidgetID: string(rune('a' + i)),
			X:        pos.X, Y: pos.Y, W: pos.Width, H: pos.Height,
		})
	}

	for i := range layout {
		for j := i + 1; j < len(layout); j++ {
			a, b := layout[i], layout[j]
			if a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y {
				t.Errorf("widgets %s and %s overlap: %+v / %+v", a.WidgetID, b.WidgetID, a, b)
			}
		}
	}
}

func TestFindNextPositionDeterministic(t *testing.T) {
	existing := []LayoutItem{
		{WidgetID: "a", X: 0, Y: 0, W: 5, H: 3},
		{WidgetID: "b", X: 7, Y: 0, W: 5, H: 3},
	}
	first := FindNextPosition(existing, 2, 2)
	for i := 0; i < 10; i++ {
		if got := FindNextPosition(existing, 2, 2); got != first {
			t.Fatalf("placement changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestDefaultSize(t *testing.T) {
	tests := []struct {
		typ  WidgetType
		want widgetSize
	}{
		{WidgetTypeMetric, widgetSize{W: 3, H: 2, MinW: 2, MinH: 2}},
		{WidgetTypeChart, widgetSize{W: 6, H: 4, MinW: 4, MinH: 3}},
		{WidgetTypeTable, widgetSize{W: 6, H: 4, MinW: 4, MinH: 3}},
		{WidgetTypeFunnel, widgetSize{W: 6, H: 4, MinW: 4, MinH: 3}},
		{WidgetTypeList, widgetSize{W: 4, H: 4, MinW: 3, MinH: 3}},
		{WidgetTypeLeaderboard, widgetSize{W: 4, H: 4, MinW: 3, MinH: 3}},
		{WidgetType("bogus"), widgetSize{W: 4, H: 3, MinW: 2, MinH: 2}},
	}
	for _, tt := range tests {
		if got := defaultSize(tt.typ); got != tt.want {
			t.Errorf("defaultSize(%s) = %+v, want %+v", tt.typ, got, tt.want)
		}
	}
}

func maxBottom(layout []LayoutItem) int {
	max := 0
	for _, item := range layout {
		if item.Y+item.H > max {
			max = item.Y + item.H
		}
	}
	return max
}
