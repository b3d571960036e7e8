package dashboard

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WidgetType string

const (
	WidgetTypeMetric      WidgetType = "metric"
	WidgetTypeChart       WidgetType = "chart"
	WidgetTypeList        WidgetType = "list"
	WidgetTypeTable       WidgetType = "table"
	WidgetTypeFunnel      WidgetType = "funnel"
	WidgetTypeLeaderboard WidgetType = "leaderboard"
)

var validWidgetTypes = map[WidgetType]bool{
	WidgetTypeMetric:      true,
	WidgetTypeChart:       true,
	WidgetTypeList:        true,
	WidgetTypeTable:       true,
	WidgetTypeFunnel:      true,
	WidgetTypeLeaderboard: true,
}

// LayoutItem places one widget on the dashboard's 12-column grid.
type LayoutItem struct {
	WidgetID string `json:"widget_id" bson:"widget_id"`
	X        int    `json:"x" bson:"x"`
	Y        int    `json:"y" bson:"y"`
	W        int    `json:"w" bson:"w"`
	H        int    `json:"h" bson:"h"`
	MinW     *int   `json:"min_w,omitempty" bson:"min_w,omitempty"`
	MinH     *int   `json:"min_h,omitempty" bson:"min_h,omitempty"`
	MaxW     *int   `json:"max_w,omitempty" bson:"max_w,omitempty"`
	MaxH     *int   `json:"max_h,omitempty" bson:"max_h,omitempty"`
}

type Dashboard struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Layout      []LayoutItem       `json:"layout" bson:"layout"`
	IsDefault   bool               `json:"is_default" bson:"is_default"`
	IsPublic    bool               `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// WidgetConfig carries every per-type parameter a widget can use. Which
// fields are consulted is decided by the widget type; fields set on a
// widget of a type that does not use them are tolerated and ignored.
type WidgetConfig struct {
	DataSource       string                 `json:"data_source,omitempty" bson:"data_source,omitempty"`
	MetricType       string                 `json:"metric_type,omitempty" bson:"metric_type,omitempty"` // count, sum, average
	MetricField      string                 `json:"metric_field,omitempty" bson:"metric_field,omitempty"`
	ChartType        string                 `json:"chart_type,omitempty" bson:"chart_type,omitempty"`
	XAxis            string                 `json:"x_axis,omitempty" bson:"x_axis,omitempty"`
	YAxis            string                 `json:"y_axis,omitempty" bson:"y_axis,omitempty"`
	GroupBy          string                 `json:"group_by,omitempty" bson:"group_by,omitempty"`
	Columns          []string               `json:"columns,omitempty" bson:"columns,omitempty"`
	SortBy           string                 `json:"sort_by,omitempty" bson:"sort_by,omitempty"`
	SortOrder        string                 `json:"sort_order,omitempty" bson:"sort_order,omitempty"` // asc, desc
	Limit            int                    `json:"limit,omitempty" bson:"limit,omitempty"`
	PipelineID       string                 `json:"pipeline_id,omitempty" bson:"pipeline_id,omitempty"`
	LeaderboardType  string                 `json:"leaderboard_type,omitempty" bson:"leaderboard_type,omitempty"`
	Filters          map[string]interface{} `json:"filters,omitempty" bson:"filters,omitempty"`
	DateRange        string                 `json:"date_range,omitempty" bson:"date_range,omitempty"`
	CustomDateStart  *int64                 `json:"custom_date_start,omitempty" bson:"custom_date_start,omitempty"`
	CustomDateEnd    *int64                 `json:"custom_date_end,omitempty" bson:"custom_date_end,omitempty"`
	ShowComparison   bool                   `json:"show_comparison,omitempty" bson:"show_comparison,omitempty"`
	ComparisonPeriod string                 `json:"comparison_period,omitempty" bson:"comparison_period,omitempty"`
	Color            string                 `json:"color,omitempty" bson:"color,omitempty"`
	Icon             string                 `json:"icon,omitempty" bson:"icon,omitempty"`
}

// validateConfig rejects config fields that have no meaning for the
// widget's type, so a bad save fails loudly instead of silently storing
// dead settings. Fields already stored on a widget whose type changed
// meaning are still tolerated at read time.
func validateConfig(t WidgetType, cfg WidgetConfig) error {
	var stray []string
	reject := func(field string, set bool) {
		if set {
			stray = append(stray, field)
		}
	}

	switch t {
	case WidgetTypeMetric:
		reject("chart_type", cfg.ChartType != "")
		reject("x_axis", cfg.XAxis != "")
		reject("y_axis", cfg.YAxis != "")
		reject("group_by", cfg.GroupBy != "")
		reject("columns", len(cfg.Columns) > 0)
		reject("sort_by", cfg.SortBy != "")
		reject("sort_order", cfg.SortOrder != "")
		reject("pipeline_id", cfg.PipelineID != "")
		reject("leaderboard_type", cfg.LeaderboardType != "")
	case WidgetTypeChart:
		reject("metric_type", cfg.MetricType != "")
		reject("metric_field", cfg.MetricField != "")
		reject("columns", len(cfg.Columns) > 0)
		reject("sort_by", cfg.SortBy != "")
		reject("sort_order", cfg.SortOrder != "")
		reject("pipeline_id", cfg.PipelineID != "")
		reject("leaderboard_type", cfg.LeaderboardType != "")
		reject("show_comparison", cfg.ShowComparison)
	case WidgetTypeList:
		reject("metric_type", cfg.MetricType != "")
		reject("metric_field", cfg.MetricField != "")
		reject("chart_type", cfg.ChartType != "")
		reject("x_axis", cfg.XAxis != "")
		reject("y_axis", cfg.YAxis != "")
		reject("group_by", cfg.GroupBy != "")
		reject("columns", len(cfg.Columns) > 0)
		reject("pipeline_id", cfg.PipelineID != "")
		reject("leaderboard_type", cfg.LeaderboardType != "")
		reject("show_comparison", cfg.ShowComparison)
	case WidgetTypeTable:
		reject("metric_type", cfg.MetricType != "")
		reject("metric_field", cfg.MetricField != "")
		reject("chart_type", cfg.ChartType != "")
		reject("x_axis", cfg.XAxis != "")
		reject("y_axis", cfg.YAxis != "")
		reject("group_by", cfg.GroupBy != "")
		reject("pipeline_id", cfg.PipelineID != "")
		reject("leaderboard_type", cfg.LeaderboardType != "")
		reject("show_comparison", cfg.ShowComparison)
	case WidgetTypeFunnel:
		reject("metric_type", cfg.MetricType != "")
		reject("metric_field", cfg.MetricField != "")
		reject("chart_type", cfg.ChartType != "")
		reject("x_axis", cfg.XAxis != "")
		reject("y_axis", cfg.YAxis != "")
		reject("group_by", cfg.GroupBy != "")
		reject("columns", len(cfg.Columns) > 0)
		reject("sort_by", cfg.SortBy != "")
		reject("sort_order", cfg.SortOrder != "")
		reject("leaderboard_type", cfg.LeaderboardType != "")
		reject("show_comparison", cfg.ShowComparison)
	case WidgetTypeLeaderboard:
		reject("metric_type", cfg.MetricType != "")
		reject("metric_field", cfg.MetricField != "")
		reject("chart_type", cfg.ChartType != "")
		reject("x_axis", cfg.XAxis != "")
		reject("y_axis", cfg.YAxis != "")
		reject("group_by", cfg.GroupBy != "")
		reject("columns", len(cfg.Columns) > 0)
		reject("sort_by", cfg.SortBy != "")
		reject("sort_order", cfg.SortOrder != "")
		reject("pipeline_id", cfg.PipelineID != "")
		reject("show_comparison", cfg.ShowComparison)
	}

	if len(stray) > 0 {
		return fmt.Errorf("config fields %s do not apply to %s widgets", strings.Join(stray, ", "), t)
	}
	return nil
}

type WidgetPosition struct {
	X      int `json:"x" bson:"x"`
	Y      int `json:"y" bson:"y"`
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

type Widget struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DashboardID     primitive.ObjectID `json:"dashboard_id" bson:"dashboard_id"`
	Type            WidgetType         `json:"type" bson:"type"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	RefreshInterval int                `json:"refresh_interval,omitempty" bson:"refresh_interval,omitempty"` // seconds
	Config          WidgetConfig       `json:"config" bson:"config"`
	Position        WidgetPosition     `json:"position" bson:"position"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// DashboardWithWidgets is the read shape for single-dashboard fetches.
type DashboardWithWidgets struct {
	Dashboard `bson:",inline"`
	Widgets   []Widget `json:"widgets"`
}

// Widget data result shapes, one per widget type.

type MetricData struct {
	Value  float64  `json:"value"`
	Change *float64 `json:"change,omitempty"` // percent vs previous period
}

type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type FunnelStage struct {
	Name   string  `json:"name"`
	Value  int     `json:"value"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color,omitempty"`
}

type FunnelData struct {
	Stages []FunnelStage `json:"stages"`
}

type LeaderboardEntry struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

type LeaderboardData struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Partial-update inputs. Nil fields are left untouched.

type DashboardUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

type WidgetUpdate struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	RefreshInterval *int            `json:"refresh_interval,omitempty"`
	Config          *WidgetConfig   `json:"config,omitempty"`
	Position        *WidgetPosition `json:"position,omitempty"`
}
