package dashboard

import (
	"context"
	"fmt"
	"sort"

	"crm-dashboards/internal/features/pipeline"
	"crm-dashboards/internal/features/record"
	"crm-dashboards/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WidgetDataService turns a widget's config into its display-shaped data.
type WidgetDataService interface {
	// GetWidgetData returns the widget's type-specific data shape, or
	// nil when the widget no longer exists.
	GetWidgetData(ctx context.Context, widgetID string) (interface{}, error)
	// GetDashboardData resolves data for every widget on a dashboard,
	// keyed by widget id. Per-widget failures degrade to an error entry.
	GetDashboardData(ctx context.Context, dashboardID string) (map[string]interface{}, error)
	// ExportWidgetData renders a list or table widget's rows as an XLSX
	// workbook, returning the file bytes and a download filename.
	ExportWidgetData(ctx context.Context, widgetID string) ([]byte, string, error)
}

type WidgetDataServiceImpl struct {
	WidgetRepo   WidgetRepository
	RecordRepo   record.RecordRepository
	PipelineRepo pipeline.PipelineRepository
	UserRepo     user.UserRepository
}

func NewWidgetDataService(
	widgetRepo WidgetRepository,
	recordRepo record.RecordRepository,
	pipelineRepo pipeline.PipelineRepository,
	userRepo user.UserRepository,
) WidgetDataService {
	return &WidgetDataServiceImpl{
		WidgetRepo:   widgetRepo,
		RecordRepo:   recordRepo,
		PipelineRepo: pipelineRepo,
		UserRepo:     userRepo,
	}
}

func (s *WidgetDataServiceImpl) GetWidgetData(ctx context.Context, widgetID string) (interface{}, error) {
	widget, err := s.WidgetRepo.Get(ctx, widgetID)
	if err != nil {
		if err == ErrWidgetNotFound {
			return nil, nil
		}
		return nil, err
	}
	return s.resolve(ctx, widget)
}

func (s *WidgetDataServiceImpl) GetDashboardData(ctx context.Context, dashboardID string) (map[string]interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(dashboardID)
	if err != nil {
		return map[string]interface{}{}, nil
	}
	widgets, err := s.WidgetRepo.FindByDashboard(ctx, oid)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{}, len(widgets))
	for i := range widgets {
		w := &widgets[i]
		result, err := s.resolve(ctx, w)
		if err != nil {
			data[w.ID.Hex()] = map[string]interface{}{"error": err.Error()}
			continue
		}
		data[w.ID.Hex()] = result
	}
	return data, nil
}

func (s *WidgetDataServiceImpl) resolve(ctx context.Context, widget *Widget) (interface{}, error) {
	cfg := widget.Config
	window := ResolveDateRange(cfg.DateRange, cfg.CustomDateStart, cfg.CustomDateEnd)

	switch widget.Type {
	case WidgetTypeMetric:
		return s.metricData(ctx, cfg, window)
	case WidgetTypeChart:
		return s.chartData(ctx, cfg, window)
	case WidgetTypeList:
		return s.listData(ctx, cfg, 10)
	case WidgetTypeTable:
		return s.tableData(ctx, cfg)
	case WidgetTypeFunnel:
		return s.funnelData(ctx, cfg)
	case WidgetTypeLeaderboard:
		return s.leaderboardData(ctx, cfg, window)
	default:
		// Unknown stored types degrade to an empty result, like unknown
		// data sources and leaderboard types.
		return nil, nil
	}
}

func (s *WidgetDataServiceImpl) metricData(ctx context.Context, cfg WidgetConfig, window DateRange) (*MetricData, error) {
	records, err := s.RecordRepo.ListAll(ctx, cfg.DataSource)
	if err != nil {
		return nil, err
	}

	value := reduceMetric(filterByCreatedAt(records, window), cfg.MetricType, cfg.MetricField)
	data := &MetricData{Value: value}

	if cfg.ShowComparison {
		previous := reduceMetric(filterByCreatedAt(records, PreviousPeriod(window)), cfg.MetricType, cfg.MetricField)
		change := 0.0
		if previous > 0 {
			change = (value - previous) / previous * 100
		}
		data.Change = &change
	}

	return data, nil
}

func (s *WidgetDataServiceImpl) chartData(ctx context.Context, cfg WidgetConfig, window DateRange) ([]ChartPoint, error) {
	records, err := s.RecordRepo.ListAll(ctx, cfg.DataSource)
	if err != nil {
		return nil, err
	}
	records = filterByCreatedAt(records, window)

	if cfg.GroupBy == "" {
		return []ChartPoint{{Name: "Total", Value: len(records)}}, nil
	}

	// Group order is first-seen during iteration, deliberately unsorted.
	points := []ChartPoint{}
	index := map[string]int{}
	for _, rec := range records {
		key := "Unknown"
		if v, ok := rec[cfg.GroupBy]; ok && v != nil {
			key = fmt.Sprintf("%v", v)
		}
		if i, ok := index[key]; ok {
			points[i].Value++
		} else {
			index[key] = len(points)
			points = append(points, ChartPoint{Name: key, Value: 1})
		}
	}
	return points, nil
}

func (s *WidgetDataServiceImpl) listData(ctx context.Context, cfg WidgetConfig, defaultLimit int) ([]map[string]any, error) {
	// The date range is resolved for every widget but list/table never
	// apply it; kept that way on purpose.
	sortOrder := cfg.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.RecordRepo.List(ctx, cfg.DataSource, sortOrder, int64(limit))
}

func (s *WidgetDataServiceImpl) tableData(ctx context.Context, cfg WidgetConfig) ([]map[string]any, error) {
	rows, err := s.listData(ctx, cfg, 25)
	if err != nil {
		return nil, err
	}
	if len(cfg.Columns) == 0 {
		return rows, nil
	}

	projected := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out := map[string]any{}
		if id, ok := row["_id"]; ok {
			out["_id"] = id
		}
		for _, col := range cfg.Columns {
			if v, ok := row[col]; ok {
				out[col] = v
			}
		}
		projected = append(projected, out)
	}
	return projected, nil
}

func (s *WidgetDataServiceImpl) funnelData(ctx context.Context, cfg WidgetConfig) (*FunnelData, error) {
	var pl *pipeline.Pipeline
	var err error
	if cfg.PipelineID != "" {
		pl, err = s.PipelineRepo.Get(ctx, cfg.PipelineID)
		if err != nil && err != pipeline.ErrPipelineNotFound {
			return nil, err
		}
	} else {
		pl, err = s.PipelineRepo.FindDefault(ctx)
		if err != nil {
			return nil, err
		}
	}
	if pl == nil {
		return &FunnelData{Stages: []FunnelStage{}}, nil
	}

	deals, err := s.RecordRepo.ListAll(ctx, record.SourceDeals)
	if err != nil {
		return nil, err
	}

	pipelineID := pl.ID.Hex()
	open := deals[:0:0]
	for _, d := range deals {
		if stringField(d, "pipelineId") == pipelineID && stringField(d, "status") == "open" {
			open = append(open, d)
		}
	}

	stages := make([]FunnelStage, 0, len(pl.Stages))
	for _, stage := range pl.Stages {
		count := 0
		amount := 0.0
		for _, d := range open {
			if stringField(d, "stageId") != stage.ID {
				continue
			}
			count++
			amount += numField(d, "amount")
		}
		stages = append(stages, FunnelStage{
			Name:   stage.Name,
			Value:  count,
			Amount: amount,
			Color:  stage.Color,
		})
	}
	return &FunnelData{Stages: stages}, nil
}

func (s *WidgetDataServiceImpl) leaderboardData(ctx context.Context, cfg WidgetConfig, window DateRange) (*LeaderboardData, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	values := map[string]float64{}
	switch cfg.LeaderboardType {
	case "deals_won":
		deals, err := s.RecordRepo.ListAll(ctx, record.SourceDeals)
		if err != nil {
			return nil, err
		}
		for _, d := range wonDealsIn(deals, window) {
			values[stringField(d, "ownerId")]++
		}
	case "deals_value":
		deals, err := s.RecordRepo.ListAll(ctx, record.SourceDeals)
		if err != nil {
			return nil, err
		}
		for _, d := range wonDealsIn(deals, window) {
			values[stringField(d, "ownerId")] += numField(d, "amount")
		}
	case "activities":
		if err := s.countByOwner(ctx, record.SourceActivities, window, values); err != nil {
			return nil, err
		}
	case "contacts_added":
		if err := s.countByOwner(ctx, record.SourceContacts, window, values); err != nil {
			return nil, err
		}
	default:
		// Unknown leaderboard types degrade to an empty board.
	}

	entries := []LeaderboardEntry{}
	for _, u := range users {
		value, ok := values[u.ID.Hex()]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:    u.ID.Hex(),
			Name:      u.DisplayName(),
			Value:     value,
			AvatarURL: u.AvatarURL,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return &LeaderboardData{Entries: entries}, nil
}

func (s *WidgetDataServiceImpl) countByOwner(ctx context.Context, source string, window DateRange, values map[string]float64) error {
	records, err := s.RecordRepo.ListAll(ctx, source)
	if err != nil {
		return err
	}
	for _, rec := range filterByCreatedAt(records, window) {
		values[stringField(rec, "ownerId")]++
	}
	return nil
}

func wonDealsIn(deals []map[string]any, window DateRange) []map[string]any {
	out := deals[:0:0]
	for _, d := range deals {
		if stringField(d, "status") != "won" {
			continue
		}
		if ts, ok := msField(d, "actualCloseDate"); ok && window.Contains(ts) {
			out = append(out, d)
		}
	}
	return out
}

func filterByCreatedAt(records []map[string]any, window DateRange) []map[string]any {
	out := records[:0:0]
	for _, rec := range records {
		if ts, ok := msField(rec, "createdAt"); ok && window.Contains(ts) {
			out = append(out, rec)
		}
	}
	return out
}

func reduceMetric(records []map[string]any, metricType, metricField string) float64 {
	switch metricType {
	case "sum":
		total := 0.0
		for _, rec := range records {
			total += numField(rec, metricField)
		}
		return total
	case "average":
		if len(records) == 0 {
			return 0
		}
		total := 0.0
		for _, rec := range records {
			total += numField(rec, metricField)
		}
		return total / float64(len(records))
	default: // count
		return float64(len(records))
	}
}

// msField reads a field as an epoch-millisecond timestamp.
func msField(rec map[string]any, key string) (int64, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// numField reads a numeric field, defaulting absent or non-numeric
// values to 0.
func numField(rec map[string]any, key string) float64 {
	switch n := rec[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}
