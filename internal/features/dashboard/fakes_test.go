package dashboard

import (
	"context"
	"sort"

	common_models "crm-dashboards/internal/common/models"
	"crm-dashboards/internal/features/audit"
	"crm-dashboards/internal/features/pipeline"
	"crm-dashboards/internal/features/record"
	"crm-dashboards/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDashboardRepo struct {
	dashboards map[string]*Dashboard
}

func newFakeDashboardRepo() *fakeDashboardRepo {
	return &fakeDashboardRepo{dashboards: map[string]*Dashboard{}}
}

func (r *fakeDashboardRepo) Create(_ context.Context, d *Dashboard) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Layout == nil {
		d.Layout = []LayoutItem{}
	}
	copied := *d
	r.dashboards[d.ID.Hex()] = &copied
	return nil
}

func (r *fakeDashboardRepo) Get(_ context.Context, id string) (*Dashboard, error) {
	d, ok := r.dashboards[id]
	if !ok {
		return nil, ErrDashboardNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDashboardRepo) List(_ context.Context) ([]Dashboard, error) {
	var out []Dashboard
	for _, d := range r.dashboards {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeDashboardRepo) FindDefault(_ context.Context) (*Dashboard, error) {
	for _, d := range r.dashboards {
		if d.IsDefault {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDashboardRepo) ListDefaults(_ context.Context) ([]Dashboard, error) {
	var out []Dashboard
	for _, d := range r.dashboards {
		if d.IsDefault {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDashboardRepo) Update(_ context.Context, id string, update DashboardUpdate) error {
	d, ok := r.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	if update.Name != nil {
		d.Name = *update.Name
	}
	if update.Description != nil {
		d.Description = *update.Description
	}
	if update.IsDefault != nil {
		d.IsDefault = *update.IsDefault
	}
	if update.IsPublic != nil {
		d.IsPublic = *update.IsPublic
	}
	return nil
}

func (r *fakeDashboardRepo) UpdateLayout(_ context.Context, id string, layout []LayoutItem) error {
	d, ok := r.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	d.Layout = layout
	return nil
}

func (r *fakeDashboardRepo) AppendLayoutItem(_ context.Context, id string, item LayoutItem) error {
	d, ok := r.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	d.Layout = append(d.Layout, item)
	return nil
}

func (r *fakeDashboardRepo) PullLayoutItem(_ context.Context, id string, widgetID string) error {
	d, ok := r.dashboards[id]
	if !ok {
		return ErrDashboardNotFound
	}
	kept := d.Layout[:0]
	for _, item := range d.Layout {
		if item.WidgetID != widgetID {
			kept = append(kept, item)
		}
	}
	d.Layout = kept
	return nil
}

func (r *fakeDashboardRepo) UnsetDefaults(_ context.Context, exceptID primitive.ObjectID) error {
	for _, d := range r.dashboards {
		if d.ID != exceptID {
			d.IsDefault = false
		}
	}
	return nil
}

func (r *fakeDashboardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.dashboards[id]; !ok {
		return ErrDashboardNotFound
	}
	delete(r.dashboards, id)
	return nil
}

var _ DashboardRepository = (*fakeDashboardRepo)(nil)

type fakeWidgetRepo struct {
	widgets map[string]*Widget
}

func newFakeWidgetRepo() *fakeWidgetRepo {
	return &fakeWidgetRepo{widgets: map[string]*Widget{}}
}

func (r *fakeWidgetRepo) Create(_ context.Context, w *Widget) error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	copied := *w
	r.widgets[w.ID.Hex()] = &copied
	return nil
}

func (r *fakeWidgetRepo) Get(_ context.Context, id string) (*Widget, error) {
	w, ok := r.widgets[id]
	if !ok {
		return nil, ErrWidgetNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWidgetRepo) FindByDashboard(_ context.Context, dashboardID primitive.ObjectID) ([]Widget, error) {
	var out []Widget
	for _, w := range r.widgets {
		if w.DashboardID == dashboardID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position.Y != out[j].Position.Y {
			return out[i].Position.Y < out[j].Position.Y
		}
		return out[i].Position.X < out[j].Position.X
	})
	return out, nil
}

func (r *fakeWidgetRepo) Update(_ context.Context, id string, update WidgetUpdate) error {
	w, ok := r.widgets[id]
	if !ok {
		return ErrWidgetNotFound
	}
	if update.Title != nil {
		w.Title = *update.Title
	}
	if update.Description != nil {
		w.Description = *update.Description
	}
	if update.RefreshInterval != nil {
		w.RefreshInterval = *update.RefreshInterval
	}
	if update.Config != nil {
		w.Config = *update.Config
	}
	if update.Position != nil {
		w.Position = *update.Position
	}
	return nil
}

func (r *fakeWidgetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.widgets[id]; !ok {
		return ErrWidgetNotFound
	}
	delete(r.widgets, id)
	return nil
}

func (r *fakeWidgetRepo) DeleteByDashboard(_ context.Context, dashboardID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, w := range r.widgets {
		if w.DashboardID == dashboardID {
			delete(r.widgets, id)
			deleted++
		}
	}
	return deleted, nil
}

var _ WidgetRepository = (*fakeWidgetRepo)(nil)

type fakeRecordRepo struct {
	records map[string][]map[string]any
}

func (r *fakeRecordRepo) ListAll(_ context.Context, source string) ([]map[string]any, error) {
	if recs, ok := r.records[source]; ok {
		return recs, nil
	}
	return []map[string]any{}, nil
}

func (r *fakeRecordRepo) List(_ context.Context, source string, sortOrder string, limit int64) ([]map[string]any, error) {
	recs := append([]map[string]any(nil), r.records[source]...)
	if sortOrder == "desc" {
		for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
			recs[i], recs[j] = recs[j], recs[i]
		}
	}
	if int64(len(recs)) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *fakeRecordRepo) Insert(_ context.Context, source string, data map[string]any) (string, error) {
	if r.records == nil {
		r.records = map[string][]map[string]any{}
	}
	r.records[source] = append(r.records[source], data)
	return "", nil
}

func (r *fakeRecordRepo) Count(_ context.Context, source string) (int64, error) {
	return int64(len(r.records[source])), nil
}

var _ record.RecordRepository = (*fakeRecordRepo)(nil)

type fakePipelineRepo struct {
	pipelines map[string]*pipeline.Pipeline
	defaultID string
}

func (r *fakePipelineRepo) Create(_ context.Context, p *pipeline.Pipeline) error {
	if r.pipelines == nil {
		r.pipelines = map[string]*pipeline.Pipeline{}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.pipelines[p.ID.Hex()] = p
	return nil
}

func (r *fakePipelineRepo) Get(_ context.Context, id string) (*pipeline.Pipeline, error) {
	p, ok := r.pipelines[id]
	if !ok {
		return nil, pipeline.ErrPipelineNotFound
	}
	return p, nil
}

func (r *fakePipelineRepo) List(_ context.Context) ([]pipeline.Pipeline, error) {
	var out []pipeline.Pipeline
	for _, p := range r.pipelines {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePipelineRepo) FindDefault(_ context.Context) (*pipeline.Pipeline, error) {
	if p, ok := r.pipelines[r.defaultID]; ok {
		return p, nil
	}
	return nil, nil
}

func (r *fakePipelineRepo) SetDefault(_ context.Context, id string) error {
	r.defaultID = id
	return nil
}

var _ pipeline.PipelineRepository = (*fakePipelineRepo)(nil)

type fakeUserRepo struct {
	users []user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (*user.User, error) {
	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			return &r.users[i], nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	return r.users, nil
}

var _ user.UserRepository = (*fakeUserRepo)(nil)

type noopAuditService struct{}

func (noopAuditService) LogChange(context.Context, common_models.AuditAction, string, string, map[string]common_models.Change) error {
	return nil
}

func (noopAuditService) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

var _ audit.AuditService = noopAuditService{}
