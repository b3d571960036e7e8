package dashboard

import (
	"context"
	"fmt"

	common_models "crm-dashboards/internal/common/models"
	"crm-dashboards/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateDashboardInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
}

type AddWidgetInput struct {
	Type            WidgetType      `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	RefreshInterval int             `json:"refresh_interval,omitempty"`
	Config          WidgetConfig    `json:"config"`
	Position        *WidgetPosition `json:"position,omitempty"`
}

type DashboardService interface {
	ListDashboards(ctx context.Context) ([]Dashboard, error)
	// GetDashboard returns nil (no error) when the id resolves to nothing.
	GetDashboard(ctx context.Context, id string) (*DashboardWithWidgets, error)
	GetDefaultDashboard(ctx context.Context) (*DashboardWithWidgets, error)
	CreateDashboard(ctx context.Context, input CreateDashboardInput) (string, error)
	UpdateDashboard(ctx context.Context, id string, update DashboardUpdate) (string, error)
	DeleteDashboard(ctx context.Context, id string) (string, error)
	DuplicateDashboard(ctx context.Context, id string, newName string) (string, error)
	UpdateLayout(ctx context.Context, dashboardID string, layout []LayoutItem) (string, error)
	AddWidget(ctx context.Context, dashboardID string, input AddWidgetInput) (string, error)
	UpdateWidget(ctx context.Context, widgetID string, update WidgetUpdate) (string, error)
	RemoveWidget(ctx context.Context, widgetID string) (string, error)
	// RepairDefaults unsets the default flag on all but the oldest
	// flagged dashboard and reports how many were cleared.
	RepairDefaults(ctx context.Context) (int, error)
}

type DashboardServiceImpl struct {
	DashboardRepo DashboardRepository
	WidgetRepo    WidgetRepository
	AuditService  audit.AuditService
}

func NewDashboardService(
	dashboardRepo DashboardRepository,
	widgetRepo WidgetRepository,
	auditService audit.AuditService,
) DashboardService {
	return &DashboardServiceImpl{
		DashboardRepo: dashboardRepo,
		WidgetRepo:    widgetRepo,
		AuditService:  auditService,
	}
}

func (s *DashboardServiceImpl) ListDashboards(ctx context.Context) ([]Dashboard, error) {
	return s.DashboardRepo.List(ctx)
}

func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, id string) (*DashboardWithWidgets, error) {
	dash, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		if err == ErrDashboardNotFound {
			return nil, nil
		}
		return nil, err
	}
	return s.withWidgets(ctx, dash)
}

func (s *DashboardServiceImpl) GetDefaultDashboard(ctx context.Context) (*DashboardWithWidgets, error) {
	dash, err := s.DashboardRepo.FindDefault(ctx)
	if err != nil {
		return nil, err
	}
	if dash == nil {
		return nil, nil
	}
	return s.withWidgets(ctx, dash)
}

func (s *DashboardServiceImpl) withWidgets(ctx context.Context, dash *Dashboard) (*DashboardWithWidgets, error) {
	widgets, err := s.WidgetRepo.FindByDashboard(ctx, dash.ID)
	if err != nil {
		return nil, err
	}
	return &DashboardWithWidgets{Dashboard: *dash, Widgets: widgets}, nil
}

func (s *DashboardServiceImpl) CreateDashboard(ctx context.Context, input CreateDashboardInput) (string, error) {
	if input.Name == "" {
		return "", fmt.Errorf("dashboard name is required")
	}

	// Only one dashboard may hold the default flag. Each patch is atomic
	// but the unset/insert pair is not; RepairDefaults reconciles.
	if input.IsDefault {
		if err := s.DashboardRepo.UnsetDefaults(ctx, primitive.NilObjectID); err != nil {
			return "", err
		}
	}

	dash := &Dashboard{
		Name:        input.Name,
		Description: input.Description,
		IsDefault:   input.IsDefault,
		IsPublic:    input.IsPublic,
		Layout:      []LayoutItem{},
	}
	if err := s.DashboardRepo.Create(ctx, dash); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", dash.ID.Hex(), map[string]common_models.Change{
		"dashboard": {New: dash},
	})
	return dash.ID.Hex(), nil
}

func (s *DashboardServiceImpl) UpdateDashboard(ctx context.Context, id string, update DashboardUpdate) (string, error) {
	existing, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if update.IsDefault != nil && *update.IsDefault {
		if err := s.DashboardRepo.UnsetDefaults(ctx, existing.ID); err != nil {
			return "", err
		}
	}

	if err := s.DashboardRepo.Update(ctx, id, update); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", id, map[string]common_models.Change{
		"dashboard": {Old: existing, New: update},
	})
	return id, nil
}

func (s *DashboardServiceImpl) DeleteDashboard(ctx context.Context, id string) (string, error) {
	existing, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	// Widgets go first so an interrupted delete cannot orphan them.
	if _, err := s.WidgetRepo.DeleteByDashboard(ctx, existing.ID); err != nil {
		return "", err
	}
	if err := s.DashboardRepo.Delete(ctx, id); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", existing.Name, map[string]common_models.Change{
		"dashboard": {Old: existing, New: "DELETED"},
	})
	return id, nil
}

func (s *DashboardServiceImpl) DuplicateDashboard(ctx context.Context, id string, newName string) (string, error) {
	orig, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	widgets, err := s.WidgetRepo.FindByDashboard(ctx, orig.ID)
	if err != nil {
		return "", err
	}

	if newName == "" {
		newName = orig.Name + " (Copy)"
	}

	copyDash := &Dashboard{
		Name:        newName,
		Description: orig.Description,
		IsDefault:   false,
		IsPublic:    false,
		Layout:      []LayoutItem{},
	}
	if err := s.DashboardRepo.Create(ctx, copyDash); err != nil {
		return "", err
	}

	idMap := make(map[string]string, len(widgets))
	for _, w := range widgets {
		dup := w
		dup.ID = primitive.NilObjectID
		dup.DashboardID = copyDash.ID
		if err := s.WidgetRepo.Create(ctx, &dup); err != nil {
			return "", err
		}
		idMap[w.ID.Hex()] = dup.ID.Hex()
	}

	// Stale layout entries pointing at deleted widgets pass through
	// unchanged rather than being dropped.
	layout := make([]LayoutItem, 0, len(orig.Layout))
	for _, item := range orig.Layout {
		if newID, ok := idMap[item.WidgetID]; ok {
			item.WidgetID = newID
		}
		layout = append(layout, item)
	}
	if err := s.DashboardRepo.UpdateLayout(ctx, copyDash.ID.Hex(), layout); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", copyDash.ID.Hex(), map[string]common_models.Change{
		"duplicated_from": {Old: orig.ID.Hex(), New: copyDash.ID.Hex()},
	})
	return copyDash.ID.Hex(), nil
}

func (s *DashboardServiceImpl) UpdateLayout(ctx context.Context, dashboardID string, layout []LayoutItem) (string, error) {
	// Clients own grid placement; no server-side overlap validation.
	if err := s.DashboardRepo.UpdateLayout(ctx, dashboardID, layout); err != nil {
		return "", err
	}
	return dashboardID, nil
}

func (s *DashboardServiceImpl) AddWidget(ctx context.Context, dashboardID string, input AddWidgetInput) (string, error) {
	if !validWidgetTypes[input.Type] {
		return "", fmt.Errorf("invalid widget type '%s'", input.Type)
	}
	if err := validateConfig(input.Type, input.Config); err != nil {
		return "", err
	}

	dash, err := s.DashboardRepo.Get(ctx, dashboardID)
	if err != nil {
		return "", err
	}

	size := defaultSize(input.Type)
	pos := WidgetPosition{}
	if input.Position != nil {
		pos = *input.Position
	} else {
		pos = FindNextPosition(dash.Layout, size.W, size.H)
	}

	widget := &Widget{
		DashboardID:     dash.ID,
		Type:            input.Type,
		Title:           input.Title,
		Description:     input.Description,
		RefreshInterval: input.RefreshInterval,
		Config:          input.Config,
		Position:        pos,
	}
	if err := s.WidgetRepo.Create(ctx, widget); err != nil {
		return "", err
	}

	minW, minH := size.MinW, size.MinH
	item := LayoutItem{
		WidgetID: widget.ID.Hex(),
		X:        pos.X,
		Y:        pos.Y,
		W:        pos.Width,
		H:        pos.Height,
		MinW:     &minW,
		MinH:     &minH,
	}
	if err := s.DashboardRepo.AppendLayoutItem(ctx, dashboardID, item); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionWidget, "widgets", widget.ID.Hex(), map[string]common_models.Change{
		"widget": {New: widget},
	})
	return widget.ID.Hex(), nil
}

func (s *DashboardServiceImpl) UpdateWidget(ctx context.Context, widgetID string, update WidgetUpdate) (string, error) {
	existing, err := s.WidgetRepo.Get(ctx, widgetID)
	if err != nil {
		return "", err
	}
	if update.Config != nil {
		if err := validateConfig(existing.Type, *update.Config); err != nil {
			return "", err
		}
	}

	if err := s.WidgetRepo.Update(ctx, widgetID, update); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionWidget, "widgets", widgetID, map[string]common_models.Change{
		"widget": {Old: existing, New: update},
	})
	return widgetID, nil
}

func (s *DashboardServiceImpl) RemoveWidget(ctx context.Context, widgetID string) (string, error) {
	widget, err := s.WidgetRepo.Get(ctx, widgetID)
	if err != nil {
		return "", err
	}

	if err := s.WidgetRepo.Delete(ctx, widgetID); err != nil {
		return "", err
	}

	// Best-effort: the parent dashboard may already be gone.
	if err := s.DashboardRepo.PullLayoutItem(ctx, widget.DashboardID.Hex(), widgetID); err != nil && err != ErrDashboardNotFound {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionWidget, "widgets", widgetID, map[string]common_models.Change{
		"widget": {Old: widget, New: "DELETED"},
	})
	return widgetID, nil
}

func (s *DashboardServiceImpl) RepairDefaults(ctx context.Context) (int, error) {
	defaults, err := s.DashboardRepo.ListDefaults(ctx)
	if err != nil {
		return 0, err
	}
	if len(defaults) <= 1 {
		return 0, nil
	}

	// Keep the oldest flagged dashboard, clear the rest.
	keep := defaults[0]
	if err := s.DashboardRepo.UnsetDefaults(ctx, keep.ID); err != nil {
		return 0, err
	}

	cleared := len(defaults) - 1
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionRepair, "dashboards", keep.ID.Hex(), map[string]common_models.Change{
		"defaults_cleared": {Old: len(defaults), New: 1},
	})
	return cleared, nil
}
