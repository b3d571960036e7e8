package audit

import (
	"context"
	"time"

	common_models "crm-dashboards/internal/common/models"
)

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module, recordID string, changes map[string]common_models.Change) error
	ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module, recordID string, changes map[string]common_models.Change) error {
	actorID, _ := ctx.Value(common_models.UserIDKey).(string)

	return s.Repo.Create(ctx, common_models.AuditLog{
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now(),
	})
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.Repo.List(ctx, filters, limit, (page-1)*limit)
}
