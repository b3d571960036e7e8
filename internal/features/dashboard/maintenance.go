package dashboard

import (
	"context"

	"crm-dashboards/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RegisterMaintenance schedules the default-flag reconciliation job.
// Because the unset-old/set-new default sequence is not transactional,
// concurrent writers can leave two dashboards flagged default; this job
// repairs that drift on the configured cron schedule.
func RegisterMaintenance(lc fx.Lifecycle, cfg *config.Config, service DashboardService, logger *zap.Logger) error {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.RepairSchedule, func() {
		cleared, err := service.RepairDefaults(context.Background())
		if err != nil {
			logger.Error("default dashboard repair failed", zap.Error(err))
			return
		}
		if cleared > 0 {
			logger.Warn("cleared extra default dashboards", zap.Int("cleared", cleared))
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
	return nil
}
