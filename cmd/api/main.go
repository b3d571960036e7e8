package main

import (
	"context"
	"fmt"
	"log"

	common_api "crm-dashboards/internal/common/api"
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/database"
	"crm-dashboards/internal/features/audit"
	"crm-dashboards/internal/features/dashboard"
	"crm-dashboards/internal/features/pipeline"
	"crm-dashboards/internal/features/record"
	"crm-dashboards/internal/features/system"
	"crm-dashboards/internal/features/user"
	"crm-dashboards/internal/logger"
	"crm-dashboards/internal/middleware"
	"crm-dashboards/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			audit.NewAuditRepository,
			record.NewRecordRepository,
			user.NewUserRepository,
			pipeline.NewPipelineRepository,
			dashboard.NewDashboardRepository,
			dashboard.NewWidgetRepository,

			// Services
			audit.NewAuditService,
			dashboard.NewDashboardService,
			dashboard.NewWidgetDataService,

			// Controllers
			audit.NewAuditController,
			pipeline.NewPipelineController,
			dashboard.NewDashboardController,
			dashboard.NewLiveController,

			// API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(pipeline.NewPipelineApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			dashboard.RegisterMaintenance,
		),
	)

	app.Run()
}
