package dashboard

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const defaultRefreshInterval = 30 * time.Second

// LiveController streams a dashboard's widget data over a websocket,
// re-resolving every widget on a fixed interval.
type LiveController struct {
	DataService WidgetDataService
	Logger      *zap.Logger
}

func NewLiveController(dataService WidgetDataService, logger *zap.Logger) *LiveController {
	return &LiveController{
		DataService: dataService,
		Logger:      logger,
	}
}

// streamInterval maps the client's interval query (in seconds) onto a
// refresh period. Missing or unparseable values fall back to the
// default; anything below one second is floored to one second.
func streamInterval(query string) time.Duration {
	if query == "" {
		return defaultRefreshInterval
	}
	d, err := time.ParseDuration(query + "s")
	if err != nil {
		return defaultRefreshInterval
	}
	if d < time.Second {
		return time.Second
	}
	return d
}

func (h *LiveController) HandleDashboardStream(c *websocket.Conn) {
	dashboardID := c.Params("id")
	interval := streamInterval(c.Query("interval"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Push once immediately, then on every tick until the client goes away.
	for {
		data, err := h.DataService.GetDashboardData(context.Background(), dashboardID)
		if err != nil {
			h.Logger.Warn("dashboard stream aggregation failed",
				zap.String("dashboard_id", dashboardID), zap.Error(err))
			break
		}

		if err := c.WriteJSON(data); err != nil {
			break
		}

		<-ticker.C
	}
}
