package logger

import (
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Log entries go to the console
// and, through the async sink, into the "logs" collection.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller so the sink can record the function name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	dbWriter := NewDBLogWriter(mongodb, cfg)

	finalCore := NewDBCore(baseLogger.Core(), dbWriter)

	return zap.New(finalCore, zap.AddCaller()), nil
}
