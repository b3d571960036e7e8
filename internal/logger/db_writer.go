package logger

import (
	"context"
	"fmt"
	"time"

	common_models "crm-dashboards/internal/common/models"
	"crm-dashboards/internal/config"
	"crm-dashboards/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string // Function name
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000), // Buffer 1000 logs
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop the log instead of blocking the API
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			Message:      entry.Message,
			Caller:       entry.Caller,
			AppId:        w.appId,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert into DB (safely ignore errors to keep the app running)
		w.db.Collection("logs").InsertOne(context.Background(), logRecord)
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
