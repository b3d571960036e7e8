package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
)

type AuditAction string

const (
	AuditActionDashboard AuditAction = "DASHBOARD"
	AuditActionWidget    AuditAction = "WIDGET"
	AuditActionPipeline  AuditAction = "PIPELINE"
	AuditActionRepair    AuditAction = "REPAIR"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"` // The collection the change targeted
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the record shape written by the async Zap sink (internal/logger).
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	AppId        string    `bson:"app_id" json:"app_id"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
