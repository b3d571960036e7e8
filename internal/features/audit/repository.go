package audit

import (
	"context"

	common_models "crm-dashboards/internal/common/models"
	"crm-dashboards/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Create(ctx context.Context, log common_models.AuditLog) error
	List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]common_models.AuditLog, error)
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAuditRepository(mongodb *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log common_models.AuditLog) error {
	_, err := r.Collection.InsertOne(ctx, log)
	return err
}

func (r *AuditRepositoryImpl) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]common_models.AuditLog, error) {
	opts := options.Find().SetLimit(limit).SetSkip(offset).SetSort(bson.M{"timestamp": -1})

	query := bson.M{}
	for k, v := range filters {
		query[k] = v
	}

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []common_models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
