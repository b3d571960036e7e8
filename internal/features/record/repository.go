package record

import (
	"context"

	"crm-dashboards/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The CRM record collections widgets can aggregate over.
const (
	SourceDeals      = "deals"
	SourceContacts   = "contacts"
	SourceCompanies  = "companies"
	SourceActivities = "activities"
)

var knownSources = map[string]bool{
	SourceDeals:      true,
	SourceContacts:   true,
	SourceCompanies:  true,
	SourceActivities: true,
}

// KnownSource reports whether source names one of the CRM record collections.
func KnownSource(source string) bool {
	return knownSources[source]
}

type RecordRepository interface {
	// ListAll returns every record in the source collection. Unknown
	// sources yield an empty result, not an error.
	ListAll(ctx context.Context, source string) ([]map[string]any, error)
	// List returns records in store order ("asc") or reversed ("desc"),
	// capped to limit.
	List(ctx context.Context, source string, sortOrder string, limit int64) ([]map[string]any, error)
	Insert(ctx context.Context, source string, data map[string]any) (string, error)
	Count(ctx context.Context, source string) (int64, error)
}

type RecordRepositoryImpl struct {
	db *mongo.Database
}

func NewRecordRepository(mongodb *database.MongodbDB) RecordRepository {
	return &RecordRepositoryImpl{db: mongodb.DB}
}

func (r *RecordRepositoryImpl) ListAll(ctx context.Context, source string) ([]map[string]any, error) {
	if !knownSources[source] {
		return []map[string]any{}, nil
	}

	cursor, err := r.db.Collection(source).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []map[string]any
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

func (r *RecordRepositoryImpl) List(ctx context.Context, source string, sortOrder string, limit int64) ([]map[string]any, error) {
	if !knownSources[source] {
		return []map[string]any{}, nil
	}

	// The store's native ordering is insertion order, which Mongo
	// exposes through _id.
	sortDir := -1
	if sortOrder == "asc" {
		sortDir = 1
	}
	opts := options.Find().SetSort(bson.M{"_id": sortDir}).SetLimit(limit)

	cursor, err := r.db.Collection(source).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []map[string]any
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

func (r *RecordRepositoryImpl) Insert(ctx context.Context, source string, data map[string]any) (string, error) {
	res, err := r.db.Collection(source).InsertOne(ctx, data)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (r *RecordRepositoryImpl) Count(ctx context.Context, source string) (int64, error) {
	if !knownSources[source] {
		return 0, nil
	}
	return r.db.Collection(source).CountDocuments(ctx, bson.M{})
}
