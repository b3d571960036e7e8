package pipeline

import (
	"context"
	"errors"
	"sort"
	"time"

	"crm-dashboards/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrPipelineNotFound = errors.New("pipeline not found")

type PipelineRepository interface {
	Create(ctx context.Context, pipeline *Pipeline) error
	Get(ctx context.Context, id string) (*Pipeline, error)
	List(ctx context.Context) ([]Pipeline, error)
	// FindDefault returns the pipeline flagged default, or nil when none is.
	FindDefault(ctx context.Context) (*Pipeline, error)
	SetDefault(ctx context.Context, id string) error
}

type PipelineRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPipelineRepository(db *database.MongodbDB) PipelineRepository {
	return &PipelineRepositoryImpl{
		collection: db.DB.Collection("pipelines"),
	}
}

func (r *PipelineRepositoryImpl) Create(ctx context.Context, pipeline *Pipeline) error {
	if pipeline.ID.IsZero() {
		pipeline.ID = primitive.NewObjectID()
	}
	pipeline.CreatedAt = time.Now()
	pipeline.UpdatedAt = time.Now()

	// Stages are served in declared order regardless of input order.
	sort.SliceStable(pipeline.Stages, func(i, j int) bool {
		return pipeline.Stages[i].Order < pipeline.Stages[j].Order
	})

	_, err := r.collection.InsertOne(ctx, pipeline)
	return err
}

func (r *PipelineRepositoryImpl) Get(ctx context.Context, id string) (*Pipeline, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPipelineNotFound
	}

	var pipeline Pipeline
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&pipeline)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPipelineNotFound
		}
		return nil, err
	}
	return &pipeline, nil
}

func (r *PipelineRepositoryImpl) List(ctx context.Context) ([]Pipeline, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pipelines []Pipeline
	if err := cursor.All(ctx, &pipelines); err != nil {
		return nil, err
	}
	return pipelines, nil
}

func (r *PipelineRepositoryImpl) FindDefault(ctx context.Context) (*Pipeline, error) {
	var pipeline Pipeline
	err := r.collection.FindOne(ctx, bson.M{"is_default": true}).Decode(&pipeline)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &pipeline, nil
}

func (r *PipelineRepositoryImpl) SetDefault(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPipelineNotFound
	}

	_, err = r.collection.UpdateMany(ctx,
		bson.M{},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrPipelineNotFound
	}

	return nil
}
