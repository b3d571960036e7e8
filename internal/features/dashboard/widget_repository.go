package dashboard

import (
	"context"
	"errors"
	"time"

	"crm-dashboards/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrWidgetNotFound = errors.New("widget not found")

type WidgetRepository interface {
	Create(ctx context.Context, widget *Widget) error
	Get(ctx context.Context, id string) (*Widget, error)
	// FindByDashboard returns the dashboard's widgets ordered by grid
	// position, top-to-bottom then left-to-right.
	FindByDashboard(ctx context.Context, dashboardID primitive.ObjectID) ([]Widget, error)
	Update(ctx context.Context, id string, update WidgetUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteByDashboard(ctx context.Context, dashboardID primitive.ObjectID) (int64, error)
}

type WidgetRepositoryImpl struct {
	collection *mongo.Collection
}

func NewWidgetRepository(db *database.MongodbDB) WidgetRepository {
	return &WidgetRepositoryImpl{
		collection: db.DB.Collection("widgets"),
	}
}

func (r *WidgetRepositoryImpl) Create(ctx context.Context, widget *Widget) error {
	if widget.ID.IsZero() {
		widget.ID = primitive.NewObjectID()
	}
	widget.CreatedAt = time.Now()
	widget.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, widget)
	return err
}

func (r *WidgetRepositoryImpl) Get(ctx context.Context, id string) (*Widget, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrWidgetNotFound
	}

	var widget Widget
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&widget)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrWidgetNotFound
		}
		return nil, err
	}
	return &widget, nil
}

func (r *WidgetRepositoryImpl) FindByDashboard(ctx context.Context, dashboardID primitive.ObjectID) ([]Widget, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "position.y", Value: 1},
		{Key: "position.x", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"dashboard_id": dashboardID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var widgets []Widget
	if err := cursor.All(ctx, &widgets); err != nil {
		return nil, err
	}
	if widgets == nil {
		widgets = []Widget{}
	}
	return widgets, nil
}

func (r *WidgetRepositoryImpl) Update(ctx context.Context, id string, update WidgetUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrWidgetNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.RefreshInterval != nil {
		set["refresh_interval"] = *update.RefreshInterval
	}
	if update.Config != nil {
		set["config"] = *update.Config
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrWidgetNotFound
	}
	return nil
}

func (r *WidgetRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrWidgetNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrWidgetNotFound
	}
	return nil
}

func (r *WidgetRepositoryImpl) DeleteByDashboard(ctx context.Context, dashboardID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"dashboard_id": dashboardID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
