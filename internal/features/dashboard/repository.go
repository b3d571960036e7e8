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

var ErrDashboardNotFound = errors.New("dashboard not found")

type DashboardRepository interface {
	Create(ctx context.Context, dashboard *Dashboard) error
	Get(ctx context.Context, id string) (*Dashboard, error)
	// List returns every dashboard, default first, then by name ascending.
	List(ctx context.Context) ([]Dashboard, error)
	// FindDefault returns the dashboard flagged default, or nil when none is.
	FindDefault(ctx context.Context) (*Dashboard, error)
	// ListDefaults returns every dashboard flagged default, oldest first.
	ListDefaults(ctx context.Context) ([]Dashboard, error)
	Update(ctx context.Context, id string, update DashboardUpdate) error
	UpdateLayout(ctx context.Context, id string, layout []LayoutItem) error
	AppendLayoutItem(ctx context.Context, id string, item LayoutItem) error
	PullLayoutItem(ctx context.Context, id string, widgetID string) error
	// UnsetDefaults clears the default flag on every dashboard except the
	// one named by exceptID (pass the zero ObjectID to clear all).
	UnsetDefaults(ctx context.Context, exceptID primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type DashboardRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDashboardRepository(db *database.MongodbDB) DashboardRepository {
	return &DashboardRepositoryImpl{
		collection: db.DB.Collection("dashboards"),
	}
}

func (r *DashboardRepositoryImpl) Create(ctx context.Context, dashboard *Dashboard) error {
	if dashboard.ID.IsZero() {
		dashboard.ID = primitive.NewObjectID()
	}
	if dashboard.Layout == nil {
		dashboard.Layout = []LayoutItem{}
	}
	dashboard.CreatedAt = time.Now()
	dashboard.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, dashboard)
	return err
}

func (r *DashboardRepositoryImpl) Get(ctx context.Context, id string) (*Dashboard, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrDashboardNotFound
	}

	var dashboard Dashboard
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&dashboard)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDashboardNotFound
		}
		return nil, err
	}
	return &dashboard, nil
}

func (r *DashboardRepositoryImpl) List(ctx context.Context) ([]Dashboard, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dashboards []Dashboard
	if err := cursor.All(ctx, &dashboards); err != nil {
		return nil, err
	}
	return dashboards, nil
}

func (r *DashboardRepositoryImpl) FindDefault(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	err := r.collection.FindOne(ctx, bson.M{"is_default": true}).Decode(&dashboard)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &dashboard, nil
}

func (r *DashboardRepositoryImpl) ListDefaults(ctx context.Context) ([]Dashboard, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"is_default": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dashboards []Dashboard
	if err := cursor.All(ctx, &dashboards); err != nil {
		return nil, err
	}
	return dashboards, nil
}

func (r *DashboardRepositoryImpl) Update(ctx context.Context, id string, update DashboardUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDashboardNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.IsDefault != nil {
		set["is_default"] = *update.IsDefault
	}
	if update.IsPublic != nil {
		set["is_public"] = *update.IsPublic
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) UpdateLayout(ctx context.Context, id string, layout []LayoutItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDashboardNotFound
	}
	if layout == nil {
		layout = []LayoutItem{}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"layout": layout, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) AppendLayoutItem(ctx context.Context, id string, item LayoutItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDashboardNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"layout": item},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) PullLayoutItem(ctx context.Context, id string, widgetID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDashboardNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"layout": bson.M{"widget_id": widgetID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) UnsetDefaults(ctx context.Context, exceptID primitive.ObjectID) error {
	filter := bson.M{"is_default": true}
	if !exceptID.IsZero() {
		filter["_id"] = bson.M{"$ne": exceptID}
	}

	_, err := r.collection.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"is_default": false},
	})
	return err
}

func (r *DashboardRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDashboardNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrDashboardNotFound
	}
	return nil
}
