package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"crm-dashboards/internal/config"
	"crm-dashboards/internal/database"
	"crm-dashboards/internal/features/dashboard"
	"crm-dashboards/internal/features/pipeline"
	"crm-dashboards/internal/features/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	mongoDB := &database.MongodbDB{DB: db}

	fmt.Println("Starting demo data seeding...")

	userIDs := seedUsers(ctx, mongoDB)
	pipelineID, stageIDs := seedPipeline(ctx, mongoDB)
	seedRecords(ctx, mongoDB, userIDs, pipelineID, stageIDs)
	seedDashboard(ctx, mongoDB, pipelineID)

	fmt.Println("Seeding complete.")
}

func seedUsers(ctx context.Context, db *database.MongodbDB) []string {
	col := db.DB.Collection("users")

	users := []user.User{
		{FirstName: "Ava", LastName: "Harper", Email: "ava@example.com"},
		{FirstName: "Noah", LastName: "Bennett", Email: "noah@example.com"},
		{FirstName: "Mia", LastName: "Sullivan", Email: "mia@example.com"},
		{FirstName: "", LastName: "", Email: "ops@example.com"},
	}

	var ids []string
	for _, u := range users {
		if count, _ := col.CountDocuments(ctx, bson.M{"email": u.Email}); count > 0 {
			var existing user.User
			if err := col.FindOne(ctx, bson.M{"email": u.Email}).Decode(&existing); err == nil {
				ids = append(ids, existing.ID.Hex())
			}
			continue
		}
		u.ID = primitive.NewObjectID()
		u.CreatedAt = time.Now()
		u.UpdatedAt = time.Now()
		if _, err := col.InsertOne(ctx, u); err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
			continue
		}
		ids = append(ids, u.ID.Hex())
	}

	fmt.Printf("Seeded %d users\n", len(ids))
	return ids
}

func seedPipeline(ctx context.Context, db *database.MongodbDB) (string, []string) {
	col := db.DB.Collection("pipelines")

	var existing pipeline.Pipeline
	if err := col.FindOne(ctx, bson.M{"name": "Sales Pipeline"}).Decode(&existing); err == nil {
		stageIDs := make([]string, 0, len(existing.Stages))
		for _, s := range existing.Stages {
			stageIDs = append(stageIDs, s.ID)
		}
		return existing.ID.Hex(), stageIDs
	}

	p := pipeline.Pipeline{
		ID:   primitive.NewObjectID(),
		Name: "Sales Pipeline",
		Stages: []pipeline.Stage{
			{ID: "lead", Name: "Lead", Color: "#94A3B8", Order: 0},
			{ID: "qualified", Name: "Qualified", Color: "#60A5FA", Order: 1},
			{ID: "proposal", Name: "Proposal", Color: "#FBBF24", Order: 2},
			{ID: "negotiation", Name: "Negotiation", Color: "#F97316", Order: 3},
			{ID: "closing", Name: "Closing", Color: "#34D399", Order: 4},
		},
		IsDefault: true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := col.InsertOne(ctx, p); err != nil {
		log.Fatalf("Failed to seed pipeline: %v", err)
	}

	fmt.Println("Seeded default pipeline")
	return p.ID.Hex(), []string{"lead", "qualified", "proposal", "negotiation", "closing"}
}

func seedRecords(ctx context.Context, db *database.MongodbDB, userIDs []string, pipelineID string, stageIDs []string) {
	if len(userIDs) == 0 {
		return
	}

	nowMs := time.Now().UnixMilli()
	dayMs := int64(24 * time.Hour / time.Millisecond)

	deals := db.DB.Collection("deals")
	if count, _ := deals.CountDocuments(ctx, bson.M{}); count == 0 {
		statuses := []string{"open", "open", "open", "won", "lost"}
		var docs []interface{}
		for i := 0; i < 40; i++ {
			status := statuses[rand.Intn(len(statuses))]
			doc := bson.M{
				"name":       fmt.Sprintf("Deal %02d", i+1),
				"amount":     float64(rand.Intn(90)+10) * 100,
				"status":     status,
				"pipelineId": pipelineID,
				"stageId":    stageIDs[rand.Intn(len(stageIDs))],
				"ownerId":    userIDs[rand.Intn(len(userIDs))],
				"createdAt":  nowMs - int64(rand.Intn(120))*dayMs,
			}
			if status == "won" {
				doc["actualCloseDate"] = nowMs - int64(rand.Intn(60))*dayMs
			}
			docs = append(docs, doc)
		}
		deals.InsertMany(ctx, docs)
		fmt.Printf("Seeded %d deals\n", len(docs))
	}

	for source, n := range map[string]int{"contacts": 30, "companies": 12, "activities": 60} {
		col := db.DB.Collection(source)
		if count, _ := col.CountDocuments(ctx, bson.M{}); count > 0 {
			continue
		}
		var docs []interface{}
		for i := 0; i < n; i++ {
			docs = append(docs, bson.M{
				"name":      fmt.Sprintf("%s %02d", source, i+1),
				"ownerId":   userIDs[rand.Intn(len(userIDs))],
				"status":    []string{"active", "inactive"}[rand.Intn(2)],
				"createdAt": nowMs - int64(rand.Intn(120))*dayMs,
			})
		}
		col.InsertMany(ctx, docs)
		fmt.Printf("Seeded %d %s\n", len(docs), source)
	}
}

func seedDashboard(ctx context.Context, db *database.MongodbDB, pipelineID string) {
	dashboards := db.DB.Collection("dashboards")
	if count, _ := dashboards.CountDocuments(ctx, bson.M{}); count > 0 {
		return
	}

	widgets := db.DB.Collection("widgets")
	dashID := primitive.NewObjectID()

	specs := []struct {
		Type   dashboard.WidgetType
		Title  string
		Config dashboard.WidgetConfig
	}{
		{dashboard.WidgetTypeMetric, "New Deals (30d)", dashboard.WidgetConfig{
			DataSource: "deals", MetricType: "count", DateRange: "month", ShowComparison: true}},
		{dashboard.WidgetTypeMetric, "Pipeline Value", dashboard.WidgetConfig{
			DataSource: "deals", MetricType: "sum", MetricField: "amount", DateRange: "quarter"}},
		{dashboard.WidgetTypeChart, "Deals by Status", dashboard.WidgetConfig{
			DataSource: "deals", ChartType: "pie", GroupBy: "status", DateRange: "all"}},
		{dashboard.WidgetTypeList, "Recent Contacts", dashboard.WidgetConfig{
			DataSource: "contacts", SortOrder: "desc", Limit: 5}},
		{dashboard.WidgetTypeTable, "Open Deals", dashboard.WidgetConfig{
			DataSource: "deals", Columns: []string{"name", "amount", "status"}, Limit: 10}},
		{dashboard.WidgetTypeFunnel, "Sales Funnel", dashboard.WidgetConfig{
			PipelineID: pipelineID}},
		{dashboard.WidgetTypeLeaderboard, "Top Closers", dashboard.WidgetConfig{
			LeaderboardType: "deals_won", DateRange: "quarter", Limit: 10}},
	}

	var layout []dashboard.LayoutItem
	for _, spec := range specs {
		w := dashboard.Widget{
			ID:          primitive.NewObjectID(),
			DashboardID: dashID,
			Type:        spec.Type,
			Title:       spec.Title,
			Config:      spec.Config,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		pos := dashboard.FindNextPosition(layout, widgetWidth(spec.Type), widgetHeight(spec.Type))
		w.Position = pos

		if _, err := widgets.InsertOne(ctx, w); err != nil {
			log.Printf("Failed to seed widget %s: %v", spec.Title, err)
			continue
		}
		layout = append(layout, dashboard.LayoutItem{
			WidgetID: w.ID.Hex(),
			X:        pos.X, Y: pos.Y, W: pos.Width, H: pos.Height,
		})
	}

	dash := dashboard.Dashboard{
		ID:          dashID,
		Name:        "Sales Overview",
		Description: "Demo dashboard seeded with one widget of each type",
		Layout:      layout,
		IsDefault:   true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if _, err := dashboards.InsertOne(ctx, dash); err != nil {
		log.Fatalf("Failed to seed dashboard: %v", err)
	}

	fmt.Printf("Seeded dashboard with %d widgets\n", len(layout))
}

func widgetWidth(t dashboard.WidgetType) int {
	switch t {
	case dashboard.WidgetTypeMetric:
		return 3
	case dashboard.WidgetTypeList, dashboard.WidgetTypeLeaderboard:
		return 4
	default:
		return 6
	}
}

func widgetHeight(t dashboard.WidgetType) int {
	if t == dashboard.WidgetTypeMetric {
		return 2
	}
	return 4
}
