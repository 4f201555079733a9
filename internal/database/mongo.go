package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
)

// MongoDB backs the append-only extraction-snapshot log. Snapshots are an
// observability record of what was resolved, not a versioned entity: there
// is no update path.
type MongoDB struct {
	client    *mongo.Client
	database  *mongo.Database
	snapshots *mongo.Collection
}

func NewMongoDB(cfg *config.MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	mongodb := &MongoDB{
		client:    client,
		database:  db,
		snapshots: db.Collection("snapshots"),
	}

	if err := mongodb.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mongodb, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	snapshotIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "platform", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "source_url", Value: 1}},
		},
	}

	if _, err := m.snapshots.Indexes().CreateMany(ctx, snapshotIndexes); err != nil {
		return fmt.Errorf("failed to create snapshot indexes: %w", err)
	}

	return nil
}

// SaveSnapshot appends one extraction snapshot.
func (m *MongoDB) SaveSnapshot(ctx context.Context, snapshot *models.ExtractionSnapshot) error {
	_, err := m.snapshots.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// ListRecentSnapshots returns up to limit snapshots, newest first.
func (m *MongoDB) ListRecentSnapshots(ctx context.Context, limit int) ([]models.ExtractionSnapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.snapshots.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []models.ExtractionSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	return snapshots, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
