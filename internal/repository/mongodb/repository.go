package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nexdata/internal/domain/models"
	"nexdata/internal/repository/slot"
)

const (
	slotCollection    = "slots"
	summaryCollection = "daily_summaries"
)

// MongoDBRepository backs both the persistence slot and the daily summary
// history with a single MongoDB connection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	slotName string
}

// slotDocument wraps the whole record collection in one document so the
// slot stays a single key-value entry, matching the file backend semantics.
type slotDocument struct {
	Name    string              `bson:"_id"`
	Records []models.DataRecord `bson:"records"`
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri, dbName, slotName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		slotName: slotName,
	}, nil
}

// Load fetches the record collection from the named slot document.
func (r *MongoDBRepository) Load(ctx context.Context) ([]models.DataRecord, error) {
	collection := r.client.Database(r.dbName).Collection(slotCollection)

	var doc slotDocument
	err := collection.FindOne(ctx, bson.M{"_id": r.slotName}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, slot.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", r.slotName, err)
	}

	return doc.Records, nil
}

// Save rewrites the slot document with the full collection.
func (r *MongoDBRepository) Save(ctx context.Context, records []models.DataRecord) error {
	collection := r.client.Database(r.dbName).Collection(slotCollection)

	doc := slotDocument{Name: r.slotName, Records: records}
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": r.slotName}, doc, opts); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", r.slotName, err)
	}
	return nil
}

// SaveDailySummary appends a daily summary snapshot to the history.
func (r *MongoDBRepository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	collection := r.client.Database(r.dbName).Collection(summaryCollection)
	_, err := collection.InsertOne(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to insert daily summary: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
