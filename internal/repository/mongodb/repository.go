package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/repository"
)

const (
	calculationsCollection = "calculations"
	settingsCollection     = "settings"
)

// MongoDBRepository stores calculation history and user settings in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository and ensures its indexes.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	r := &MongoDBRepository{client: client, dbName: dbName}
	if err := r.init(ctx); err != nil {
		if derr := client.Disconnect(context.WithoutCancel(ctx)); derr != nil {
			err = errors.Join(err, fmt.Errorf("disconnect mongodb: %w", derr))
		}
		return nil, err
	}

	return r, nil
}

// init verifies the connection and creates the indexes.
func (r *MongoDBRepository) init(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return r.ensureIndexes(ctx)
}

func (r *MongoDBRepository) calculations() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(calculationsCollection)
}

func (r *MongoDBRepository) settings() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(settingsCollection)
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.calculations().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create calculations index: %w", err)
	}
	return nil
}

// SaveCalculation inserts a calculation record.
func (r *MongoDBRepository) SaveCalculation(ctx context.Context, calc models.Calculation) (models.Calculation, error) {
	if _, err := r.calculations().InsertOne(ctx, calc); err != nil {
		return models.Calculation{}, fmt.Errorf("failed to insert calculation: %w", err)
	}
	return calc, nil
}

// ListCalculations returns the user's newest calculations first.
func (r *MongoDBRepository) ListCalculations(ctx context.Context, userID string, limit int) ([]models.Calculation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.calculations().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer cursor.Close(ctx)

	calcs := make([]models.Calculation, 0)
	if err := cursor.All(ctx, &calcs); err != nil {
		return nil, fmt.Errorf("failed to decode calculations: %w", err)
	}
	return calcs, nil
}

// GetCalculation loads one calculation owned by the user.
func (r *MongoDBRepository) GetCalculation(ctx context.Context, userID, id string) (models.Calculation, error) {
	var calc models.Calculation
	err := r.calculations().FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&calc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Calculation{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Calculation{}, fmt.Errorf("failed to load calculation: %w", err)
	}
	return calc, nil
}

// DeleteCalculation removes one calculation owned by the user.
func (r *MongoDBRepository) DeleteCalculation(ctx context.Context, userID, id string) error {
	res, err := r.calculations().DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearCalculations removes every calculation owned by the user.
func (r *MongoDBRepository) ClearCalculations(ctx context.Context, userID string) error {
	if _, err := r.calculations().DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to clear calculations: %w", err)
	}
	return nil
}

// GetSettings loads the user's calculator settings.
func (r *MongoDBRepository) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	var s models.Settings
	err := r.settings().FindOne(ctx, bson.M{"_id": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Settings{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// SaveSettings upserts the user's calculator settings.
func (r *MongoDBRepository) SaveSettings(ctx context.Context, s models.Settings) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.settings().ReplaceOne(ctx, bson.M{"_id": s.UserID}, s, opts); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
