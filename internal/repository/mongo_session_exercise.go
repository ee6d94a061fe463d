package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSessionExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionExerciseRepository(db *mongo.Database) *MongoSessionExerciseRepository {
	return &MongoSessionExerciseRepository{
		collection: db.Collection("session_exercises"),
	}
}

func (r *MongoSessionExerciseRepository) Create(ctx context.Context, exercise *domain.SessionExercise) error {
	exercise.CreatedAt = time.Now()
	exercise.UpdatedAt = time.Now()

	if exercise.Order == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"session_id": exercise.SessionID})
		if err != nil {
			return fmt.Errorf("failed to count session exercises: %w", err)
		}
		exercise.Order = int(count) + 1
	}

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return fmt.Errorf("failed to create session exercise: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		exercise.ID = oid.Hex()
	}
	return nil
}

func (r *MongoSessionExerciseRepository) GetBySession(ctx context.Context, sessionID string) ([]*domain.SessionExercise, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"session_id": sessionID}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []*domain.SessionExercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *MongoSessionExerciseRepository) MarkComplete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"completed": true, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
