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

type MongoRelationshipRepository struct {
	collection *mongo.Collection
}

func NewMongoRelationshipRepository(db *mongo.Database) *MongoRelationshipRepository {
	coll := db.Collection("coach_athletes")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "coach_id", Value: 1}, {Key: "athlete_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoRelationshipRepository{collection: coll}
}

func (r *MongoRelationshipRepository) Create(ctx context.Context, rel *domain.CoachAthleteRelationship) error {
	rel.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, rel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRelationshipExists
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rel.ID = oid.Hex()
	}
	return nil
}

func (r *MongoRelationshipRepository) GetByCoach(ctx context.Context, coachID string) ([]*domain.CoachAthleteRelationship, error) {
	return r.findAll(ctx, bson.M{"coach_id": coachID})
}

func (r *MongoRelationshipRepository) GetByAthlete(ctx context.Context, athleteID string) ([]*domain.CoachAthleteRelationship, error) {
	return r.findAll(ctx, bson.M{"athlete_id": athleteID})
}

func (r *MongoRelationshipRepository) Exists(ctx context.Context, coachID, athleteID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"coach_id": coachID, "athlete_id": athleteID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoRelationshipRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.CoachAthleteRelationship, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rels []*domain.CoachAthleteRelationship
	if err := cursor.All(ctx, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}
