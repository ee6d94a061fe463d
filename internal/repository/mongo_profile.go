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

type MongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	coll := db.Collection("profiles")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"firebase_uid": 1},
		Options: options.Index().SetSparse(true),
	})
	coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"coach_code": 1},
		Options: options.Index().SetSparse(true),
	})

	return &MongoProfileRepository{collection: coll}
}

func (r *MongoProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}
	return nil
}

func (r *MongoProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoProfileRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": uid})
}

func (r *MongoProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoProfileRepository) GetByCoachCode(ctx context.Context, code string) (*domain.UserProfile, error) {
	return r.findOne(ctx, bson.M{"coach_code": code})
}

func (r *MongoProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *MongoProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	oid, err := primitive.ObjectIDFromHex(profile.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	profile.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"username":          profile.Username,
			"age":               profile.Age,
			"primary_events":    profile.PrimaryEvents,
			"experience_levels": profile.ExperienceLevels,
			"personal_records":  profile.PersonalRecords,
			"role":              profile.Role,
			"updated_at":        profile.UpdatedAt,
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *MongoProfileRepository) UpdateFirebaseUID(ctx context.Context, profileID, firebaseUID string) error {
	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.ErrInvalidID
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"firebase_uid": firebaseUID, "updated_at": time.Now()},
	})
	return err
}

func (r *MongoProfileRepository) SetCoachCode(ctx context.Context, profileID, code string) error {
	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.ErrInvalidID
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"coach_code": code, "updated_at": time.Now()},
	})
	return err
}

func (r *MongoProfileRepository) SetAvatarURL(ctx context.Context, profileID, url string) error {
	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.ErrInvalidID
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"avatar_url": url, "updated_at": time.Now()},
	})
	return err
}
