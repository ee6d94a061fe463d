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

type MongoPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) *MongoPlanRepository {
	return &MongoPlanRepository{
		collection: db.Collection("training_plans"),
	}
}

func (r *MongoPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()
	if plan.Status == "" {
		plan.Status = domain.PlanDraft
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid.Hex()
	}
	return nil
}

func (r *MongoPlanRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var plan domain.TrainingPlan
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *MongoPlanRepository) GetByCoach(ctx context.Context, coachID string) ([]*domain.TrainingPlan, error) {
	return r.findAll(ctx, bson.M{"coach_id": coachID})
}

func (r *MongoPlanRepository) GetByAthlete(ctx context.Context, athleteID string) ([]*domain.TrainingPlan, error) {
	return r.findAll(ctx, bson.M{"athlete_id": athleteID})
}

func (r *MongoPlanRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.TrainingPlan, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []*domain.TrainingPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *MongoPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	plan.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"title":       plan.Title,
			"description": plan.Description,
			"start_date":  plan.StartDate,
			"end_date":    plan.EndDate,
			"status":      plan.Status,
			"updated_at":  plan.UpdatedAt,
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
