package mongodb

import (
	"context"
	"errors"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type planRepo struct {
	db *mongo.Database
}

func NewLearningPlanRepository(db *mongo.Database) domain.LearningPlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) col() *mongo.Collection {
	return r.db.Collection("learning_plans")
}

func (r *planRepo) Create(ctx context.Context, plan *domain.LearningPlan) error {
	if plan.ID == "" {
		plan.ID = primitive.NewObjectID().Hex()
	}
	if plan.Topics == nil {
		plan.Topics = []domain.Topic{}
	}
	_, err := r.col().InsertOne(ctx, plan)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *planRepo) GetByID(ctx context.Context, id string) (*domain.LearningPlan, error) {
	var plan domain.LearningPlan
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &plan, nil
}

func (r *planRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.LearningPlan, error) {
	return r.findMany(ctx, bson.M{"user_email": ownerEmail})
}

func (r *planRepo) ListPublic(ctx context.Context) ([]domain.LearningPlan, error) {
	return r.findMany(ctx, bson.M{"public": true})
}

func (r *planRepo) findMany(ctx context.Context, filter bson.M) ([]domain.LearningPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	plans := []domain.LearningPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, apperror.Internal(err)
	}
	return plans, nil
}

func (r *planRepo) Update(ctx context.Context, plan *domain.LearningPlan) error {
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *planRepo) SetProgress(ctx context.Context, id string, progress int) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"progress": progress}},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
