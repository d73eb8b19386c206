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

type progressRepo struct {
	db *mongo.Database
}

func NewProgressUpdateRepository(db *mongo.Database) domain.ProgressUpdateRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) col() *mongo.Collection {
	return r.db.Collection("progress_updates")
}

func (r *progressRepo) Create(ctx context.Context, update *domain.ProgressUpdate) error {
	if update.ID == "" {
		update.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col().InsertOne(ctx, update)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *progressRepo) GetByID(ctx context.Context, id string) (*domain.ProgressUpdate, error) {
	var update domain.ProgressUpdate
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &update, nil
}

func (r *progressRepo) ListByPlanAndOwner(ctx context.Context, planID, ownerEmail string) ([]domain.ProgressUpdate, error) {
	return r.findMany(ctx, bson.M{"plan_id": planID, "user_email": ownerEmail})
}

func (r *progressRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.ProgressUpdate, error) {
	return r.findMany(ctx, bson.M{"user_email": ownerEmail})
}

func (r *progressRepo) findMany(ctx context.Context, filter bson.M) ([]domain.ProgressUpdate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	updates := []domain.ProgressUpdate{}
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, apperror.Internal(err)
	}
	return updates, nil
}

func (r *progressRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
