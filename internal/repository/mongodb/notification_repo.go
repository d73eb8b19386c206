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

type notificationRepo struct {
	db *mongo.Database
}

func NewNotificationRepository(db *mongo.Database) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) col() *mongo.Collection {
	return r.db.Collection("notifications")
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col().InsertOne(ctx, n)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &n, nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, email string) ([]domain.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col().Find(ctx, bson.M{"user_email": email}, opts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	notifications := []domain.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}

func (r *notificationRepo) Update(ctx context.Context, n *domain.Notification) error {
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": n.ID}, n)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, email string) error {
	_, err := r.col().UpdateMany(ctx,
		bson.M{"user_email": email, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
