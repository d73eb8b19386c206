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

type postRepo struct {
	db *mongo.Database
}

func NewPostRepository(db *mongo.Database) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) col() *mongo.Collection {
	return r.db.Collection("posts")
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col().InsertOne(ctx, post)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &post, nil
}

func (r *postRepo) ListAll(ctx context.Context) ([]domain.Post, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *postRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Post, error) {
	return r.findMany(ctx, bson.M{"user_email": ownerEmail})
}

func (r *postRepo) findMany(ctx context.Context, filter bson.M) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AddLike adds the actor to liked_by as one atomic document operation.
// The membership guard in the filter means ModifiedCount reports whether
// this call performed the add.
func (r *postRepo) AddLike(ctx context.Context, postID, actorEmail string) (bool, error) {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": postID, "liked_by": bson.M{"$ne": actorEmail}},
		bson.M{"$addToSet": bson.M{"liked_by": actorEmail}},
	)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *postRepo) RemoveLike(ctx context.Context, postID, actorEmail string) (bool, error) {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": postID, "liked_by": actorEmail},
		bson.M{"$pull": bson.M{"liked_by": actorEmail}},
	)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *postRepo) AppendComment(ctx context.Context, postID string, comment *domain.Comment) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepo) SetComments(ctx context.Context, postID string, comments []domain.Comment) error {
	if comments == nil {
		comments = []domain.Comment{}
	}
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"comments": comments}},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
