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

// Repositories return (nil, nil) when a document is absent; only dependency
// failures come back as errors. Usecases translate absence into NotFound.

type userRepo struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) col() *mongo.Collection {
	return r.db.Collection("users")
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	_, err := r.col().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.col().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) SearchByName(ctx context.Context, term string) ([]domain.User, error) {
	filter := bson.M{"name": bson.M{"$regex": term, "$options": "i"}}
	return r.findMany(ctx, filter)
}

func (r *userRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *userRepo) findMany(ctx context.Context, filter bson.M) ([]domain.User, error) {
	cursor, err := r.col().Find(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// AddFollow updates both sides of the relationship in a single transaction.
// $addToSet keeps repeated calls idempotent at the storage layer.
func (r *userRepo) AddFollow(ctx context.Context, followerID, targetID string) error {
	return r.followTxn(ctx, "$addToSet", followerID, targetID)
}

func (r *userRepo) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	return r.followTxn(ctx, "$pull", followerID, targetID)
}

func (r *userRepo) followTxn(ctx context.Context, op, followerID, targetID string) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return apperror.Internal(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.col().UpdateOne(sc,
			bson.M{"_id": followerID},
			bson.M{op: bson.M{"following": targetID}},
		); err != nil {
			return nil, err
		}
		if _, err := r.col().UpdateOne(sc,
			bson.M{"_id": targetID},
			bson.M{op: bson.M{"followers": followerID}},
		); err != nil {
			return nil, err
		}
		return nil, nil
	}, options.Transaction())
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
