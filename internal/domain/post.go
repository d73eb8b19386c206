package domain

import (
	"context"
	"time"
)

type Comment struct {
	ID        string    `bson:"id" json:"id"`
	UserEmail string    `bson:"user_email" json:"user_email"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Post struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients  []string  `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions []string  `bson:"instructions,omitempty" json:"instructions,omitempty"`
	MediaURLs    []string  `bson:"media_urls,omitempty" json:"media_urls,omitempty"`
	Tags         []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	UserEmail    string    `bson:"user_email" json:"user_email"`
	LikedBy      []string  `bson:"liked_by" json:"liked_by"`
	Comments     []Comment `bson:"comments" json:"comments"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	// AddLike adds actorEmail to liked_by only if it is not already a
	// member ($addToSet guarded on membership); returns true when the
	// document was modified. RemoveLike is the $pull counterpart.
	AddLike(ctx context.Context, postID, actorEmail string) (bool, error)
	RemoveLike(ctx context.Context, postID, actorEmail string) (bool, error)
	AppendComment(ctx context.Context, postID string, comment *Comment) error
	SetComments(ctx context.Context, postID string, comments []Comment) error
}

type PostUsecase interface {
	Create(ctx context.Context, post *Post, ownerEmail string) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	ListAll(ctx context.Context) ([]Post, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Post, error)
	Update(ctx context.Context, id string, post *Post, actorEmail string) (*Post, error)
	Delete(ctx context.Context, id string, actorEmail string) error
	Like(ctx context.Context, postID, actorEmail string) (*Post, error)
	AddComment(ctx context.Context, postID, content, actorEmail string) (*Post, error)
	// EditComment and DeleteComment address comments by their stable id.
	// A decimal integer is also accepted and resolved by list position,
	// kept for clients that still address comments by index.
	EditComment(ctx context.Context, postID, commentRef, content, actorEmail string) (*Post, error)
	DeleteComment(ctx context.Context, postID, commentRef, actorEmail string) (*Post, error)
}
