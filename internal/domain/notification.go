package domain

import (
	"context"
	"time"
)

const (
	NotificationLike    = "LIKE"
	NotificationComment = "COMMENT"
)

type Notification struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	UserEmail        string    `bson:"user_email" json:"user_email"`
	Type             string    `bson:"type" json:"type"`
	PostID           string    `bson:"post_id" json:"post_id"`
	TriggerUserEmail string    `bson:"trigger_user_email" json:"trigger_user_email"`
	Content          string    `bson:"content" json:"content"`
	Read             bool      `bson:"read" json:"read"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByRecipient(ctx context.Context, email string) ([]Notification, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, email string) error
}

type NotificationUsecase interface {
	NotifyLike(ctx context.Context, post *Post, actorEmail string) error
	NotifyComment(ctx context.Context, post *Post, actorEmail string) error
	ListForUser(ctx context.Context, email string) ([]Notification, error)
	MarkRead(ctx context.Context, id, actorEmail string) (*Notification, error)
	MarkAllRead(ctx context.Context, actorEmail string) error
}
