package usecase

import (
	"context"
	"fmt"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"time"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

// NotifyLike records a like notification for the post owner. Callers skip
// the call when the actor is the owner; no self-notifications exist.
func (u *notificationUsecase) NotifyLike(ctx context.Context, post *domain.Post, actorEmail string) error {
	return u.notificationRepo.Create(ctx, &domain.Notification{
		UserEmail:        post.UserEmail,
		Type:             domain.NotificationLike,
		PostID:           post.ID,
		TriggerUserEmail: actorEmail,
		Content:          fmt.Sprintf("%s liked your post: %s", actorEmail, post.Title),
		CreatedAt:        time.Now(),
	})
}

func (u *notificationUsecase) NotifyComment(ctx context.Context, post *domain.Post, actorEmail string) error {
	return u.notificationRepo.Create(ctx, &domain.Notification{
		UserEmail:        post.UserEmail,
		Type:             domain.NotificationComment,
		PostID:           post.ID,
		TriggerUserEmail: actorEmail,
		Content:          fmt.Sprintf("%s commented on your post: %s", actorEmail, post.Title),
		CreatedAt:        time.Now(),
	})
}

func (u *notificationUsecase) ListForUser(ctx context.Context, email string) ([]domain.Notification, error) {
	return u.notificationRepo.ListByRecipient(ctx, email)
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id, actorEmail string) (*domain.Notification, error) {
	n, err := u.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperror.NotFound("Notification not found")
	}
	if !domain.CanMutate(actorEmail, n.UserEmail) {
		return nil, apperror.Forbidden("You can only mark your own notifications")
	}

	n.Read = true
	if err := u.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, actorEmail string) error {
	return u.notificationRepo.MarkAllRead(ctx, actorEmail)
}
