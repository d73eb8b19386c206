package usecase

import (
	"context"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"go-cookmate-backend/pkg/logger"
	"go-cookmate-backend/pkg/media"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postUsecase struct {
	postRepo       domain.PostRepository
	notificationUC domain.NotificationUsecase
	mediaStore     media.Store
}

func NewPostUsecase(postRepo domain.PostRepository, notificationUC domain.NotificationUsecase, mediaStore media.Store) domain.PostUsecase {
	return &postUsecase{postRepo: postRepo, notificationUC: notificationUC, mediaStore: mediaStore}
}

func (u *postUsecase) Create(ctx context.Context, post *domain.Post, ownerEmail string) (*domain.Post, error) {
	if strings.TrimSpace(post.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	post.UserEmail = ownerEmail
	post.LikedBy = []string{}
	post.Comments = []domain.Comment{}
	post.CreatedAt = time.Now()
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *postUsecase) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("Post not found")
	}
	return post, nil
}

func (u *postUsecase) ListAll(ctx context.Context) ([]domain.Post, error) {
	return u.postRepo.ListAll(ctx)
}

func (u *postUsecase) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Post, error) {
	return u.postRepo.ListByOwner(ctx, ownerEmail)
}

func (u *postUsecase) Update(ctx context.Context, id string, post *domain.Post, actorEmail string) (*domain.Post, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actorEmail, existing.UserEmail) {
		return nil, apperror.Forbidden("You can only update your own posts")
	}
	if strings.TrimSpace(post.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	existing.Title = post.Title
	existing.Description = post.Description
	existing.Ingredients = post.Ingredients
	existing.Instructions = post.Instructions
	existing.MediaURLs = post.MediaURLs
	existing.Tags = post.Tags
	if err := u.postRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (u *postUsecase) Delete(ctx context.Context, id string, actorEmail string) error {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actorEmail, existing.UserEmail) {
		return apperror.Forbidden("You can only delete your own posts")
	}

	for _, ref := range existing.MediaURLs {
		key := mediaKeyFromRef(ref)
		if key == "" || u.mediaStore == nil {
			continue
		}
		if err := u.mediaStore.Delete(ctx, key); err != nil {
			logger.Log.Warn("failed to release media object", "key", key, "error", err)
		}
	}
	return u.postRepo.Delete(ctx, id)
}

// Like toggles actor membership in the post's like set. The add and remove
// paths are single atomic document operations; only the add transition on
// someone else's post emits a notification.
func (u *postUsecase) Like(ctx context.Context, postID, actorEmail string) (*domain.Post, error) {
	post, err := u.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	added, err := u.postRepo.AddLike(ctx, postID, actorEmail)
	if err != nil {
		return nil, err
	}
	if added {
		if actorEmail != post.UserEmail {
			if err := u.notificationUC.NotifyLike(ctx, post, actorEmail); err != nil {
				return nil, err
			}
		}
	} else {
		if _, err := u.postRepo.RemoveLike(ctx, postID, actorEmail); err != nil {
			return nil, err
		}
	}

	return u.GetByID(ctx, postID)
}

func (u *postUsecase) AddComment(ctx context.Context, postID, content, actorEmail string) (*domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.BadRequest("Comment content is required")
	}
	post, err := u.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		UserEmail: actorEmail,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := u.postRepo.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	if actorEmail != post.UserEmail {
		if err := u.notificationUC.NotifyComment(ctx, post, actorEmail); err != nil {
			return nil, err
		}
	}

	return u.GetByID(ctx, postID)
}

// resolveComment finds a comment by its stable id, or by list position when
// the reference is a decimal integer (kept for index-addressing clients).
func resolveComment(post *domain.Post, ref string) (int, error) {
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 0 || idx >= len(post.Comments) {
			return 0, apperror.BadRequest("Invalid comment index")
		}
		return idx, nil
	}
	for i := range post.Comments {
		if post.Comments[i].ID == ref {
			return i, nil
		}
	}
	return 0, apperror.BadRequest("Invalid comment index")
}

// EditComment changes the comment's content only; the creation timestamp is
// preserved. Only the comment author may edit.
func (u *postUsecase) EditComment(ctx context.Context, postID, commentRef, content, actorEmail string) (*domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.BadRequest("Comment content is required")
	}
	post, err := u.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx, err := resolveComment(post, commentRef)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actorEmail, post.Comments[idx].UserEmail) {
		return nil, apperror.Forbidden("You can only edit your own comments")
	}

	post.Comments[idx].Content = content
	if err := u.postRepo.SetComments(ctx, postID, post.Comments); err != nil {
		return nil, err
	}
	return post, nil
}

// DeleteComment is permitted for the comment author or the post owner.
func (u *postUsecase) DeleteComment(ctx context.Context, postID, commentRef, actorEmail string) (*domain.Post, error) {
	post, err := u.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx, err := resolveComment(post, commentRef)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actorEmail, post.Comments[idx].UserEmail) &&
		!domain.CanMutate(actorEmail, post.UserEmail) {
		return nil, apperror.Forbidden("You can only delete your own comments")
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
	if err := u.postRepo.SetComments(ctx, postID, post.Comments); err != nil {
		return nil, err
	}
	return post, nil
}
