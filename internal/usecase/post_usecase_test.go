package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/internal/usecase"
	"go-cookmate-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPostFixture() *domain.Post {
	return &domain.Post{
		ID:        "post1",
		Title:     "Pad Thai",
		UserEmail: "owner@example.com",
		LikedBy:   []string{},
		Comments:  []domain.Comment{},
	}
}

func TestLikeToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Should notify the owner exactly once on a fresh like", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		post := newPostFixture()
		postRepo.On("GetByID", ctx, "post1").Return(post, nil)
		postRepo.On("AddLike", ctx, "post1", "fan@example.com").Return(true, nil)
		notifRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil).Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			assert.Equal(t, "owner@example.com", n.UserEmail)
			assert.Equal(t, domain.NotificationLike, n.Type)
			assert.Equal(t, "fan@example.com liked your post: Pad Thai", n.Content)
		})

		_, err := uc.Like(ctx, "post1", "fan@example.com")
		assert.NoError(t, err)
		notifRepo.AssertNumberOfCalls(t, "Create", 1)
		postRepo.AssertNotCalled(t, "RemoveLike", ctx, "post1", "fan@example.com")
	})

	t.Run("Should remove the like when already present and not notify", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		post := newPostFixture()
		post.LikedBy = []string{"fan@example.com"}
		postRepo.On("GetByID", ctx, "post1").Return(post, nil)
		postRepo.On("AddLike", ctx, "post1", "fan@example.com").Return(false, nil)
		postRepo.On("RemoveLike", ctx, "post1", "fan@example.com").Return(true, nil)

		_, err := uc.Like(ctx, "post1", "fan@example.com")
		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Should not notify on a self-like", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		post := newPostFixture()
		postRepo.On("GetByID", ctx, "post1").Return(post, nil)
		postRepo.On("AddLike", ctx, "post1", "owner@example.com").Return(true, nil)

		_, err := uc.Like(ctx, "post1", "owner@example.com")
		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Should return 404 before touching the like set on a missing post", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		postRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := uc.Like(ctx, "ghost", "fan@example.com")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
		postRepo.AssertNotCalled(t, "AddLike", ctx, "ghost", "fan@example.com")
	})
}

func TestPostOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid updating someone else's post", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(newPostFixture(), nil)

		_, err := uc.Update(ctx, "post1", &domain.Post{Title: "Hijacked"}, "intruder@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only update your own posts")
		postRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Should forbid deleting someone else's post and keep it", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(newPostFixture(), nil)

		err := uc.Delete(ctx, "post1", "intruder@example.com")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 403, appErr.Code)
		postRepo.AssertNotCalled(t, "Delete", ctx, "post1")
	})

	t.Run("Should report 404 on a missing post even for a would-be intruder", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		err := uc.Delete(ctx, "ghost", "intruder@example.com")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should release media objects when the owner deletes", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		store := new(MockMediaStore)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), store)

		post := newPostFixture()
		post.MediaURLs = []string{"/v1/media/abc123", "https://lh3.googleusercontent.com/external.jpg"}
		postRepo.On("GetByID", ctx, "post1").Return(post, nil)
		postRepo.On("Delete", ctx, "post1").Return(nil)
		store.On("Delete", ctx, "abc123").Return(nil)

		err := uc.Delete(ctx, "post1", "owner@example.com")
		assert.NoError(t, err)
		// The external URL is not ours; only the stored key is released.
		store.AssertNumberOfCalls(t, "Delete", 1)
	})
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	postWithComment := func() *domain.Post {
		post := newPostFixture()
		post.Comments = []domain.Comment{{
			ID:        "c1",
			UserEmail: "author@example.com",
			Content:   "Looks great",
			CreatedAt: created,
		}}
		return post
	}

	t.Run("Should append a comment and notify the owner", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		postRepo.On("GetByID", ctx, "post1").Return(newPostFixture(), nil)
		postRepo.On("AppendComment", ctx, "post1", mock.AnythingOfType("*domain.Comment")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(2).(*domain.Comment)
			assert.NotEmpty(t, c.ID)
			assert.Equal(t, "author@example.com", c.UserEmail)
		})
		notifRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		_, err := uc.AddComment(ctx, "post1", "Looks great", "author@example.com")
		assert.NoError(t, err)
		notifRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Should not notify when the owner comments on their own post", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		notifRepo := new(MockNotificationRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(notifRepo), nil)

		postRepo.On("GetByID", ctx, "post1").Return(newPostFixture(), nil)
		postRepo.On("AppendComment", ctx, "post1", mock.AnythingOfType("*domain.Comment")).Return(nil)

		_, err := uc.AddComment(ctx, "post1", "Thanks everyone", "owner@example.com")
		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Should edit content only and preserve the creation timestamp", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)
		postRepo.On("SetComments", ctx, "post1", mock.AnythingOfType("[]domain.Comment")).Return(nil).Run(func(args mock.Arguments) {
			comments := args.Get(2).([]domain.Comment)
			assert.Len(t, comments, 1)
			assert.Equal(t, "Looks even better", comments[0].Content)
			assert.Equal(t, created, comments[0].CreatedAt)
		})

		_, err := uc.EditComment(ctx, "post1", "c1", "Looks even better", "author@example.com")
		assert.NoError(t, err)
	})

	t.Run("Should forbid editing another user's comment, even for the post owner", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)

		_, err := uc.EditComment(ctx, "post1", "c1", "Reworded", "owner@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only edit your own comments")
	})

	t.Run("Should let the post owner delete another user's comment", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)
		postRepo.On("SetComments", ctx, "post1", mock.AnythingOfType("[]domain.Comment")).Return(nil).Run(func(args mock.Arguments) {
			assert.Empty(t, args.Get(2).([]domain.Comment))
		})

		_, err := uc.DeleteComment(ctx, "post1", "c1", "owner@example.com")
		assert.NoError(t, err)
	})

	t.Run("Should forbid a third party deleting a comment", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)

		_, err := uc.DeleteComment(ctx, "post1", "c1", "intruder@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only delete your own comments")
	})

	t.Run("Should resolve a comment by list position as well as by id", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)
		postRepo.On("SetComments", ctx, "post1", mock.AnythingOfType("[]domain.Comment")).Return(nil)

		_, err := uc.DeleteComment(ctx, "post1", "0", "author@example.com")
		assert.NoError(t, err)
	})

	t.Run("Should reject an out-of-range index", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("GetByID", ctx, "post1").Return(postWithComment(), nil)

		_, err := uc.DeleteComment(ctx, "post1", "5", "author@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid comment index")
	})

	t.Run("Should reject an empty comment body", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		_, err := uc.AddComment(ctx, "post1", "   ", "author@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "content is required")
	})
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should stamp ownership and start with empty like and comment sets", func(t *testing.T) {
		postRepo := new(MockPostRepo)
		uc := usecase.NewPostUsecase(postRepo, usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		postRepo.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(nil)

		post, err := uc.Create(ctx, &domain.Post{Title: "Ramen", UserEmail: "spoofed@example.com"}, "owner@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "owner@example.com", post.UserEmail)
		assert.NotNil(t, post.LikedBy)
		assert.Empty(t, post.LikedBy)
		assert.NotNil(t, post.Comments)
	})

	t.Run("Should reject a blank title", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), usecase.NewNotificationUsecase(new(MockNotificationRepo)), nil)

		_, err := uc.Create(ctx, &domain.Post{Title: "  "}, "owner@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Title is required")
	})
}
