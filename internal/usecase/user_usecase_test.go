package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/internal/usecase"
	"go-cookmate-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	currentFixture := func() *domain.User {
		return &domain.User{ID: "u1", Email: "me@example.com", Following: []string{}}
	}

	t.Run("Should reject following yourself", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		current := currentFixture()
		userRepo.On("GetByEmail", ctx, "me@example.com").Return(current, nil)
		userRepo.On("GetByID", ctx, "u1").Return(current, nil)

		_, err := uc.Follow(ctx, "me@example.com", "u1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot follow yourself")
		userRepo.AssertNotCalled(t, "AddFollow", ctx, "u1", "u1")
	})

	t.Run("Should report 404 for a missing target", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		userRepo.On("GetByEmail", ctx, "me@example.com").Return(currentFixture(), nil)
		userRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := uc.Follow(ctx, "me@example.com", "ghost")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should be a no-op when already following", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		current := currentFixture()
		current.Following = []string{"u2"}
		userRepo.On("GetByEmail", ctx, "me@example.com").Return(current, nil)
		userRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2", Email: "them@example.com"}, nil)

		result, err := uc.Follow(ctx, "me@example.com", "u2")
		assert.NoError(t, err)
		assert.Equal(t, []string{"u2"}, result.Following)
		userRepo.AssertNotCalled(t, "AddFollow", ctx, "u1", "u2")
	})

	t.Run("Should add both sides of the edge through the repository", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		userRepo.On("GetByEmail", ctx, "me@example.com").Return(currentFixture(), nil)
		userRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2", Email: "them@example.com"}, nil)
		userRepo.On("AddFollow", ctx, "u1", "u2").Return(nil)

		_, err := uc.Follow(ctx, "me@example.com", "u2")
		assert.NoError(t, err)
		userRepo.AssertCalled(t, "AddFollow", ctx, "u1", "u2")
	})

	t.Run("Should make unfollow a no-op when not following", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		userRepo.On("GetByEmail", ctx, "me@example.com").Return(currentFixture(), nil)
		userRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2", Email: "them@example.com"}, nil)

		_, err := uc.Unfollow(ctx, "me@example.com", "u2")
		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "RemoveFollow", ctx, "u1", "u2")
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep name and picture when the patch leaves them empty", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		user := &domain.User{ID: "u1", Email: "me@example.com", Name: "Chef", ProfilePictureURL: "/v1/media/pic1", Bio: "old bio"}
		userRepo.On("GetByEmail", ctx, "me@example.com").Return(user, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		updated, err := uc.UpdateProfile(ctx, "me@example.com", &domain.ProfilePatch{Bio: "new bio", Location: "Bangkok"})
		assert.NoError(t, err)
		assert.Equal(t, "Chef", updated.Name)
		assert.Equal(t, "/v1/media/pic1", updated.ProfilePictureURL)
		assert.Equal(t, "new bio", updated.Bio)
		assert.Equal(t, "Bangkok", updated.Location)
	})

	t.Run("Should release the old picture when a new one is set", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		store := new(MockMediaStore)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), store)

		user := &domain.User{ID: "u1", Email: "me@example.com", ProfilePictureURL: "/v1/media/pic1"}
		userRepo.On("GetByEmail", ctx, "me@example.com").Return(user, nil)
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		store.On("Delete", ctx, "pic1").Return(nil)

		updated, err := uc.UpdateProfile(ctx, "me@example.com", &domain.ProfilePatch{ProfilePictureURL: "/v1/media/pic2"})
		assert.NoError(t, err)
		assert.Equal(t, "/v1/media/pic2", updated.ProfilePictureURL)
		store.AssertCalled(t, "Delete", ctx, "pic1")
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove owned posts and their media before the user record", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		postRepo := new(MockPostRepo)
		store := new(MockMediaStore)
		uc := usecase.NewUserUsecase(userRepo, postRepo, store)

		user := &domain.User{ID: "u1", Email: "me@example.com", ProfilePictureURL: "/v1/media/pic1"}
		userRepo.On("GetByEmail", ctx, "me@example.com").Return(user, nil)
		postRepo.On("ListByOwner", ctx, "me@example.com").Return([]domain.Post{
			{ID: "p1", MediaURLs: []string{"/v1/media/m1"}},
			{ID: "p2", MediaURLs: []string{"/v1/media/m2", "/v1/media/m3"}},
		}, nil)
		postRepo.On("Delete", ctx, "p1").Return(nil)
		postRepo.On("Delete", ctx, "p2").Return(nil)
		store.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)
		userRepo.On("Delete", ctx, "u1").Return(nil)

		err := uc.DeleteAccount(ctx, "me@example.com")
		assert.NoError(t, err)
		postRepo.AssertNumberOfCalls(t, "Delete", 2)
		// Three post media objects plus the profile picture.
		store.AssertNumberOfCalls(t, "Delete", 4)
		userRepo.AssertCalled(t, "Delete", ctx, "u1")
	})

	t.Run("Should report 404 for an unknown account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockPostRepo), nil)

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		err := uc.DeleteAccount(ctx, "ghost@example.com")
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})
}
