package usecase

import (
	"context"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"go-cookmate-backend/pkg/logger"
	"go-cookmate-backend/pkg/media"
	"strings"
	"time"
)

// mediaKeyFromRef extracts the object-store key from a media reference.
// External URLs (OAuth avatars and the like) are not ours to delete and
// return "".
func mediaKeyFromRef(ref string) string {
	if key, ok := strings.CutPrefix(ref, "/v1/media/"); ok {
		return key
	}
	if ref == "" || strings.Contains(ref, "://") {
		return ""
	}
	return ref
}

type userUsecase struct {
	userRepo   domain.UserRepository
	postRepo   domain.PostRepository
	mediaStore media.Store
}

func NewUserUsecase(userRepo domain.UserRepository, postRepo domain.PostRepository, mediaStore media.Store) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, postRepo: postRepo, mediaStore: mediaStore}
}

func (u *userUsecase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *userUsecase) ListAll(ctx context.Context) ([]domain.User, error) {
	return u.userRepo.ListAll(ctx)
}

func (u *userUsecase) SearchByName(ctx context.Context, term string) ([]domain.User, error) {
	return u.userRepo.SearchByName(ctx, term)
}

// UpdateProfile merges the patch into the stored record. Name and picture
// are applied only when non-empty; bio, location and cuisines overwrite the
// stored values. A new picture reference releases the previous object first.
func (u *userUsecase) UpdateProfile(ctx context.Context, email string, patch *domain.ProfilePatch) (*domain.User, error) {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	newPicture := strings.TrimSpace(patch.ProfilePictureURL)
	if newPicture != "" && newPicture != user.ProfilePictureURL {
		u.releaseMedia(ctx, user.ProfilePictureURL)
		user.ProfilePictureURL = newPicture
	}
	if strings.TrimSpace(patch.Name) != "" {
		user.Name = patch.Name
	}
	user.Bio = patch.Bio
	user.Location = patch.Location
	user.FavoriteCuisines = patch.FavoriteCuisines
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount cascades: every owned post is removed along with its media
// before the user record itself goes, so no post is left referencing a
// deleted owner.
func (u *userUsecase) DeleteAccount(ctx context.Context, email string) error {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	posts, err := u.postRepo.ListByOwner(ctx, email)
	if err != nil {
		return err
	}
	for i := range posts {
		for _, ref := range posts[i].MediaURLs {
			u.releaseMedia(ctx, ref)
		}
		if err := u.postRepo.Delete(ctx, posts[i].ID); err != nil {
			return err
		}
	}

	u.releaseMedia(ctx, user.ProfilePictureURL)
	return u.userRepo.Delete(ctx, user.ID)
}

func (u *userUsecase) releaseMedia(ctx context.Context, ref string) {
	key := mediaKeyFromRef(ref)
	if key == "" || u.mediaStore == nil {
		return
	}
	if err := u.mediaStore.Delete(ctx, key); err != nil {
		logger.Log.Warn("failed to release media object", "key", key, "error", err)
	}
}

func (u *userUsecase) Follow(ctx context.Context, currentEmail, targetID string) (*domain.User, error) {
	current, err := u.GetByEmail(ctx, currentEmail)
	if err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFound("Target user not found")
	}
	if current.ID == targetID {
		return nil, apperror.BadRequest("You cannot follow yourself")
	}

	// Already following: no-op, return current state.
	for _, id := range current.Following {
		if id == targetID {
			return current, nil
		}
	}

	if err := u.userRepo.AddFollow(ctx, current.ID, targetID); err != nil {
		return nil, err
	}
	return u.GetByEmail(ctx, currentEmail)
}

func (u *userUsecase) Unfollow(ctx context.Context, currentEmail, targetID string) (*domain.User, error) {
	current, err := u.GetByEmail(ctx, currentEmail)
	if err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFound("Target user not found")
	}

	following := false
	for _, id := range current.Following {
		if id == targetID {
			following = true
			break
		}
	}
	if !following {
		return current, nil
	}

	if err := u.userRepo.RemoveFollow(ctx, current.ID, targetID); err != nil {
		return nil, err
	}
	return u.GetByEmail(ctx, currentEmail)
}

func (u *userUsecase) IsFollowing(ctx context.Context, currentEmail, targetID string) (bool, error) {
	current, err := u.userRepo.GetByEmail(ctx, currentEmail)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	for _, id := range current.Following {
		if id == targetID {
			return true, nil
		}
	}
	return false, nil
}
