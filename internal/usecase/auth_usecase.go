package usecase

import (
	"context"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"go-cookmate-backend/pkg/auth"
	"strings"
	"time"
)

const defaultAvatarURL = "https://via.placeholder.com/150"

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Email and password are required")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	// OAuth-only accounts have no password hash and cannot log in locally.
	if user == nil || user.PasswordHash == "" {
		return "", apperror.Unauthorized("Invalid email or password")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", apperror.Unauthorized("Invalid email or password")
	}

	return u.tokens.Issue(user.Email)
}

// OAuthLogin resolves a verified external identity to a local account:
// match by external id, else link by email (migrating a local account to
// federated login), else create a fresh user. Display name and avatar are
// refreshed from the provider on every login.
func (u *authUsecase) OAuthLogin(ctx context.Context, identity *domain.ExternalIdentity) (string, error) {
	avatar := identity.AvatarURL
	if strings.TrimSpace(avatar) == "" {
		avatar = defaultAvatarURL
	}

	user, err := u.userRepo.GetByGoogleID(ctx, identity.ExternalID)
	if err != nil {
		return "", err
	}

	if user == nil {
		user, err = u.userRepo.GetByEmail(ctx, identity.Email)
		if err != nil {
			return "", err
		}
		if user != nil {
			user.GoogleID = identity.ExternalID
			user.Name = identity.Name
			user.ProfilePictureURL = avatar
			user.UpdatedAt = time.Now()
			if err := u.userRepo.Update(ctx, user); err != nil {
				return "", err
			}
		} else {
			user = &domain.User{
				GoogleID:          identity.ExternalID,
				Email:             identity.Email,
				Name:              identity.Name,
				ProfilePictureURL: avatar,
				CreatedAt:         time.Now(),
				UpdatedAt:         time.Now(),
			}
			if err := u.userRepo.Create(ctx, user); err != nil {
				return "", err
			}
		}
	} else {
		user.Name = identity.Name
		user.ProfilePictureURL = avatar
		user.UpdatedAt = time.Now()
		if err := u.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
	}

	return u.tokens.Issue(user.Email)
}
