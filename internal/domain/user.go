package domain

import (
	"context"
	"time"
)

type User struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	GoogleID          string    `bson:"google_id,omitempty" json:"google_id,omitempty"`
	Email             string    `bson:"email" json:"email"`
	PasswordHash      string    `bson:"password_hash,omitempty" json:"-"`
	Name              string    `bson:"name" json:"name"`
	ProfilePictureURL string    `bson:"profile_picture_url,omitempty" json:"profile_picture_url,omitempty"`
	Bio               string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Location          string    `bson:"location,omitempty" json:"location,omitempty"`
	FavoriteCuisines  []string  `bson:"favorite_cuisines,omitempty" json:"favorite_cuisines,omitempty"`
	Followers         []string  `bson:"followers" json:"followers"`
	Following         []string  `bson:"following" json:"following"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfilePatch carries the editable profile fields. Name and picture are
// merged only when non-empty; the rest overwrite the stored values whenever
// the client sends them.
type ProfilePatch struct {
	Name              string   `json:"name"`
	ProfilePictureURL string   `json:"profile_picture_url"`
	Bio               string   `json:"bio"`
	Location          string   `json:"location"`
	FavoriteCuisines  []string `json:"favorite_cuisines"`
}

// ExternalIdentity is the profile a trusted OAuth provider hands back
// after verifying the user.
type ExternalIdentity struct {
	ExternalID string `json:"external_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, term string) ([]User, error)
	ListAll(ctx context.Context) ([]User, error)
	// AddFollow and RemoveFollow update both sides of the relationship
	// (following on the follower, followers on the target) in a single
	// transaction so a crash cannot leave a one-directional edge.
	AddFollow(ctx context.Context, followerID, targetID string) error
	RemoveFollow(ctx context.Context, followerID, targetID string) error
}

type UserUsecase interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	SearchByName(ctx context.Context, term string) ([]User, error)
	UpdateProfile(ctx context.Context, email string, patch *ProfilePatch) (*User, error)
	DeleteAccount(ctx context.Context, email string) error
	Follow(ctx context.Context, currentEmail, targetID string) (*User, error)
	Unfollow(ctx context.Context, currentEmail, targetID string) (*User, error)
	IsFollowing(ctx context.Context, currentEmail, targetID string) (bool, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (string, error)
	OAuthLogin(ctx context.Context, identity *ExternalIdentity) (string, error)
}
