package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// AuthRepository defines the persistence interface for principals and their
// profiles.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	CreateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// RegisteredProfile is what a successful registration returns.
type RegisteredProfile struct {
	UserID    string `json:"id"`
	ProfileID string `json:"profile_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      domain.Role `json:"role"`
}

// TokenPair is an access+refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ProfileView joins the principal's account fields with its profile.
type ProfileView struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Profile  domain.Profile
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisteredProfile, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, user *domain.User) (*ProfileView, error)
	UpdateProfile(ctx context.Context, user *domain.User, update *domain.Profile) (*ProfileView, error)
}
