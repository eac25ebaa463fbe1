package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetcard/vetcard-api/internal/api/metrics"
	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

// AuthService implements registration, login, token refresh and profile
// management.
type AuthService struct {
	repo   ports.AuthRepository
	codec  *tokens.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, codec *tokens.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Register creates a principal with a bcrypt password verifier and a default
// owner profile. The two inserts are made atomic by compensation: if the
// profile insert fails the just-created principal is deleted again.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisteredProfile, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	}
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.repo.CreateUser(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.CreateProfile(ctx, &domain.Profile{
		UserID: user.ID,
		Role:   domain.RoleOwner,
	})
	if err != nil {
		if delErr := s.repo.DeleteUser(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).
				Msg("failed to roll back principal after profile insert failure")
		}
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return &ports.RegisteredProfile{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      profile.Role,
	}, nil
}

// dummyVerifier is compared against when the username does not exist, so the
// unknown-user path costs the same bcrypt work as a wrong password and login
// latency does not reveal whether the account exists.
var dummyVerifier, _ = bcrypt.GenerateFromPassword([]byte("vetcard.dummy.verifier"), bcrypt.DefaultCost)

// Login verifies the credentials and issues an access+refresh pair. Unknown
// username and wrong password collapse into the same error so callers cannot
// probe for account existence.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyVerifier, []byte(password))
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrInactiveUser
	}

	access, refresh, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a fresh access+refresh pair.
// The principal's existence and active flag are NOT re-checked here: a
// deactivated account keeps minting access tokens until its refresh token
// expires. See DESIGN.md before changing this.
func (s *AuthService) Refresh(refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := s.codec.Verify(refreshToken)
	if !ok {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidToken
	}
	if claims.Kind != tokens.KindRefresh {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrWrongTokenKind
	}
	if _, err := primitive.ObjectIDFromHex(claims.Subject); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrMalformedSubject
	}

	access, refresh, err := s.codec.IssuePair(claims.Subject)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// GetProfile returns the caller's account fields joined with its profile.
func (s *AuthService) GetProfile(ctx context.Context, user *domain.User) (*ports.ProfileView, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Profile:  *profile,
	}, nil
}

// UpdateProfile overwrites the caller's mutable profile fields. Role,
// username and email are never updated through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, update *domain.Profile) (*ports.ProfileView, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	update.ID = profile.ID
	update.UserID = profile.UserID
	update.Role = profile.Role

	updated, err := s.repo.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	return &ports.ProfileView{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Profile:  *updated,
	}, nil
}
