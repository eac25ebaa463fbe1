package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

type stubAuthRepo struct {
	users    map[string]*domain.User
	profiles map[string]*domain.Profile

	failProfileInsert bool
	deletedUsers      []string
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = primitive.NewObjectID().Hex()
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubAuthRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.deletedUsers = append(r.deletedUsers, id)
	return nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) CreateProfile(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if r.failProfileInsert {
		return nil, errors.New("profile insert failed")
	}
	clone := *profile
	if clone.ID == "" {
		clone.ID = primitive.NewObjectID().Hex()
	}
	r.profiles[clone.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAuthRepo) FindProfileByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubAuthRepo) UpdateProfile(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if _, ok := r.profiles[profile.UserID]; !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	out := clone
	return &out, nil
}

func newTestAuthService(repo ports.AuthRepository) *AuthService {
	codec := tokens.NewCodec("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, codec, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "pass12345",
		PasswordConfirm: "pass12345",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if registered.Role != domain.RoleOwner {
		t.Fatalf("expected owner role, got %v", registered.Role)
	}

	user := repo.users[registered.UserID]
	if user == nil {
		t.Fatalf("user not persisted")
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.Active {
		t.Fatalf("expected new user to be active")
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "pass12345",
		PasswordConfirm: "different",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	input := ports.RegisterInput{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "pass12345",
		PasswordConfirm: "pass12345",
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	input.Username = "bob2"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists on duplicate email, got %v", err)
	}
}

func TestAuthService_Register_RollsBackOnProfileFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.failProfileInsert = true
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        "carol",
		Email:           "carol@example.com",
		Password:        "pass12345",
		PasswordConfirm: "pass12345",
	})
	if err == nil {
		t.Fatalf("expected error when profile insert fails")
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected principal to be rolled back, %d users remain", len(repo.users))
	}
	if len(repo.deletedUsers) != 1 {
		t.Fatalf("expected one compensating delete, got %d", len(repo.deletedUsers))
	}
}

func registerUser(t *testing.T, svc *AuthService, username, password string) string {
	t.Helper()
	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        password,
		PasswordConfirm: password,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	return registered.UserID
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	registerUser(t, svc, "carol", "s3cret123")

	pair, err := svc.Login(context.Background(), "carol", "s3cret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.Access == pair.Refresh {
		t.Fatalf("access and refresh tokens must differ")
	}
}

func TestAuthService_Login_CollapsesFailures(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	registerUser(t, svc, "dave", "s3cret123")

	_, unknownErr := svc.Login(context.Background(), "nobody", "s3cret123")
	_, wrongPassErr := svc.Login(context.Background(), "dave", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr != wrongPassErr {
		t.Fatalf("failure causes must be indistinguishable: %v vs %v", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_UnknownUserRunsVerifier(t *testing.T) {
	// The unknown-user branch compares against dummyVerifier so it costs the
	// same bcrypt work as a wrong password. A malformed verifier would make
	// that compare return immediately, reopening the timing side channel.
	cost, err := bcrypt.Cost(dummyVerifier)
	if err != nil {
		t.Fatalf("dummy verifier is malformed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("dummy verifier cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	id := registerUser(t, svc, "erin", "s3cret123")
	repo.users[id].Active = false

	if _, err := svc.Login(context.Background(), "erin", "s3cret123"); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthService_Refresh_RoundTrip(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	registerUser(t, svc, "frank", "s3cret123")

	pair, err := svc.Login(context.Background(), "frank", "s3cret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	fresh, err := svc.Refresh(pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.Access == "" || fresh.Refresh == "" {
		t.Fatalf("expected a fresh pair, got %+v", fresh)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	registerUser(t, svc, "grace", "s3cret123")

	pair, err := svc.Login(context.Background(), "grace", "s3cret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(pair.Access); !errors.Is(err, domain.ErrWrongTokenKind) {
		t.Fatalf("expected ErrWrongTokenKind, got %v", err)
	}
}

func TestAuthService_Refresh_RejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Refresh(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("raw %q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestAuthService_Refresh_RejectsMalformedSubject(t *testing.T) {
	codec := tokens.NewCodec("test-secret", time.Hour, 24*time.Hour)
	svc := NewAuthService(newStubAuthRepo(), codec, zerolog.Nop())

	refresh, err := codec.Issue("not-an-object-id", tokens.KindRefresh)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Refresh(refresh); !errors.Is(err, domain.ErrMalformedSubject) {
		t.Fatalf("expected ErrMalformedSubject, got %v", err)
	}
}

// A deactivated account keeps refreshing until its refresh token expires.
// The gate rejects its access tokens, so deactivation still locks the API.
func TestAuthService_Refresh_DoesNotRecheckActive(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	id := registerUser(t, svc, "heidi", "s3cret123")

	pair, err := svc.Login(context.Background(), "heidi", "s3cret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	repo.users[id].Active = false

	if _, err := svc.Refresh(pair.Refresh); err != nil {
		t.Fatalf("refresh after deactivation should still succeed, got %v", err)
	}
}

func TestAuthService_UpdateProfile_PreservesIdentity(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)
	id := registerUser(t, svc, "ivan", "s3cret123")

	user := repo.users[id]
	view, err := svc.UpdateProfile(context.Background(), user, &domain.Profile{
		Role:      domain.RoleAdmin, // must be ignored
		FirstName: "Ivan",
		City:      "Riga",
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if view.Profile.Role != domain.RoleOwner {
		t.Fatalf("role must not be updatable, got %v", view.Profile.Role)
	}
	if view.Profile.UserID != id {
		t.Fatalf("user id changed: %s", view.Profile.UserID)
	}
	if view.Profile.FirstName != "Ivan" || view.Profile.City != "Riga" {
		t.Fatalf("mutable fields not applied: %+v", view.Profile)
	}
}
