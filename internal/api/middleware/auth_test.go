package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

type stubAuthRepo struct {
	users    map[string]*domain.User
	profiles map[string]*domain.Profile
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
	}
}

func (r *stubAuthRepo) addUser(active bool, role domain.Role) *domain.User {
	u := &domain.User{
		ID:       primitive.NewObjectID().Hex(),
		Username: "user-" + primitive.NewObjectID().Hex()[:6],
		Active:   active,
	}
	r.users[u.ID] = u
	if role != 0 {
		r.profiles[u.ID] = &domain.Profile{UserID: u.ID, Role: role}
	}
	return u
}

func (r *stubAuthRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubAuthRepo) DeleteUser(_ context.Context, _ string) error { return nil }

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) CreateProfile(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	return p, nil
}

func (r *stubAuthRepo) FindProfileByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubAuthRepo) UpdateProfile(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	return p, nil
}

func testCodec() *tokens.Codec {
	return tokens.NewCodec("test-secret", time.Hour, 24*time.Hour)
}

func request(t *testing.T, e *echo.Echo, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	user := repo.addUser(true, domain.RoleVeterinarian)
	codec := testCodec()

	access, err := codec.Issue(user.ID, tokens.KindAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := request(t, e, "Bearer "+access)
	called := false
	handler := Auth(codec, repo)(func(c echo.Context) error {
		called = true
		got, ok := c.Get(CtxUser).(*domain.User)
		if !ok || got.ID != user.ID {
			t.Fatalf("user not injected: %+v", c.Get(CtxUser))
		}
		if role := c.Get(CtxRole); role != domain.RoleVeterinarian {
			t.Fatalf("role not injected: %v", role)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	mw := Auth(testCodec(), repo)

	for _, header := range []string{"", "Token abc", "Bearer"} {
		c, _ := request(t, e, header)
		err := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next for header %q", header)
			return nil
		})(c)

		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_RejectsRefreshToken(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	user := repo.addUser(true, domain.RoleOwner)
	codec := testCodec()

	refresh, err := codec.Issue(user.ID, tokens.KindRefresh)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+refresh)
	err = Auth(codec, repo)(func(c echo.Context) error {
		t.Fatalf("refresh token must not authenticate")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RejectsBadSubject(t *testing.T) {
	e := echo.New()
	codec := testCodec()

	access, err := codec.Issue("not-an-object-id", tokens.KindAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+access)
	err = Auth(codec, newStubAuthRepo())(func(c echo.Context) error {
		t.Fatalf("bad subject must not authenticate")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RejectsUnknownPrincipal(t *testing.T) {
	e := echo.New()
	codec := testCodec()

	access, err := codec.Issue(primitive.NewObjectID().Hex(), tokens.KindAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+access)
	err = Auth(codec, newStubAuthRepo())(func(c echo.Context) error {
		t.Fatalf("unknown principal must not authenticate")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RejectsInactive(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	user := repo.addUser(false, domain.RoleOwner)
	codec := testCodec()

	access, err := codec.Issue(user.ID, tokens.KindAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+access)
	err = Auth(codec, repo)(func(c echo.Context) error {
		t.Fatalf("inactive principal must not authenticate")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestAuth_DefaultsToOwnerWithoutProfile(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	user := repo.addUser(true, 0)
	codec := testCodec()

	access, err := codec.Issue(user.ID, tokens.KindAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+access)
	err = Auth(codec, repo)(func(c echo.Context) error {
		if role := c.Get(CtxRole); role != domain.RoleOwner {
			t.Fatalf("expected owner fallback, got %v", role)
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_RejectsExpiredToken(t *testing.T) {
	e := echo.New()
	repo := newStubAuthRepo()
	user := repo.addUser(true, domain.RoleOwner)
	codec := testCodec()

	expired, err := codec.IssueWithTTL(user.ID, tokens.KindAccess, -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request(t, e, "Bearer "+expired)
	err = Auth(codec, repo)(func(c echo.Context) error {
		t.Fatalf("expired token must not authenticate")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
