package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/api/middleware"
	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.RegisteredProfile, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.TokenPair, error)
	refreshFn  func(refreshToken string) (*ports.TokenPair, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisteredProfile, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(refreshToken)
}

func (s *stubAuthService) GetProfile(_ context.Context, user *domain.User) (*ports.ProfileView, error) {
	return &ports.ProfileView{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Profile:  domain.Profile{UserID: user.ID, Role: domain.RoleOwner},
	}, nil
}

func (s *stubAuthService) UpdateProfile(_ context.Context, user *domain.User, update *domain.Profile) (*ports.ProfileView, error) {
	update.UserID = user.ID
	update.Role = domain.RoleOwner
	return &ports.ProfileView{UserID: user.ID, Username: user.Username, Profile: *update}, nil
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.RegisteredProfile, error) {
			if input.Username != "alice" || input.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.RegisteredProfile{
				UserID:   "u1",
				Username: input.Username,
				Email:    input.Email,
				Role:     domain.RoleOwner,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"a@example.com","password":"secret123","password_confirm":"secret123"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != float64(domain.RoleOwner) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_RejectsInvalidBody(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*ports.RegisteredProfile, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	})

	cases := []string{
		`{"username":"alice"}`,
		`{"username":"alice","email":"not-an-email","password":"secret123","password_confirm":"secret123"}`,
		`{"username":"alice","email":"a@example.com","password":"short","password_confirm":"short"}`,
	}
	for _, body := range cases {
		c, _ := newJSONContext(t, http.MethodPost, "/auth/register", body)
		err := handler.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_ReturnsPair(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.TokenPair, error) {
			if username != "bob" || password != "hunter22" {
				t.Fatalf("unexpected credentials: %s", username)
			}
			return &ports.TokenPair{Access: "acc", Refresh: "ref"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/token", `{"username":"bob","password":"hunter22"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var pair ports.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if pair.Access != "acc" || pair.Refresh != "ref" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestAuthHandler_Login_PropagatesServiceError(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/token", `{"username":"bob","password":"wrong"}`)
	if err := handler.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		refreshFn: func(refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "old-refresh" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &ports.TokenPair{Access: "new-acc", Refresh: "new-ref"}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/auth/token/refresh", `{"refresh":"old-refresh"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_GetProfile_RequiresAuth(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodGet, "/auth/profile", "")
	err := handler.GetProfile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %v", err)
	}
}

func TestAuthHandler_GetProfile(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/auth/profile", "")
	c.Set(middleware.CtxUser, &domain.User{ID: "u1", Username: "alice"})

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view["username"] != "alice" {
		t.Fatalf("unexpected view: %+v", view)
	}
}
