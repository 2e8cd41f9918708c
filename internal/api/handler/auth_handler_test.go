package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/middleware"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(role domain.Role, email, password string) (*ports.LoginResult, error)
	registered *ports.CreateUserInput
}

func (s *stubAuthService) Login(_ context.Context, role domain.Role, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(role, email, password)
}

func (s *stubAuthService) RegisterUser(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	s.registered = &input
	return &domain.User{ID: "u1", Email: input.Email, Profile: input.Profile, IsActive: true}, nil
}

func (s *stubAuthService) RegisterClient(_ context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	return &domain.Client{ID: "c1", Email: input.Email, BusinessName: input.Info.BusinessName, IsActive: true, LoginApproved: true}, nil
}

func newJSONContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestAuthHandler_LoginPassesRole(t *testing.T) {
	var gotRole domain.Role
	svc := &stubAuthService{loginFn: func(role domain.Role, email, password string) (*ports.LoginResult, error) {
		gotRole = role
		if email != "a@x.com" || password != "secret1" {
			t.Fatalf("unexpected credentials %q/%q", email, password)
		}
		return &ports.LoginResult{Token: "tok", Account: &domain.Admin{ID: "a1", Email: email, Role: domain.RoleAdmin, PasswordHash: "hash"}}, nil
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, `{"email":"a@x.com","password":"secret1"}`)
	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if gotRole != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", gotRole)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	data := body["data"].(map[string]any)
	if data["token"] != "tok" {
		t.Fatalf("expected token in data, got %v", data)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_LoginErrorPropagates(t *testing.T) {
	svc := &stubAuthService{loginFn: func(domain.Role, string, string) (*ports.LoginResult, error) {
		return nil, domain.ErrLoginNotApproved
	}}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(http.MethodPost, `{"email":"u@x.com","password":"secret1"}`)
	if err := h.UserLogin(c); !errors.Is(err, domain.ErrLoginNotApproved) {
		t.Fatalf("expected not approved, got %v", err)
	}
}

func TestAuthHandler_LoginMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginFn: func(domain.Role, string, string) (*ports.LoginResult, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}})

	c, _ := newJSONContext(http.MethodPost, `{"email":`)
	if err := h.ClientLogin(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginResult(t *testing.T) {
	cases := map[error]string{
		nil:                           "success",
		domain.ErrInvalidCredentials:  "invalid_credentials",
		domain.ErrLoginInactive:       "inactive",
		domain.ErrLoginNotApproved:    "not_approved",
		domain.ErrCredentialsRequired: "invalid_request",
		errors.New("db down"):         "error",
	}
	for err, want := range cases {
		if got := loginResult(err); got != want {
			t.Fatalf("loginResult(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestAuthHandler_RegisterUser(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, `{
		"email": "u@x.com",
		"password": "secret1",
		"profile": {"name": "Asha", "dob": "1990-04-21", "profession": "student"}
	}`)
	if err := h.RegisterUser(c); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered == nil || svc.registered.Profile.DOB == nil {
		t.Fatalf("profile not forwarded: %+v", svc.registered)
	}
	if got := svc.registered.Profile.DOB.Format(dobLayout); got != "1990-04-21" {
		t.Fatalf("dob = %s", got)
	}
	if svc.registered.Profile.Profession != domain.ProfessionStudent {
		t.Fatalf("profession = %q", svc.registered.Profile.Profession)
	}
}

func TestAuthHandler_RegisterUserValidation(t *testing.T) {
	cases := map[string]string{
		"bad email":      `{"email":"nope","password":"secret1"}`,
		"short password": `{"email":"u@x.com","password":"123"}`,
		"long password":  `{"email":"u@x.com","password":"` + strings.Repeat("a", 73) + `"}`,
		"bad profession": `{"email":"u@x.com","password":"secret1","profile":{"profession":"astronaut"}}`,
		"bad dob":        `{"email":"u@x.com","password":"secret1","profile":{"dob":"21/04/1990"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubAuthService{}
			c, _ := newJSONContext(http.MethodPost, body)
			if err := NewAuthHandler(svc).RegisterUser(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if svc.registered != nil {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestAuthHandler_RegisterClient(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newJSONContext(http.MethodPost, `{"email":"shop@x.com","password":"secret1","business_name":"Shop"}`)
	if err := h.RegisterClient(c); err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	data := decode(t, rec)["data"].(map[string]any)
	if data["business_name"] != "Shop" || data["login_approved"] != true {
		t.Fatalf("unexpected client payload: %v", data)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "")
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated without principal, got %v", err)
	}

	c, rec := newJSONContext(http.MethodGet, "")
	c.Set(middleware.PrincipalKey, &domain.Principal{
		ID:      "c1",
		Role:    domain.RoleClient,
		Account: &domain.Client{ID: "c1", Email: "c@x.com", IsActive: true},
	})
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	data := decode(t, rec)["data"].(map[string]any)
	if data["role"] != "client" {
		t.Fatalf("expected role client, got %v", data["role"])
	}
	if user := data["user"].(map[string]any); user["email"] != "c@x.com" {
		t.Fatalf("unexpected user: %v", user)
	}
}
