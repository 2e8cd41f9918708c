package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/metrics"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SuperAdminLogin authenticates the super admin.
//
// @Summary      Super admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Router       /auth/super-admin/login [post]
func (h *AuthHandler) SuperAdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleSuperAdmin)
}

// AdminLogin authenticates an admin.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Failure      403   {object}  Response
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin)
}

// ClientLogin authenticates a client.
//
// @Summary      Client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Router       /auth/client/login [post]
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	return h.login(c, domain.RoleClient)
}

// UserLogin authenticates a user.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Failure      403   {object}  Response
// @Router       /auth/user/login [post]
func (h *AuthHandler) UserLogin(c echo.Context) error {
	return h.login(c, domain.RoleUser)
}

func (h *AuthHandler) login(c echo.Context, role domain.Role) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), role, req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(string(role), loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", loginResponse{Token: res.Token, User: res.Account})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrLoginInactive):
		return "inactive"
	case errors.Is(err, domain.ErrLoginNotApproved):
		return "not_approved"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	}
	return "error"
}

// RegisterUser self-registers a user. The account waits for approval.
//
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User registration details"
// @Success      201   {object}  Response{data=domain.User}
// @Failure      400   {object}  Response
// @Router       /auth/user/register [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	user, err := h.authService.RegisterUser(c.Request().Context(), input)
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.WithLabelValues(domain.KindUser.String()).Inc()

	return respond(c, http.StatusCreated, "User registered successfully, awaiting approval", user)
}

// RegisterClient self-registers a client.
//
// @Summary      Register a client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createClientRequest  true  "Client registration details"
// @Success      201   {object}  Response{data=domain.Client}
// @Failure      400   {object}  Response
// @Router       /auth/client/register [post]
func (h *AuthHandler) RegisterClient(c echo.Context) error {
	var req createClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.authService.RegisterClient(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.WithLabelValues(domain.KindClient.String()).Inc()

	return respond(c, http.StatusCreated, "Client registered successfully", client)
}

// Me returns the authenticated account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  Response{data=meResponse}
// @Failure      401   {object}  Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", meResponse{Role: p.Role, User: p.Account})
}
