package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/metrics"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// ClientHandler serves /client: a client's users. Admins and the super admin
// act on behalf of a client by passing client_id.
type ClientHandler struct {
	users ports.UserService
}

func NewClientHandler(users ports.UserService) *ClientHandler {
	return &ClientHandler{users: users}
}

// ListUsers returns the users of the target client.
//
// @Summary      List client users
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Target client (admins only)"
// @Success      200        {object}  Response{data=[]domain.User}
// @Failure      404        {object}  Response
// @Router       /client/users [get]
func (h *ClientHandler) ListUsers(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListUsers(c.Request().Context(), p, c.QueryParam("client_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", users)
}

// CreateUser provisions an approved user under the target client.
//
// @Summary      Create client user
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  Response{data=domain.User}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /client/users [post]
func (h *ClientHandler) CreateUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), p, req.ClientID, input)
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.WithLabelValues(domain.KindUser.String()).Inc()

	return respond(c, http.StatusCreated, "User created successfully", user)
}

// UpdateUser changes a user of the target client.
//
// @Summary      Update client user
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string             true   "User ID"
// @Param        client_id  query     string             false  "Target client (admins only)"
// @Param        body       body      updateUserRequest  true   "Fields to change"
// @Success      200        {object}  Response{data=domain.User}
// @Failure      400        {object}  Response
// @Failure      404        {object}  Response
// @Router       /client/users/{id} [put]
func (h *ClientHandler) UpdateUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), p, c.QueryParam("client_id"), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser deactivates a user of the target client.
//
// @Summary      Deactivate client user
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "User ID"
// @Param        client_id  query     string  false  "Target client (admins only)"
// @Success      200        {object}  Response
// @Failure      404        {object}  Response
// @Router       /client/users/{id} [delete]
func (h *ClientHandler) DeleteUser(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.users.DeactivateUser(c.Request().Context(), p, c.QueryParam("client_id"), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deactivated successfully", nil)
}

// Overview returns the active user count of the target client.
//
// @Summary      Client dashboard
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Target client (admins only)"
// @Success      200        {object}  Response{data=ports.ClientOverview}
// @Router       /client/dashboard/overview [get]
func (h *ClientHandler) Overview(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	o, err := h.users.Overview(c.Request().Context(), p, c.QueryParam("client_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", o)
}
