package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/metrics"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// AdminHandler serves /admin: an admin's clients and the users under them.
// A super admin reaches every client through the same routes.
type AdminHandler struct {
	clients ports.ClientService
}

func NewAdminHandler(clients ports.ClientService) *AdminHandler {
	return &AdminHandler{clients: clients}
}

// ListClients returns the clients in the caller's scope.
//
// @Summary      List clients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.Client}
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Router       /admin/clients [get]
func (h *AdminHandler) ListClients(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	clients, err := h.clients.ListClients(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", clients)
}

// CreateClient provisions a client owned by the caller.
//
// @Summary      Create client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  Response{data=domain.Client}
// @Failure      400   {object}  Response
// @Router       /admin/clients [post]
func (h *AdminHandler) CreateClient(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.clients.CreateClient(c.Request().Context(), p, req.toInput())
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.WithLabelValues(domain.KindClient.String()).Inc()

	return respond(c, http.StatusCreated, "Client created successfully", client)
}

// UpdateClient changes a client in the caller's scope.
//
// @Summary      Update client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client ID"
// @Param        body  body      updateClientRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Client}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /admin/clients/{id} [put]
func (h *AdminHandler) UpdateClient(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req updateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.clients.UpdateClient(c.Request().Context(), p, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Client updated successfully", client)
}

// DeleteClient deactivates a client in the caller's scope.
//
// @Summary      Deactivate client
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /admin/clients/{id} [delete]
func (h *AdminHandler) DeleteClient(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.clients.DeactivateClient(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Client deactivated successfully", nil)
}

// ListUsers returns the users belonging to the caller's clients.
//
// @Summary      List users under my clients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.User}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.clients.ListUsers(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", users)
}

// Overview returns client and user tallies within the caller's scope.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=ports.AdminOverview}
// @Router       /admin/dashboard/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	o, err := h.clients.Overview(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", o)
}
