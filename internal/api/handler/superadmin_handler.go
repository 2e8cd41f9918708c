package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/api/metrics"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// SuperAdminHandler serves /super-admin: admin management and login approvals.
type SuperAdminHandler struct {
	admins    ports.AdminService
	approvals ports.ApprovalService
}

func NewSuperAdminHandler(admins ports.AdminService, approvals ports.ApprovalService) *SuperAdminHandler {
	return &SuperAdminHandler{admins: admins, approvals: approvals}
}

// ListAdmins returns every admin, newest first.
//
// @Summary      List admins
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]domain.Admin}
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Router       /super-admin/admins [get]
func (h *SuperAdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.admins.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", admins)
}

// CreateAdmin provisions an approved admin.
//
// @Summary      Create admin
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdminRequest  true  "Admin credentials"
// @Success      201   {object}  Response{data=domain.Admin}
// @Failure      400   {object}  Response
// @Router       /super-admin/admins [post]
func (h *SuperAdminHandler) CreateAdmin(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req createAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	admin, err := h.admins.CreateAdmin(c.Request().Context(), p, ports.CreateAdminInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	metrics.AccountsCreatedTotal.WithLabelValues(domain.KindAdmin.String()).Inc()

	return respond(c, http.StatusCreated, "Admin created successfully", admin)
}

// UpdateAdmin changes an admin's email or password.
//
// @Summary      Update admin
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Admin ID"
// @Param        body  body      updateAdminRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Admin}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /super-admin/admins/{id} [put]
func (h *SuperAdminHandler) UpdateAdmin(c echo.Context) error {
	var req updateAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	admin, err := h.admins.UpdateAdmin(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Admin updated successfully", admin)
}

// DeleteAdmin deactivates an admin. The record is kept.
//
// @Summary      Deactivate admin
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /super-admin/admins/{id} [delete]
func (h *SuperAdminHandler) DeleteAdmin(c echo.Context) error {
	if err := h.admins.DeactivateAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Admin deactivated successfully", nil)
}

// PendingApprovals lists admins and users waiting for login approval.
//
// @Summary      Pending approvals
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]pendingApproval}
// @Router       /super-admin/pending-approvals [get]
func (h *SuperAdminHandler) PendingApprovals(c echo.Context) error {
	pending, err := h.approvals.Pending(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]pendingApproval, len(pending))
	for i, p := range pending {
		out[i] = pendingApproval{Type: p.Type.String(), User: p.Account}
	}
	return respond(c, http.StatusOK, "", out)
}

// ApproveLogin moves an admin or user from pending to approved.
//
// @Summary      Approve login
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Account type"  Enums(admin, user)
// @Param        id    path      string  true  "Account ID"
// @Success      200   {object}  Response
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /super-admin/approve-login/{type}/{id} [post]
func (h *SuperAdminHandler) ApproveLogin(c echo.Context) error {
	account, err := h.approvals.Approve(c.Request().Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ApprovalsTotal.WithLabelValues("approve", c.Param("type")).Inc()
	return respond(c, http.StatusOK, "Login approved successfully", account)
}

// RejectLogin revokes an admin's or user's login approval.
//
// @Summary      Reject login
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Account type"  Enums(admin, user)
// @Param        id    path      string  true  "Account ID"
// @Success      200   {object}  Response
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /super-admin/reject-login/{type}/{id} [post]
func (h *SuperAdminHandler) RejectLogin(c echo.Context) error {
	account, err := h.approvals.Reject(c.Request().Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ApprovalsTotal.WithLabelValues("reject", c.Param("type")).Inc()
	return respond(c, http.StatusOK, "Login rejected successfully", account)
}

// Overview returns system-wide tallies.
//
// @Summary      Super admin dashboard
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=ports.SuperAdminOverview}
// @Router       /super-admin/dashboard/overview [get]
func (h *SuperAdminHandler) Overview(c echo.Context) error {
	o, err := h.admins.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", o)
}
