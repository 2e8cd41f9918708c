package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// ProfileHandler serves /users/profile for the signed-in user.
type ProfileHandler struct {
	users ports.UserService
}

func NewProfileHandler(users ports.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get returns the caller's own user record.
//
// @Summary      Get profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=domain.User}
// @Failure      401  {object}  Response
// @Router       /users/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user)
}

// Update changes the caller's email, password or profile fields.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.User}
// @Failure      400   {object}  Response
// @Router       /users/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
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

	user, err := h.users.UpdateProfile(c.Request().Context(), p, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}
