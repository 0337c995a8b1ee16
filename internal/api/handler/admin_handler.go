package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// List returns every admin.
//
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Admin
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /api/admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// Create registers a new admin.
//
// @Summary      Create admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createAdminRequest  true  "New admin"
// @Success      201   {object}  messageResponse
// @Failure      403   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /api/admins [post]
func (h *AdminHandler) Create(c echo.Context, claims *domain.SessionClaims) error {
	var req createAdminRequest
	if err := bindAndValidate(c, &req, http.StatusUnprocessableEntity); err != nil {
		return err
	}

	admin, err := h.service.Create(c.Request().Context(), ports.CreateAdminInput{
		Username:        req.Username,
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		ActorID:         claims.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "admin created", ID: admin.ID})
}

// Get returns one admin.
//
// @Summary      Get admin
// @Tags         admins
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  domain.Admin
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admins/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	admin, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// Delete removes an admin.
//
// @Summary      Delete admin
// @Tags         admins
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admins/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "admin deleted"})
}

// UpdateSettings changes the caller's own username, name and email.
//
// @Summary      Update own settings
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                true  "Own admin id"
// @Param        body  body      adminSettingsRequest  true  "Profile"
// @Success      200   {object}  domain.Admin
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/admins/{id}/admin-settings [patch]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req adminSettingsRequest
	if err := bindAndValidate(c, &req, http.StatusBadRequest); err != nil {
		return err
	}

	admin, err := h.service.UpdateSettings(c.Request().Context(), c.Param("id"), ports.ProfileUpdate{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// UpdatePassword changes the caller's own password.
//
// @Summary      Update own password
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                 true  "Own admin id"
// @Param        body  body      updatePasswordRequest  true  "Passwords"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/admins/{id}/update-password [patch]
func (h *AdminHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req, http.StatusBadRequest); err != nil {
		return err
	}

	err := h.service.UpdatePassword(c.Request().Context(), c.Param("id"), ports.UpdatePasswordInput{
		CurrentPassword: req.PasswordCurrent,
		NewPassword:     req.NewPassword,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
