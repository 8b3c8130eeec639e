package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Login godoc
// @Summary      Sign in to the back office
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  LoginRequest  true  "Credentials"
// @Router       /auth/login [post]
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Wrong username or password", nil, nil)
			return
		}
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (c *Controller) Logout(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return
	}

	if err := c.service.Logout(ctx.Request.Context(), s.ID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Logout successful", nil)
}

// Forgot godoc
// @Summary      Reset a forgotten password
// @Description  A new random password is e-mailed to the address.
// @Tags         auth
// @Accept       json
// @Param        request  body  ForgotRequest  true  "Account e-mail"
// @Router       /auth/forgot [post]
func (c *Controller) Forgot(ctx *gin.Context) {
	var req ForgotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.Forgot(ctx.Request.Context(), req); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "A new password has been sent to your e-mail", nil)
}

// CheckExistEmail godoc
// @Summary      Whether an account uses the e-mail
// @Tags         auth
// @Produce      json
// @Param        email  path  string  true  "E-mail"
// @Router       /auth/checkExistEmail/{email} [get]
func (c *Controller) CheckExistEmail(ctx *gin.Context) {
	exists, err := c.service.CheckExistEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Email check completed", exists)
}

// ChangePassword godoc
// @Summary      Change the password of the signed-in user
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        request  body  ChangePasswordRequest  true  "Passwords"
// @Router       /auth/changePassword [put]
func (c *Controller) ChangePassword(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), s, req); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Password changed successfully", nil)
}

// GetMe godoc
// @Summary      The current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Router       /auth/me [get]
func (c *Controller) GetMe(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return
	}

	response.RespondOK(ctx, "User retrieved successfully", newMeResponse(s))
}
