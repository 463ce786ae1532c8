package handlers

import (
	"net/http"
	"strconv"

	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	flags       flags.Store
	hub         *ws.Hub
}

func NewAuthHandler(authService *services.AuthService, store flags.Store, hub *ws.Hub) *AuthHandler {
	return &AuthHandler{authService: authService, flags: store, hub: hub}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"admin"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

type ToggleRequest struct {
	Status *bool `json:"status" binding:"required" example:"true"`
}

type PhotosFlagResponse struct {
	AllowPhotos bool `json:"allow_photos"`
}

type QuizFlagResponse struct {
	AllowQuiz bool `json:"allow_quiz"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchange the admin credentials (form or JSON) for a bearer token
// @Tags         admin
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// TogglePhotos godoc
// @Summary      Enable or disable photo uploads
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query bool false "New value (or JSON body {\"status\": bool})"
// @Success      200 {object} PhotosFlagResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/toggle_photos [post]
func (h *AuthHandler) TogglePhotos(c *gin.Context) {
	value, ok := h.toggle(c, flags.Photos)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PhotosFlagResponse{AllowPhotos: value})
}

// ToggleQuiz godoc
// @Summary      Show or hide the quiz
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query bool false "New value (or JSON body {\"status\": bool})"
// @Success      200 {object} QuizFlagResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/toggle_quiz [post]
func (h *AuthHandler) ToggleQuiz(c *gin.Context) {
	value, ok := h.toggle(c, flags.Quiz)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, QuizFlagResponse{AllowQuiz: value})
}

// GetSettings godoc
// @Summary      Current feature flags
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} flags.Snapshot
// @Router       /admin/settings [get]
func (h *AuthHandler) GetSettings(c *gin.Context) {
	snap, err := flags.Read(c.Request.Context(), h.flags)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *AuthHandler) toggle(c *gin.Context, f flags.Flag) (bool, bool) {
	value, err := toggleValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false, false
	}

	ctx := c.Request.Context()
	if err := h.flags.Set(ctx, f, value); err != nil {
		writeError(c, err)
		return false, false
	}

	if snap, err := flags.Read(ctx, h.flags); err == nil {
		h.hub.Broadcast(ws.WSMessage{Type: ws.EventFlagsChanged, Data: snap})
	}
	return value, true
}

// toggleValue reads ?status= first, then a JSON body.
func toggleValue(c *gin.Context) (bool, error) {
	if raw, ok := c.GetQuery("status"); ok {
		return strconv.ParseBool(raw)
	}
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return false, err
	}
	return *req.Status, nil
}
