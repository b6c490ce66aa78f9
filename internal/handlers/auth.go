package handlers

import (
	"errors"
	"net/http"

	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both registration and login.
type authCredentials struct {
	Email    string `json:"email" binding:"required" example:"grower@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

const (
	msgUserCreated        = "User created successfully"
	errEmailTaken         = "User with this email already exists."
	errInvalidEmail       = "Enter a valid email address."
	errWeakPassword       = "Ensure this field has at least 8 characters."
	errInvalidCredentials = "Invalid email or password."
)

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register/ [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	_, err := h.services.SignUp(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		msg := ""
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			msg = errEmailTaken
		case errors.Is(err, service.ErrInvalidEmail):
			msg = errInvalidEmail
		case errors.Is(err, service.ErrWeakPassword):
			msg = errWeakPassword
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_register_failed", err, "email", input.Email)
			return
		}
		if h.log != nil {
			h.log.Infow("auth_register_rejected", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgUserCreated})
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login/ [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_login_failed", err, "email", input.Email)
			return
		}
		if h.log != nil {
			h.log.Infow("auth_login_rejected", "email", input.Email)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
