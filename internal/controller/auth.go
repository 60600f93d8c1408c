package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/service"
)

type AuthController struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService service.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate serves both registration and login, dispatched on the
// body's action field. Anything other than "register" is treated as a
// login, matching the hosted endpoint.
func (c *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Action   string `json:"action"`
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		renderError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	var (
		user *model.User
		err  error
	)
	if request.Action == "register" {
		user, err = c.authService.Register(r.Context(), request.Username, request.Password, request.FullName)
	} else {
		user, err = c.authService.Login(r.Context(), request.Username, request.Password)
	}

	if err != nil {
		c.logger.Warn("Authentication failed",
			zap.String("action", request.Action),
			zap.String("username", request.Username),
			zap.Error(err))

		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			renderError(w, r, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists),
			errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrInvalidPassword),
			errors.Is(err, service.ErrMissingFullName):
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			renderError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.logger.Info("User authenticated",
		zap.String("action", request.Action),
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	render.JSON(w, r, map[string]any{
		"success": true,
		"user":    newUserPayload(user),
	})
}
