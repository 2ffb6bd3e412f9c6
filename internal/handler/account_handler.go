package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/social-media-service/internal/command"
	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/middleware"
	"github.com/chirpnet/social-media-service/internal/models"
	"github.com/chirpnet/social-media-service/internal/query"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	RegisterAccount(context.Context, cqrs.RegisterAccountCommand) (*models.Account, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	Login(context.Context, cqrs.LoginQuery) (*models.Account, error)
}

// AccountHandler handles registration and login.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// Register responds 200 with the stored account, 400 on invalid input and
// 409 when the username is already taken.
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.RegisterAccount(c.Request.Context(), cqrs.RegisterAccountCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrUsernameTaken) {
			middleware.RespondWithError(c, http.StatusConflict, "Username already taken")
			return
		}
		if errors.Is(err, command.ErrInvalidAccount) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid username or password")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// Login responds 200 with the stored account, 400 on missing fields and 401
// when no account matches the credentials.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.queries.Login(c.Request.Context(), cqrs.LoginQuery{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, query.ErrMissingCredentials) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Username and password are required")
			return
		}
		if errors.Is(err, query.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, account)
}
