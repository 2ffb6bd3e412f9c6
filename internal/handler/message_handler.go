package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chirpnet/social-media-service/internal/command"
	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/middleware"
	"github.com/chirpnet/social-media-service/internal/models"
)

// MessageCommander defines the write-side operations used by MessageHandler.
type MessageCommander interface {
	CreateMessage(context.Context, cqrs.CreateMessageCommand) (*models.Message, error)
	UpdateMessageText(context.Context, cqrs.UpdateMessageTextCommand) error
	DeleteMessage(context.Context, cqrs.DeleteMessageCommand) (bool, error)
}

// MessageQuerier defines the read-side operations used by MessageHandler.
type MessageQuerier interface {
	GetAllMessages(context.Context) ([]models.Message, error)
	GetMessageByID(context.Context, cqrs.GetMessageQuery) (*models.Message, error)
	GetMessagesByAccountID(context.Context, cqrs.ListMessagesByAccountQuery) ([]models.Message, error)
}

// MessageHandler handles the message CRUD endpoints.
type MessageHandler struct {
	commands MessageCommander
	queries  MessageQuerier
}

type CreateMessageRequest struct {
	PostedBy    *int   `json:"postedBy" validate:"required"`
	MessageText string `json:"messageText"`
	MessageTime int64  `json:"messageTime"`
}

type UpdateMessageTextRequest struct {
	MessageText string `json:"messageText"`
}

func NewMessageHandler(commands MessageCommander, queries MessageQuerier) *MessageHandler {
	return &MessageHandler{commands: commands, queries: queries}
}

// CreateMessage responds 200 with the stored message, or 400 when the text
// or the poster fails validation.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	message, err := h.commands.CreateMessage(c.Request.Context(), cqrs.CreateMessageCommand{
		PostedBy:    req.PostedBy,
		MessageText: req.MessageText,
		MessageTime: req.MessageTime,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidMessage) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create message")
		return
	}

	c.JSON(http.StatusOK, message)
}

// GetAllMessages responds 200 with every stored message.
func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	messages, err := h.queries.GetAllMessages(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetMessageByID responds 200 with the message, or 200 with an empty body
// when it does not exist. Absence is not a 404 in this contract.
func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	message, err := h.queries.GetMessageByID(c.Request.Context(), cqrs.GetMessageQuery{MessageID: messageID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get message")
		return
	}
	if message == nil {
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, message)
}

// UpdateMessageText responds 200 with the literal "1" on success. Failures
// are 400 with the exact plain-text bodies callers depend on.
func (h *MessageHandler) UpdateMessageText(c *gin.Context) {
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	var req UpdateMessageTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.commands.UpdateMessageText(c.Request.Context(), cqrs.UpdateMessageTextCommand{
		MessageID:   messageID,
		MessageText: req.MessageText,
	})
	if err != nil {
		switch {
		case errors.Is(err, command.ErrMessageNotFound):
			c.String(http.StatusBadRequest, "Message not found")
		case errors.Is(err, command.ErrMessageTextEmpty):
			c.String(http.StatusBadRequest, "Message text cannot be empty")
		case errors.Is(err, command.ErrMessageTooLong):
			c.String(http.StatusBadRequest, "Message too long: it must have a length of at most 255 characters")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update message")
		}
		return
	}

	c.String(http.StatusOK, "1") // one row affected
}

// DeleteMessage responds 200 with "1" when a row was removed and 200 with an
// empty body when there was nothing to remove.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	deleted, err := h.commands.DeleteMessage(c.Request.Context(), cqrs.DeleteMessageCommand{MessageID: messageID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete message")
		return
	}
	if !deleted {
		c.Status(http.StatusOK)
		return
	}

	c.String(http.StatusOK, "1") // one row affected
}

// GetMessagesByAccountID responds 200 with the account's messages, an empty
// array when it has none or does not exist.
func (h *MessageHandler) GetMessagesByAccountID(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}

	messages, err := h.queries.GetMessagesByAccountID(c.Request.Context(), cqrs.ListMessagesByAccountQuery{AccountID: accountID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// pathID parses a numeric path parameter, responding 400 when it is not an
// integer.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
