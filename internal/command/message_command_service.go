package command

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/events"
	"github.com/chirpnet/social-media-service/internal/models"
	"github.com/chirpnet/social-media-service/internal/repository"
)

const maxMessageLength = 255

// MessageCommandService owns the message write rules. It needs the account
// reader as well: message creation verifies the poster exists.
type MessageCommandService struct {
	writeRepo repository.MessageWriter
	readRepo  repository.MessageReader
	accounts  repository.AccountReader
	publisher *events.Publisher
}

func NewMessageCommandService(
	writeRepo repository.MessageWriter,
	readRepo repository.MessageReader,
	accounts repository.AccountReader,
	publisher *events.Publisher,
) *MessageCommandService {
	return &MessageCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		accounts:  accounts,
		publisher: publisher,
	}
}

// CreateMessage validates the text and the poster, then inserts the row. The
// store assigns the key; messageTime is echoed as given, never validated.
//
// The poster check is a two-hop lookup: resolve the account by id, then
// confirm that its username exists.
func (s *MessageCommandService) CreateMessage(ctx context.Context, cmd cqrs.CreateMessageCommand) (*models.Message, error) {
	if strings.TrimSpace(cmd.MessageText) == "" ||
		utf8.RuneCountInString(cmd.MessageText) > maxMessageLength ||
		cmd.PostedBy == nil {
		return nil, ErrInvalidMessage
	}

	poster, err := s.accounts.GetByID(ctx, *cmd.PostedBy)
	if err != nil {
		return nil, err
	}
	if poster == nil {
		return nil, ErrInvalidMessage
	}
	exists, err := s.accounts.ExistsByUsername(ctx, poster.Username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidMessage
	}

	message := &models.Message{
		PostedBy:    *cmd.PostedBy,
		MessageText: cmd.MessageText,
		MessageTime: cmd.MessageTime,
	}
	if err := s.writeRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.MessageEventsStream, events.MessageCreated, events.MessageCreatedEvent{
		MessageID: message.MessageID,
		PostedBy:  message.PostedBy,
	}); err != nil {
		log.Printf("Failed to publish message.created event: %v", err)
	}

	return message, nil
}

// UpdateMessageText replaces the stored text in place. The check order is
// part of the contract: existence first, then the empty check, then length.
func (s *MessageCommandService) UpdateMessageText(ctx context.Context, cmd cqrs.UpdateMessageTextCommand) error {
	message, err := s.readRepo.GetByID(ctx, cmd.MessageID)
	if err != nil {
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}

	if strings.TrimSpace(cmd.MessageText) == "" {
		return ErrMessageTextEmpty
	}
	if utf8.RuneCountInString(cmd.MessageText) > maxMessageLength {
		return ErrMessageTooLong
	}

	if err := s.writeRepo.UpdateText(ctx, cmd.MessageID, cmd.MessageText); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.MessageEventsStream, events.MessageUpdated, events.MessageUpdatedEvent{
		MessageID: cmd.MessageID,
	}); err != nil {
		log.Printf("Failed to publish message.updated event: %v", err)
	}

	return nil
}

// DeleteMessage removes the row if it exists. Deleting an absent message is
// not an error: the caller gets (false, nil) and responds with an empty 200.
func (s *MessageCommandService) DeleteMessage(ctx context.Context, cmd cqrs.DeleteMessageCommand) (bool, error) {
	exists, err := s.readRepo.ExistsByID(ctx, cmd.MessageID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.writeRepo.Delete(ctx, cmd.MessageID); err != nil {
		return false, err
	}

	if err := s.publisher.Publish(ctx, events.MessageEventsStream, events.MessageDeleted, events.MessageDeletedEvent{
		MessageID: cmd.MessageID,
	}); err != nil {
		log.Printf("Failed to publish message.deleted event: %v", err)
	}

	return true, nil
}
