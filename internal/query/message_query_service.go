package query

import (
	"context"

	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/models"
	"github.com/chirpnet/social-media-service/internal/repository"
)

// MessageQueryService handles the message read paths. Reads are unfiltered
// passthroughs; absence of a message is not an error anywhere on this side.
type MessageQueryService struct {
	readRepo repository.MessageReader
}

func NewMessageQueryService(readRepo repository.MessageReader) *MessageQueryService {
	return &MessageQueryService{readRepo: readRepo}
}

// GetAllMessages returns every stored message, unordered.
func (s *MessageQueryService) GetAllMessages(ctx context.Context) ([]models.Message, error) {
	return s.readRepo.List(ctx)
}

// GetMessageByID returns nil when the message does not exist; the handler
// turns that into an empty 200, never a 404.
func (s *MessageQueryService) GetMessageByID(ctx context.Context, q cqrs.GetMessageQuery) (*models.Message, error) {
	return s.readRepo.GetByID(ctx, q.MessageID)
}

// GetMessagesByAccountID returns all messages posted by the account, an
// empty slice when there are none.
func (s *MessageQueryService) GetMessagesByAccountID(ctx context.Context, q cqrs.ListMessagesByAccountQuery) ([]models.Message, error) {
	return s.readRepo.ListByPostedBy(ctx, q.AccountID)
}
