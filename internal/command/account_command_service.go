package command

import (
	"context"
	"log"
	"strings"

	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/events"
	"github.com/chirpnet/social-media-service/internal/models"
	"github.com/chirpnet/social-media-service/internal/repository"
)

const minPasswordLength = 8

// AccountCommandService owns the registration business rules and writes
// account state through the account stores.
type AccountCommandService struct {
	writeRepo repository.AccountWriter
	readRepo  repository.AccountReader
	publisher *events.Publisher
}

func NewAccountCommandService(
	writeRepo repository.AccountWriter,
	readRepo repository.AccountReader,
	publisher *events.Publisher,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// RegisterAccount validates the candidate, rejects duplicate usernames and
// inserts the row. The store assigns the surrogate key; the returned Account
// is the stored row, plaintext password included, matching the original
// contract. The existence check and the insert are not atomic: a concurrent
// duplicate registration is only stopped by the UNIQUE constraint beneath.
func (s *AccountCommandService) RegisterAccount(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	if strings.TrimSpace(cmd.Username) == "" || len(cmd.Password) < minPasswordLength {
		return nil, ErrInvalidAccount
	}

	taken, err := s.readRepo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	account := &models.Account{
		Username: cmd.Username,
		Password: cmd.Password,
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID: account.AccountID,
		Username:  account.Username,
	}); err != nil {
		log.Printf("Failed to publish account.registered event: %v", err)
	}

	return account, nil
}
