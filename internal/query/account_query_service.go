package query

import (
	"context"

	"github.com/chirpnet/social-media-service/internal/cqrs"
	"github.com/chirpnet/social-media-service/internal/models"
	"github.com/chirpnet/social-media-service/internal/repository"
)

// AccountQueryService handles login and existence probes. There is no token
// issuance here: the contract returns the stored Account itself, and the
// comparison is an exact plaintext match inherited from the original schema.
type AccountQueryService struct {
	readRepo repository.AccountReader
}

func NewAccountQueryService(readRepo repository.AccountReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// Login returns the stored account when username and password both match.
func (s *AccountQueryService) Login(ctx context.Context, q cqrs.LoginQuery) (*models.Account, error) {
	if q.Username == "" || q.Password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.readRepo.GetByCredentials(ctx, q.Username, q.Password)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// DoesUsernameExist reports whether any account holds the username.
func (s *AccountQueryService) DoesUsernameExist(ctx context.Context, username string) (bool, error) {
	return s.readRepo.ExistsByUsername(ctx, username)
}
