package repository

import (
	"context"

	"github.com/chirpnet/social-media-service/internal/models"
)

// AccountWriter mutates account rows in the write store.
type AccountWriter interface {
	// Create inserts the account and fills in the generated AccountID.
	Create(ctx context.Context, account *models.Account) error
}

// AccountReader reads account rows. Absent rows are reported as (nil, nil),
// never as errors; an error means the store itself failed.
type AccountReader interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// GetByCredentials matches username and password exactly. Passwords are
	// plaintext in this schema; the comparison happens in SQL.
	GetByCredentials(ctx context.Context, username, password string) (*models.Account, error)
	GetByID(ctx context.Context, accountID int) (*models.Account, error)
}

// MessageWriter mutates message rows in the write store.
type MessageWriter interface {
	// Create inserts the message and fills in the generated MessageID.
	Create(ctx context.Context, message *models.Message) error
	UpdateText(ctx context.Context, messageID int, text string) error
	Delete(ctx context.Context, messageID int) error
}

// MessageReader reads message rows. GetByID returns (nil, nil) when the
// message does not exist.
type MessageReader interface {
	GetByID(ctx context.Context, messageID int) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	ListByPostedBy(ctx context.Context, accountID int) ([]models.Message, error)
	ExistsByID(ctx context.Context, messageID int) (bool, error)
}
