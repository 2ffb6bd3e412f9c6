package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chirpnet/social-media-service/internal/models"
	appredis "github.com/chirpnet/social-media-service/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

func accountViewKey(accountID int) string {
	return fmt.Sprintf("%s%d", accountViewKeyPrefix, accountID)
}

// AccountWriteRepository handles all state-mutating operations for accounts.
// PostgreSQL is the source of truth; the Redis view cache is warmed on create
// so the poster lookup during message creation usually skips the database.
type AccountWriteRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.Account]
}

var _ AccountWriter = (*AccountWriteRepository)(nil)

func NewAccountWriteRepository(db *sql.DB, redisClient *goredis.Client) *AccountWriteRepository {
	return &AccountWriteRepository{
		db:    db,
		cache: appredis.NewViewCache[models.Account](redisClient, 0),
	}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`
	err := r.db.QueryRowContext(ctx, query, account.Username, account.Password).Scan(&account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	r.cache.Set(ctx, accountViewKey(account.AccountID), account)
	return nil
}
