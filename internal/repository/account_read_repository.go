package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chirpnet/social-media-service/internal/models"
	appredis "github.com/chirpnet/social-media-service/internal/redis"
)

// AccountReadRepository handles all read operations for accounts. GetByID
// tries the Redis view cache first and warms it on a cold read; the
// credential and username lookups always hit PostgreSQL since they are
// keyed by fields other than the primary key.
type AccountReadRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.Account]
}

var _ AccountReader = (*AccountReadRepository)(nil)

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: appredis.NewViewCache[models.Account](redisClient, 0),
	}
}

func (r *AccountReadRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM account WHERE username = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *AccountReadRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

// GetByCredentials performs the plaintext username/password match the login
// contract requires. No hashing happens anywhere in this schema.
func (r *AccountReadRepository) GetByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1 AND password = $2
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, username, password))
}

func (r *AccountReadRepository) GetByID(ctx context.Context, accountID int) (*models.Account, error) {
	cacheKey := accountViewKey(accountID)
	if entry, ok := r.cache.Get(ctx, cacheKey); ok {
		return entry, nil
	}

	query := `
		SELECT account_id, username, password
		FROM account
		WHERE account_id = $1
	`
	account, err := r.scanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if err != nil || account == nil {
		return account, err
	}

	// Warm the cache. Accounts are never updated or deleted, so a warmed
	// entry cannot go stale.
	r.cache.Set(ctx, cacheKey, account)
	return account, nil
}

func (r *AccountReadRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(&account.AccountID, &account.Username, &account.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
