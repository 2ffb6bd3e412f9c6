package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chirpnet/social-media-service/internal/models"
	appredis "github.com/chirpnet/social-media-service/internal/redis"
)

// MessageReadRepository handles all read operations for messages. Single-row
// lookups go through the Redis view cache; list queries always hit PostgreSQL.
type MessageReadRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.Message]
}

var _ MessageReader = (*MessageReadRepository)(nil)

func NewMessageReadRepository(db *sql.DB, redisClient *goredis.Client) *MessageReadRepository {
	return &MessageReadRepository{
		db:    db,
		cache: appredis.NewViewCache[models.Message](redisClient, 0),
	}
}

func (r *MessageReadRepository) GetByID(ctx context.Context, messageID int) (*models.Message, error) {
	cacheKey := messageViewKey(messageID)
	if entry, ok := r.cache.Get(ctx, cacheKey); ok {
		return entry, nil
	}

	query := `
		SELECT message_id, posted_by, message_text, message_time
		FROM message
		WHERE message_id = $1
	`
	var message models.Message
	err := r.db.QueryRowContext(ctx, query, messageID).Scan(
		&message.MessageID, &message.PostedBy, &message.MessageText, &message.MessageTime,
	)
	if err == sql.ErrNoRows {
		// Absence is not cached: a message created under this id later must
		// be visible immediately.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &message)
	return &message, nil
}

func (r *MessageReadRepository) List(ctx context.Context) ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, message_time
		FROM message
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *MessageReadRepository) ListByPostedBy(ctx context.Context, accountID int) ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, message_time
		FROM message
		WHERE posted_by = $1
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *MessageReadRepository) ExistsByID(ctx context.Context, messageID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM message WHERE message_id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, messageID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check message: %w", err)
	}
	return exists, nil
}

// scanMessages drains rows into a non-nil slice so an empty result serializes
// as [] rather than null.
func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	messages := []models.Message{}
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(&message.MessageID, &message.PostedBy, &message.MessageText, &message.MessageTime); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}
