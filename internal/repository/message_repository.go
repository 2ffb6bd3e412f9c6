package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chirpnet/social-media-service/internal/models"
	appredis "github.com/chirpnet/social-media-service/internal/redis"
)

const messageViewKeyPrefix = "message:view:"

func messageViewKey(messageID int) string {
	return fmt.Sprintf("%s%d", messageViewKeyPrefix, messageID)
}

// MessageWriteRepository handles all state-mutating operations for messages.
// It keeps the Redis view cache coherent: creates warm it, updates and
// deletes invalidate it.
type MessageWriteRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.Message]
}

var _ MessageWriter = (*MessageWriteRepository)(nil)

func NewMessageWriteRepository(db *sql.DB, redisClient *goredis.Client) *MessageWriteRepository {
	return &MessageWriteRepository{
		db:    db,
		cache: appredis.NewViewCache[models.Message](redisClient, 0),
	}
}

func (r *MessageWriteRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO message (posted_by, message_text, message_time)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`
	err := r.db.QueryRowContext(ctx, query, message.PostedBy, message.MessageText, message.MessageTime).
		Scan(&message.MessageID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	r.cache.Set(ctx, messageViewKey(message.MessageID), message)
	return nil
}

func (r *MessageWriteRepository) UpdateText(ctx context.Context, messageID int, text string) error {
	query := `
		UPDATE message
		SET message_text = $2
		WHERE message_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, messageID, text)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("message not found")
	}
	r.cache.Delete(ctx, messageViewKey(messageID))
	return nil
}

func (r *MessageWriteRepository) Delete(ctx context.Context, messageID int) error {
	query := `DELETE FROM message WHERE message_id = $1`
	if _, err := r.db.ExecContext(ctx, query, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	r.cache.Delete(ctx, messageViewKey(messageID))
	return nil
}
