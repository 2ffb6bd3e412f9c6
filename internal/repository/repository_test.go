package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpnet/social-media-service/internal/models"
)

// setupRepoTest provides a sqlmock-backed database and a miniredis-backed
// redis client, torn down with the test.
func setupRepoTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db, mock, redisClient
}

func cacheGet(t *testing.T, client *goredis.Client, key string) (string, bool) {
	t.Helper()
	val, err := client.Get(context.Background(), key).Result()
	if err == goredis.Nil {
		return "", false
	}
	require.NoError(t, err)
	return val, true
}

// ---- account repositories ----

func TestAccountWriteRepositoryCreate(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewAccountWriteRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO account (username, password) VALUES ($1, $2) RETURNING account_id`)).
		WithArgs("alice", "password1").
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(7))

	account := &models.Account{Username: "alice", Password: "password1"}
	require.NoError(t, repo.Create(context.Background(), account))
	assert.Equal(t, 7, account.AccountID)

	// Create warms the view cache.
	cached, ok := cacheGet(t, redisClient, "account:view:7")
	require.True(t, ok)
	assert.Contains(t, cached, `"username":"alice"`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountReadRepositoryExistsByUsername(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewAccountReadRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM account WHERE username = $1)`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountReadRepositoryGetByCredentials(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewAccountReadRepository(db, redisClient)

	query := regexp.QuoteMeta(`SELECT account_id, username, password FROM account WHERE username = $1 AND password = $2`)

	mock.ExpectQuery(query).
		WithArgs("alice", "password1").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(1, "alice", "password1"))

	account, err := repo.GetByCredentials(context.Background(), "alice", "password1")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "alice", account.Username)

	// A non-matching password is (nil, nil), not an error.
	mock.ExpectQuery(query).
		WithArgs("alice", "wrong").
		WillReturnError(sql.ErrNoRows)

	account, err = repo.GetByCredentials(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, account)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountReadRepositoryGetByIDUsesCache(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewAccountReadRepository(db, redisClient)

	// Cold read hits Postgres and warms the cache.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT account_id, username, password FROM account WHERE account_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(1, "alice", "password1"))

	account, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, account)

	_, warmed := cacheGet(t, redisClient, "account:view:1")
	assert.True(t, warmed)

	// Warm read is served from Redis; no further query is expected.
	account, err = repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "alice", account.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}

// ---- message repositories ----

func TestMessageWriteRepositoryCreate(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageWriteRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO message (posted_by, message_text, message_time) VALUES ($1, $2, $3) RETURNING message_id`)).
		WithArgs(1, "hello", int64(1700000000)).
		WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow(3))

	message := &models.Message{PostedBy: 1, MessageText: "hello", MessageTime: 1700000000}
	require.NoError(t, repo.Create(context.Background(), message))
	assert.Equal(t, 3, message.MessageID)

	_, warmed := cacheGet(t, redisClient, "message:view:3")
	assert.True(t, warmed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageWriteRepositoryUpdateTextInvalidatesCache(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageWriteRepository(db, redisClient)

	stale, _ := json.Marshal(models.Message{MessageID: 3, PostedBy: 1, MessageText: "old"})
	require.NoError(t, redisClient.Set(context.Background(), "message:view:3", stale, 0).Err())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE message SET message_text = $2 WHERE message_id = $1`)).
		WithArgs(3, "new text").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateText(context.Background(), 3, "new text"))

	_, stillCached := cacheGet(t, redisClient, "message:view:3")
	assert.False(t, stillCached, "update must invalidate the cached view")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageWriteRepositoryDeleteInvalidatesCache(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageWriteRepository(db, redisClient)

	stale, _ := json.Marshal(models.Message{MessageID: 3})
	require.NoError(t, redisClient.Set(context.Background(), "message:view:3", stale, 0).Err())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM message WHERE message_id = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))

	_, stillCached := cacheGet(t, redisClient, "message:view:3")
	assert.False(t, stillCached, "delete must invalidate the cached view")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageReadRepositoryGetByID(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageReadRepository(db, redisClient)

	query := regexp.QuoteMeta(`SELECT message_id, posted_by, message_text, message_time FROM message WHERE message_id = $1`)

	mock.ExpectQuery(query).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "message_time"}).
			AddRow(3, 1, "hello", int64(1700000000)))

	message, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.Equal(t, "hello", message.MessageText)

	// Absent rows are (nil, nil) and absence is not cached.
	mock.ExpectQuery(query).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	message, err = repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, message)

	_, cached := cacheGet(t, redisClient, "message:view:42")
	assert.False(t, cached)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageReadRepositoryList(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageReadRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT message_id, posted_by, message_text, message_time FROM message`)).
		WillReturnRows(sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "message_time"}).
			AddRow(1, 1, "first", int64(100)).
			AddRow(2, 2, "second", int64(200)))

	messages, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageReadRepositoryListByPostedByEmpty(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageReadRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT message_id, posted_by, message_text, message_time FROM message WHERE posted_by = $1`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "message_time"}))

	messages, err := repo.ListByPostedBy(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, messages, "empty result must be a non-nil slice")
	assert.Empty(t, messages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageReadRepositoryExistsByID(t *testing.T) {
	db, mock, redisClient := setupRepoTest(t)
	repo := NewMessageReadRepository(db, redisClient)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM message WHERE message_id = $1)`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByID(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
