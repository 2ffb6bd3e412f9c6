package command

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/chirpnet/social-media-service/internal/events"
	"github.com/chirpnet/social-media-service/internal/models"
)

// fakeAccountStore is an in-memory AccountWriter + AccountReader.
type fakeAccountStore struct {
	accounts map[int]*models.Account
	nextID   int
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[int]*models.Account{}, nextID: 1}
}

func (f *fakeAccountStore) Create(_ context.Context, account *models.Account) error {
	account.AccountID = f.nextID
	f.nextID++
	stored := *account
	f.accounts[account.AccountID] = &stored
	return nil
}

func (f *fakeAccountStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetByCredentials(_ context.Context, username, password string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username && a.Password == password {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, accountID int) (*models.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

// fakeMessageStore is an in-memory MessageWriter + MessageReader.
type fakeMessageStore struct {
	messages map[int]*models.Message
	nextID   int
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[int]*models.Message{}, nextID: 1}
}

func (f *fakeMessageStore) Create(_ context.Context, message *models.Message) error {
	message.MessageID = f.nextID
	f.nextID++
	stored := *message
	f.messages[message.MessageID] = &stored
	return nil
}

func (f *fakeMessageStore) UpdateText(_ context.Context, messageID int, text string) error {
	f.messages[messageID].MessageText = text
	return nil
}

func (f *fakeMessageStore) Delete(_ context.Context, messageID int) error {
	delete(f.messages, messageID)
	return nil
}

func (f *fakeMessageStore) GetByID(_ context.Context, messageID int) (*models.Message, error) {
	m, ok := f.messages[messageID]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMessageStore) List(_ context.Context) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range f.messages {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMessageStore) ListByPostedBy(_ context.Context, accountID int) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range f.messages {
		if m.PostedBy == accountID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) ExistsByID(_ context.Context, messageID int) (bool, error) {
	_, ok := f.messages[messageID]
	return ok, nil
}

// newTestPublisher backs an events.Publisher with miniredis so tests can
// assert on published stream entries.
func newTestPublisher(t *testing.T) (*events.Publisher, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return events.NewPublisher(client), client
}
