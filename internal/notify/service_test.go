package notify

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"nuovo/config"
	"nuovo/internal/domain/entity"
	"nuovo/internal/infra/images"
	"nuovo/internal/infra/persistence/jsonfile"
	"nuovo/internal/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// fakeMailer records sends and can fail for chosen recipients.
type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.failFor[to] {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})

	return nil
}

type serviceFixture struct {
	store   *store.Store
	service *Service
	mailer  *fakeMailer
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	dir := t.TempDir()
	gateway := jsonfile.NewWithPath(filepath.Join(dir, "database.json"))
	logger := slog.New(slog.DiscardHandler)
	st, err := store.New(gateway, images.NewWithRoot(filepath.Join(dir, "images")), logger)
	require.NoError(t, err)

	mailer := &fakeMailer{failFor: map[string]bool{}}
	cfg := &config.Config{
		Mail:   &config.MailConfig{SendTimeout: time.Second},
		Notify: config.NotifyConfig{Interval: time.Hour, Enabled: true},
	}

	return &serviceFixture{
		store:   st,
		service: NewService(st, mailer, logger, cfg),
		mailer:  mailer,
	}
}

func (fx *serviceFixture) seedFollower(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	_, err := fx.store.Register(ctx, "Customer", email, "secret", false)
	require.NoError(t, err)
	brand, err := fx.store.AddBrand(ctx, "Nike", "sportswear", "bG9nbw==")
	require.NoError(t, err)
	_, err = fx.store.AddProduct(ctx, store.ProductInput{
		Name:        "Air Max",
		BrandID:     brand.BrandID,
		SubCategory: "sneakers",
		Price:       "99.90",
		Status:      entity.ProductStatusNew,
		Stock:       entity.StockInStock,
	})
	require.NoError(t, err)
	require.NoError(t, fx.store.FollowBrand(ctx, email, brand.BrandID))
}

func TestService_RunPass_EmailsAndRecords(t *testing.T) {
	fx := newServiceFixture(t)
	fx.seedFollower(t, "alice@example.com")

	stats, err := fx.service.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Notified)

	require.Len(t, fx.mailer.sent, 1)
	assert.Equal(t, "alice@example.com", fx.mailer.sent[0].to)
	assert.Equal(t, Subject, fx.mailer.sent[0].subject)
	assert.Equal(t, "New products available: Air Max\n", fx.mailer.sent[0].body)

	notifications, err := fx.store.Notifications("alice@example.com")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, fx.mailer.sent[0].body, notifications[0].Message)
	assert.Equal(t, entity.NotificationUnread, notifications[0].Status)

	ts, err := time.Parse(time.RFC3339, notifications[0].Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestService_RunPass_SkipsUnmatchedCustomers(t *testing.T) {
	fx := newServiceFixture(t)
	fx.seedFollower(t, "alice@example.com")
	_, err := fx.store.Register(context.Background(), "Bob", "bob@example.com", "secret", false)
	require.NoError(t, err)

	stats, err := fx.service.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, 1, stats.Notified)

	notifications, err := fx.store.Notifications("bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestService_RunPass_FailedSendLeavesNoNotification(t *testing.T) {
	fx := newServiceFixture(t)
	fx.seedFollower(t, "alice@example.com")
	fx.mailer.failFor["alice@example.com"] = true

	stats, err := fx.service.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Notified)

	notifications, err := fx.store.Notifications("alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestService_RunPass_RepeatsOnUnchangedState(t *testing.T) {
	fx := newServiceFixture(t)
	fx.seedFollower(t, "alice@example.com")

	for range 2 {
		_, err := fx.service.RunPass(context.Background())
		require.NoError(t, err)
	}

	notifications, err := fx.store.Notifications("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Len(t, fx.mailer.sent, 2)
}
