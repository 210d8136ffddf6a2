package notify

import (
	"context"
	"log/slog"
	"time"

	"nuovo/config"
	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/service"
	"nuovo/internal/store"

	"github.com/pkg/errors"
)

const defaultSendTimeout = 10 * time.Second

// Service runs digest passes over the store, emailing every matched customer
// and recording the digest as an unread notification.
type Service struct {
	store       *store.Store
	mailer      service.Mailer
	logger      *slog.Logger
	sendTimeout time.Duration
}

// NewService creates the digest service.
func NewService(st *store.Store, mailer service.Mailer, logger *slog.Logger, cfg *config.Config) *Service {
	sendTimeout := defaultSendTimeout
	if cfg.Mail != nil && cfg.Mail.SendTimeout > 0 {
		sendTimeout = cfg.Mail.SendTimeout
	}

	return &Service{
		store:       st,
		mailer:      mailer,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

// RunPass executes one full digest pass. Customers with no relevant products
// are skipped. The email goes out first; only a delivered email becomes an
// in-app notification. A failed send skips that customer and the pass moves
// on.
func (s *Service) RunPass(ctx context.Context) (store.PassStats, error) {
	stats, err := s.store.NotificationPass(ctx, s.visit)
	if err != nil {
		return stats, errors.Wrap(err, "notification pass failed")
	}
	s.logger.Info("notification pass finished",
		slog.Int("users", stats.Users),
		slog.Int("notified", stats.Notified),
		slog.Int("failed", stats.Failed),
	)

	return stats, nil
}

func (s *Service) visit(ctx context.Context, user *entity.User, products []*entity.Product) (*entity.Notification, error) {
	buckets := Match(user, products)
	if buckets.Empty() {
		return nil, nil
	}
	message := Digest(buckets)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.mailer.Send(sendCtx, user.Email, Subject, message); err != nil {
		return nil, errors.Wrap(err, "failed to send digest email")
	}

	return &entity.Notification{
		Message:   message,
		Status:    entity.NotificationUnread,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
