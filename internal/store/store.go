// Package store owns the in-memory entity state: users, brands and products
// loaded from the flat-file gateway at startup. It is the single source of
// truth; nothing else holds the raw maps.
//
// One mutex guards every read-then-mutate-then-flush sequence, including the
// whole notification pass, so concurrent handlers and the scheduler can never
// observe or produce a half-updated bidirectional link. Mutating methods
// flush the full snapshot before returning; a flush failure is reported as a
// PersistenceError but the in-memory mutation is kept.
package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/repository"
	"nuovo/internal/domain/service"

	"github.com/pkg/errors"
)

// Store is the mutex-guarded entity store.
type Store struct {
	mu      sync.Mutex
	gateway repository.Gateway
	images  service.ImageStore
	logger  *slog.Logger

	users    map[string]*entity.User    // keyed by email
	brands   map[string]*entity.Brand   // keyed by brand_id
	products map[string]*entity.Product // keyed by product_id
}

// New loads the persisted snapshot and wraps it in a Store.
func New(gateway repository.Gateway, images service.ImageStore, logger *slog.Logger) (*Store, error) {
	snapshot, err := gateway.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load entity store")
	}

	return &Store{
		gateway:  gateway,
		images:   images,
		logger:   logger,
		users:    snapshot.Users,
		brands:   snapshot.Brands,
		products: snapshot.Products,
	}, nil
}

// flush writes the full snapshot through the gateway. Callers hold the lock.
func (s *Store) flush() error {
	snapshot := &repository.Snapshot{
		Users:    s.users,
		Brands:   s.brands,
		Products: s.products,
	}
	if err := s.gateway.Save(snapshot); err != nil {
		s.logger.Error("snapshot flush failed", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, err.Error())
	}

	return nil
}

// customer returns the live user record for a non-admin account.
// Callers hold the lock.
func (s *Store) customer(email string) (*entity.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}
	if user.IsAdmin {
		return nil, domainerrors.ErrCustomerOnly
	}

	return user, nil
}

// PassStats summarizes one notification pass.
type PassStats struct {
	Users    int // customers visited
	Notified int // notifications appended (one email each)
	Failed   int // customers whose visit failed; the pass continued
}

// PassVisitor inspects one customer against the current product collection
// and returns the notification to append, or nil when there is nothing to
// say. The entities are live store state; visitors must treat them as
// read-only.
type PassVisitor func(ctx context.Context, user *entity.User, products []*entity.Product) (*entity.Notification, error)

// NotificationPass runs one full digest pass under the store lock: every
// non-admin user is visited in stable order, returned notifications are
// appended with a fresh per-user ID, and the snapshot is flushed exactly once
// at the end. A visitor failure for one user is counted and logged but never
// aborts the remaining users.
func (s *Store) NotificationPass(ctx context.Context, visit PassVisitor) (PassStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b *entity.Product) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})

	emails := make([]string, 0, len(s.users))
	for email := range s.users {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	var stats PassStats
	for _, email := range emails {
		user := s.users[email]
		if user.IsAdmin {
			continue
		}
		stats.Users++

		notification, err := visit(ctx, user, products)
		if err != nil {
			stats.Failed++
			s.logger.Warn("notification pass: user skipped",
				slog.String("email", email),
				slog.Any("error", err),
			)

			continue
		}
		if notification == nil {
			continue
		}

		notification.ID = nextNotificationID(user.Notifications)
		user.Notifications = append(user.Notifications, *notification)
		stats.Notified++
	}

	return stats, s.flush()
}
