package store

import (
	"context"
	"log/slog"
	"testing"

	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// validLogo is "logo" base64-encoded.
const validLogo = "bG9nbw=="

// memoryGateway keeps the snapshot in memory and counts saves.
type memoryGateway struct {
	snapshot *repository.Snapshot
	saves    int
	failSave bool
}

func (g *memoryGateway) Load() (*repository.Snapshot, error) {
	if g.snapshot == nil {
		g.snapshot = repository.NewSnapshot()
	}

	return g.snapshot, nil
}

func (g *memoryGateway) Save(snapshot *repository.Snapshot) error {
	if g.failSave {
		return errors.New("disk full")
	}
	g.saves++
	g.snapshot = snapshot

	return nil
}

// recordingImageStore records which product directories were removed.
type recordingImageStore struct {
	removed []string
	fail    bool
}

func (r *recordingImageStore) RemoveAll(productID string) error {
	if r.fail {
		return errors.New("permission denied")
	}
	r.removed = append(r.removed, productID)

	return nil
}

type storeFixture struct {
	store   *Store
	gateway *memoryGateway
	images  *recordingImageStore
}

func newTestStore(t *testing.T) *storeFixture {
	t.Helper()

	gateway := &memoryGateway{}
	images := &recordingImageStore{}
	s, err := New(gateway, images, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return &storeFixture{store: s, gateway: gateway, images: images}
}

func (fx *storeFixture) registerCustomer(t *testing.T, name, email string) *entity.User {
	t.Helper()

	user, err := fx.store.Register(context.Background(), name, email, "secret", false)
	require.NoError(t, err)

	return user
}

func (fx *storeFixture) registerAdmin(t *testing.T, name, email string) *entity.User {
	t.Helper()

	user, err := fx.store.Register(context.Background(), name, email, "secret", true)
	require.NoError(t, err)

	return user
}

func (fx *storeFixture) addBrand(t *testing.T, name string) *entity.Brand {
	t.Helper()

	brand, err := fx.store.AddBrand(context.Background(), name, name+" description", validLogo)
	require.NoError(t, err)

	return brand
}

func (fx *storeFixture) addProduct(t *testing.T, brandID, name string) *entity.Product {
	t.Helper()

	product, err := fx.store.AddProduct(context.Background(), ProductInput{
		Name:         name,
		ProductURL:   "https://shop.example/" + name,
		BrandID:      brandID,
		MainCategory: "mens-shoes",
		SubCategory:  "sneakers",
		Size:         []string{"42:1", "43:0"},
		Colour:       "Black",
		Price:        "99.90",
		Stock:        entity.StockInStock,
		Status:       entity.ProductStatusNew,
	})
	require.NoError(t, err)

	return product
}
