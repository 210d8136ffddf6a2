package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_LoadMissingFileInitializesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	g := NewWithPath(path)

	snapshot, err := g.Load()
	require.NoError(t, err)
	assert.Empty(t, snapshot.Users)
	assert.Empty(t, snapshot.Brands)
	assert.Empty(t, snapshot.Products)

	// Load of a missing file persists an empty database.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGateway_SaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	g := NewWithPath(path)

	snapshot := repository.NewSnapshot()
	snapshot.Users["ana@example.com"] = &entity.User{
		UserID:        "123456789",
		Name:          "Ana",
		Email:         "ana@example.com",
		Password:      "secret",
		Status:        entity.StatusLogout,
		FollowedBrand: []string{"100"},
		WishList:      []string{},
		Notifications: []entity.Notification{
			{ID: "42", Message: "hello", Status: entity.NotificationUnread, Timestamp: "2024-01-01T00:00:00Z"},
		},
	}
	snapshot.Brands["100"] = &entity.Brand{
		BrandID:       "100",
		Name:          "Nike",
		ProductList:   []string{"200"},
		FollowersList: []string{"123456789"},
	}
	snapshot.Products["200"] = &entity.Product{
		ProductID: "200",
		Name:      "Air Max 97",
		BrandID:   "100",
		BrandName: "Nike",
		Status:    entity.ProductStatusNew,
		Stock:     entity.StockInStock,
	}

	require.NoError(t, g.Save(snapshot))

	loaded, err := g.Load()
	require.NoError(t, err)
	assert.Equal(t, snapshot.Users, loaded.Users)
	assert.Equal(t, snapshot.Brands, loaded.Brands)
	assert.Equal(t, snapshot.Products, loaded.Products)
}

func TestGateway_FileUsesThreeKeyedMappings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	g := NewWithPath(path)

	require.NoError(t, g.Save(repository.NewSnapshot()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "brands")
	assert.Contains(t, doc, "products")
}

func TestGateway_LoadToleratesMissingMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": {}}`), 0o644))

	snapshot, err := NewWithPath(path).Load()
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Brands)
	assert.NotNil(t, snapshot.Products)
}

func TestGateway_LoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewWithPath(path).Load()
	assert.Error(t, err)
}
