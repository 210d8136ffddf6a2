package store

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"nuovo/internal/domain/entity"
	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddBrand_RejectsBadLogo(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()

	_, err := fx.store.AddBrand(ctx, "Nike", "sportswear", "")
	assert.Equal(t, domainerrors.ErrInvalidLogo, err)

	_, err = fx.store.AddBrand(ctx, "Nike", "sportswear", "not base64!!!")
	assert.Equal(t, domainerrors.ErrInvalidLogo, err)
}

func TestStore_EditBrand_RenamePropagatesToProducts(t *testing.T) {
	fx := newTestStore(t)
	brand := fx.addBrand(t, "Nike")
	product := fx.addProduct(t, brand.BrandID, "Air Max")

	_, err := fx.store.EditBrand(context.Background(), brand.BrandID, "Nike Inc", "", "")
	require.NoError(t, err)

	got, err := fx.store.Product(product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Nike Inc", got.BrandName)
}

func TestStore_DeleteBrand_BlockedWhileProductsExist(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	brand := fx.addBrand(t, "Nike")
	product := fx.addProduct(t, brand.BrandID, "Air Max")

	err := fx.store.DeleteBrand(ctx, brand.BrandID)
	assert.Equal(t, domainerrors.ErrBrandHasProducts, err)

	require.NoError(t, fx.store.DeleteProduct(ctx, product.ProductID))
	require.NoError(t, fx.store.DeleteBrand(ctx, brand.BrandID))

	_, err = fx.store.Brand(brand.BrandID)
	assert.Equal(t, domainerrors.ErrBrandNotFound, err)
}

func TestStore_DeleteBrand_BlockedByDanglingProductReference(t *testing.T) {
	snapshot := repository.NewSnapshot()
	snapshot.Brands["100"] = &entity.Brand{BrandID: "100", Name: "Nike"}
	snapshot.Products["200"] = &entity.Product{ProductID: "200", Name: "Air Max", BrandID: "100"}
	gateway := &memoryGateway{snapshot: snapshot}
	s, err := New(gateway, &recordingImageStore{}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	err = s.DeleteBrand(context.Background(), "100")
	assert.Equal(t, domainerrors.ErrBrandHasProducts, err)
}

func TestStore_FlushFailure_KeepsMutation(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	fx.registerCustomer(t, "Alice", "alice@example.com")
	brand := fx.addBrand(t, "Nike")

	fx.gateway.failSave = true
	err := fx.store.FollowBrand(ctx, "alice@example.com", brand.BrandID)
	var perr *domainerrors.PersistenceError
	require.ErrorAs(t, err, &perr)

	user, err := fx.store.User("alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, user.FollowedBrand, brand.BrandID)

	got, err := fx.store.Brand(brand.BrandID)
	require.NoError(t, err)
	assert.Contains(t, got.FollowersList, user.UserID)
}

func TestStore_DeleteBrand_CleansFollowers(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	fx.registerCustomer(t, "Alice", "alice@example.com")
	brand := fx.addBrand(t, "Nike")
	require.NoError(t, fx.store.FollowBrand(ctx, "alice@example.com", brand.BrandID))

	require.NoError(t, fx.store.DeleteBrand(ctx, brand.BrandID))

	user, err := fx.store.User("alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, user.FollowedBrand)
}

func TestStore_FollowBrand_BothSides(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	alice := fx.registerCustomer(t, "Alice", "alice@example.com")
	brand := fx.addBrand(t, "Nike")

	require.NoError(t, fx.store.FollowBrand(ctx, "alice@example.com", brand.BrandID))

	user, err := fx.store.User("alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, user.FollowedBrand, brand.BrandID)

	got, err := fx.store.Brand(brand.BrandID)
	require.NoError(t, err)
	assert.Contains(t, got.FollowersList, alice.UserID)

	err = fx.store.FollowBrand(ctx, "alice@example.com", brand.BrandID)
	assert.Equal(t, domainerrors.ErrAlreadyFollowing, err)
}

func TestStore_UnfollowBrand_BothSides(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	alice := fx.registerCustomer(t, "Alice", "alice@example.com")
	brand := fx.addBrand(t, "Nike")

	err := fx.store.UnfollowBrand(ctx, "alice@example.com", brand.BrandID)
	assert.Equal(t, domainerrors.ErrNotFollowing, err)

	require.NoError(t, fx.store.FollowBrand(ctx, "alice@example.com", brand.BrandID))
	require.NoError(t, fx.store.UnfollowBrand(ctx, "alice@example.com", brand.BrandID))

	user, err := fx.store.User("alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, user.FollowedBrand)

	got, err := fx.store.Brand(brand.BrandID)
	require.NoError(t, err)
	assert.NotContains(t, got.FollowersList, alice.UserID)
}

func TestStore_FollowBrand_CustomerOnly(t *testing.T) {
	fx := newTestStore(t)
	fx.registerAdmin(t, "Root", "root@example.com")
	brand := fx.addBrand(t, "Nike")

	err := fx.store.FollowBrand(context.Background(), "root@example.com", brand.BrandID)
	assert.Equal(t, domainerrors.ErrCustomerOnly, err)
}

func TestStore_FollowSubcategory_Idempotent(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	fx.registerCustomer(t, "Alice", "alice@example.com")

	require.NoError(t, fx.store.FollowSubcategory(ctx, "alice@example.com", "sneakers"))
	require.NoError(t, fx.store.FollowSubcategory(ctx, "alice@example.com", "sneakers"))

	user, err := fx.store.User("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"sneakers"}, user.FollowedSubcategories)
}

func TestStore_UnfollowSubcategory_NotFollowed(t *testing.T) {
	fx := newTestStore(t)
	fx.registerCustomer(t, "Alice", "alice@example.com")

	err := fx.store.UnfollowSubcategory(context.Background(), "alice@example.com", "sneakers")
	assert.Equal(t, domainerrors.ErrSubcategoryNotFollowed, err)
}

func TestStore_Brands_SortedByName(t *testing.T) {
	fx := newTestStore(t)
	fx.addBrand(t, "Puma")
	fx.addBrand(t, "Adidas")
	fx.addBrand(t, "Nike")

	brands := fx.store.Brands()
	require.Len(t, brands, 3)
	assert.Equal(t, "Adidas", brands[0].Name)
	assert.Equal(t, "Nike", brands[1].Name)
	assert.Equal(t, "Puma", brands[2].Name)
}

func TestStore_ConcurrentFollows_StayConsistent(t *testing.T) {
	fx := newTestStore(t)
	ctx := context.Background()
	brand := fx.addBrand(t, "Nike")

	const customers = 16
	emails := make([]string, customers)
	for i := range emails {
		emails[i] = string(rune('a'+i)) + "@example.com"
		fx.registerCustomer(t, "User", emails[i])
	}

	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, fx.store.FollowBrand(ctx, email, brand.BrandID))
		}()
	}
	wg.Wait()

	got, err := fx.store.Brand(brand.BrandID)
	require.NoError(t, err)
	assert.Len(t, got.FollowersList, customers)
}
