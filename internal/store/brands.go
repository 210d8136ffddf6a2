package store

import (
	"context"
	"encoding/base64"
	"slices"
	"strings"

	"nuovo/internal/domain/entity"
	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/util"
)

// AddBrand creates a brand. The logo must be valid base64 image data.
func (s *Store) AddBrand(ctx context.Context, name, description, logo string) (*entity.Brand, error) {
	if err := validateLogo(logo); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make([]string, 0, len(s.brands))
	for id := range s.brands {
		taken = append(taken, id)
	}

	brand := &entity.Brand{
		BrandID:       util.GenerateID(taken),
		Name:          name,
		Description:   description,
		Logo:          logo,
		ProductList:   []string{},
		FollowersList: []string{},
	}
	s.brands[brand.BrandID] = brand

	return cloneBrand(brand), s.flush()
}

// EditBrand updates the mutable brand fields. A renamed brand propagates its
// new name to the denormalized brand field of every product it owns.
func (s *Store) EditBrand(ctx context.Context, brandID, name, description, logo string) (*entity.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand, ok := s.brands[brandID]
	if !ok {
		return nil, domainerrors.ErrBrandNotFound
	}

	if logo != "" {
		if err := validateLogo(logo); err != nil {
			return nil, err
		}
		brand.Logo = logo
	}
	if name != "" && name != brand.Name {
		brand.Name = name
		for _, productID := range brand.ProductList {
			if product, ok := s.products[productID]; ok {
				product.BrandName = name
			}
		}
	}
	if description != "" {
		brand.Description = description
	}

	return cloneBrand(brand), s.flush()
}

// DeleteBrand removes a brand. Brands still owning products cannot be
// deleted; the products must be removed or moved first. Follower references
// are cleaned from every user on success.
func (s *Store) DeleteBrand(ctx context.Context, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.brands[brandID]; !ok {
		return domainerrors.ErrBrandNotFound
	}
	// The products are the authority, not brand.ProductList; a hand-edited
	// snapshot may reference the brand without being listed.
	for _, product := range s.products {
		if product.BrandID == brandID {
			return domainerrors.ErrBrandHasProducts
		}
	}

	for _, user := range s.users {
		user.FollowedBrand = removeString(user.FollowedBrand, brandID)
	}
	delete(s.brands, brandID)

	return s.flush()
}

// Brand returns a copy of a single brand.
func (s *Store) Brand(brandID string) (*entity.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand, ok := s.brands[brandID]
	if !ok {
		return nil, domainerrors.ErrBrandNotFound
	}

	return cloneBrand(brand), nil
}

// Brands lists every brand sorted by name, ties broken by ID.
func (s *Store) Brands() []*entity.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()

	brands := make([]*entity.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		brands = append(brands, cloneBrand(b))
	}
	slices.SortFunc(brands, func(a, b *entity.Brand) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.BrandID, b.BrandID)
	})

	return brands
}

// FollowBrand records the follow on both sides of the relationship.
func (s *Store) FollowBrand(ctx context.Context, email, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	brand, ok := s.brands[brandID]
	if !ok {
		return domainerrors.ErrBrandNotFound
	}
	if user.Follows(brandID) {
		return domainerrors.ErrAlreadyFollowing
	}

	user.FollowedBrand = append(user.FollowedBrand, brandID)
	brand.FollowersList = append(brand.FollowersList, user.UserID)

	return s.flush()
}

// UnfollowBrand removes the follow from both sides of the relationship.
func (s *Store) UnfollowBrand(ctx context.Context, email, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	brand, ok := s.brands[brandID]
	if !ok {
		return domainerrors.ErrBrandNotFound
	}
	if !user.Follows(brandID) {
		return domainerrors.ErrNotFollowing
	}

	user.FollowedBrand = removeString(user.FollowedBrand, brandID)
	brand.FollowersList = removeString(brand.FollowersList, user.UserID)

	return s.flush()
}

// FollowSubcategory records a sub-category follow. Following one already
// followed is a no-op.
func (s *Store) FollowSubcategory(ctx context.Context, email, subcategory string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	if user.FollowsSubcategory(subcategory) {
		return nil
	}
	user.FollowedSubcategories = append(user.FollowedSubcategories, subcategory)

	return s.flush()
}

// UnfollowSubcategory removes a sub-category follow.
func (s *Store) UnfollowSubcategory(ctx context.Context, email, subcategory string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	if !user.FollowsSubcategory(subcategory) {
		return domainerrors.ErrSubcategoryNotFollowed
	}
	user.FollowedSubcategories = removeString(user.FollowedSubcategories, subcategory)

	return s.flush()
}

// validateLogo rejects logos that are empty or not decodable base64.
func validateLogo(logo string) error {
	if logo == "" {
		return domainerrors.ErrInvalidLogo
	}
	if _, err := base64.StdEncoding.DecodeString(logo); err != nil {
		return domainerrors.ErrInvalidLogo
	}

	return nil
}

func cloneBrand(b *entity.Brand) *entity.Brand {
	c := *b
	c.ProductList = slices.Clone(b.ProductList)
	c.FollowersList = slices.Clone(b.FollowersList)

	return &c
}
