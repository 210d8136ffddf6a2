// Package entity contains the core business objects of the project.
package entity

import "slices"

// Brand represents a catalog brand. Products reference it by BrandID and the
// brand mirrors that relationship in ProductList; FollowersList mirrors the
// FollowedBrand sets of the users following it.
type Brand struct {
	BrandID       string   `json:"brand_id"`       // Unique numeric-string identifier.
	Name          string   `json:"name"`           // Brand display name.
	Description   string   `json:"description"`    // Free-text description.
	Logo          string   `json:"logo"`           // Base64-encoded logo image data.
	ProductList   []string `json:"product_list"`   // IDs of the products belonging to this brand.
	FollowersList []string `json:"followers_list"` // User IDs of the customers following this brand.
}

// HasFollower reports whether the given user ID is in the followers list.
func (b *Brand) HasFollower(userID string) bool {
	return slices.Contains(b.FollowersList, userID)
}
