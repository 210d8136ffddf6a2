// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
//
// The JSON tags on every entity match the on-disk database format verbatim;
// the persistence gateway serializes these structs as-is.
package entity

import "slices"

// User account statuses.
const (
	StatusLogin  = "login"
	StatusLogout = "logout"
)

// User represents a single account, keyed by email in the store.
//
// Admin accounts carry no relationship state: FollowedBrand, WishList and
// Notifications are nil for admins and always non-nil (possibly empty) for
// customers. The store maintains this invariant on registration.
type User struct {
	UserID                string         `json:"user_id"`                          // Unique numeric-string identifier.
	Name                  string         `json:"name"`                             // Display name.
	Email                 string         `json:"email"`                            // Primary key; also the login identifier.
	Password              string         `json:"password"`                         // Stored as plaintext, matching the legacy database format.
	IsAdmin               bool           `json:"is_admin"`                         // Admins manage the catalog; customers follow and wishlist.
	Status                string         `json:"status"`                           // "login" or "logout".
	FollowedBrand         []string       `json:"followed_brand"`                   // Brand IDs the customer follows (nil for admins).
	WishList              []string       `json:"wish_list"`                        // Product IDs on the customer's wishlist (nil for admins).
	Notifications         []Notification `json:"notifications"`                    // Digest notifications, owned by this user (nil for admins).
	FollowedSubcategories []string       `json:"followed_subcategories,omitempty"` // Sub-category names the customer follows.
}

// IsCustomer reports whether the user participates in following, wishlists
// and notifications.
func (u *User) IsCustomer() bool {
	return !u.IsAdmin
}

// Follows reports whether the user follows the given brand.
func (u *User) Follows(brandID string) bool {
	return slices.Contains(u.FollowedBrand, brandID)
}

// FollowsSubcategory reports whether the user follows the given sub-category.
func (u *User) FollowsSubcategory(subcategory string) bool {
	return slices.Contains(u.FollowedSubcategories, subcategory)
}

// Wishlists reports whether the given product is on the user's wishlist.
func (u *User) Wishlists(productID string) bool {
	return slices.Contains(u.WishList, productID)
}
