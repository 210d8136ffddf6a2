// Package entity contains the core business objects of the project.
package entity

import "slices"

// Product status values.
const (
	ProductStatusNew     = "New"
	ProductStatusOld     = "Old"
	ProductStatusOnSale  = "On Sale"
	ProductStatusNotSale = "Not Sale"
)

// Product stock values.
const (
	StockInStock    = "In Stock"
	StockOutOfStock = "Out of Stock"
	StockReStock    = "Re-Stock"
)

// MaxProductImages bounds the number of picture URLs per product.
const MaxProductImages = 4

// Product represents a catalog product. BrandName is a denormalized copy of
// the owning brand's name, kept for listing without a brand lookup.
// WishlisterUsers mirrors the WishList sets of the users wishlisting it.
type Product struct {
	ProductID         string   `json:"product_id"`          // Unique numeric-string identifier.
	Name              string   `json:"name"`                // Product display name.
	ProductURL        string   `json:"product_url"`         // External URL of the product page.
	BrandID           string   `json:"brand_id"`            // ID of the owning brand.
	BrandName         string   `json:"brand"`               // Denormalized brand name.
	MainCategory      string   `json:"main_category"`       // e.g. "mens-shoes".
	SubCategory       string   `json:"sub_category"`        // e.g. "sneakers".
	Size              []string `json:"size"`                // "label:availability" pairs, e.g. "42:1".
	Colour            string   `json:"colour"`              // Colour name.
	Price             string   `json:"price"`               // Current price, stored as a decimal string.
	PreviousPrice     string   `json:"previous_price"`      // Price before the current sale, decimal string.
	TimeCreated       string   `json:"time_created"`        // RFC 3339 creation timestamp.
	TimeModified      string   `json:"time_modified"`       // RFC 3339 last-modification timestamp.
	Stock             string   `json:"stock"`               // One of the Stock* constants.
	Status            string   `json:"status"`              // One of the ProductStatus* constants.
	WishlisterUsers   []string `json:"wishlister_users"`    // User IDs of the customers wishlisting this product.
	PictureURLs       []string `json:"picture_urls"`        // Up to MaxProductImages image URLs.
	ClickCount        int      `json:"click_count"`         // Times the product card was clicked.
	ClickThroughCount int      `json:"click_through_count"` // Times the external product page was opened.
}

// HasWishlister reports whether the given user ID wishlists this product.
func (p *Product) HasWishlister(userID string) bool {
	return slices.Contains(p.WishlisterUsers, userID)
}
