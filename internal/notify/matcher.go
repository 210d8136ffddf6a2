// Package notify implements the periodic product digest: matching products
// to customers, building the digest message, emailing it and recording it as
// an in-app notification.
package notify

import "nuovo/internal/domain/entity"

// Buckets groups the names of products relevant to one customer by what
// happened to them. Slices keep product iteration order.
type Buckets struct {
	New     []string
	OnSale  []string
	ReStock []string
}

// Empty reports whether the customer has nothing to hear about.
func (b Buckets) Empty() bool {
	return len(b.New) == 0 && len(b.OnSale) == 0 && len(b.ReStock) == 0
}

// Match scans the product collection for products relevant to the user and
// sorts them into buckets. A product is relevant when the user follows its
// brand, follows its sub-category, or wishlists it. Relevant products that
// are neither new, on sale nor restocked fall into no bucket and are
// dropped.
func Match(user *entity.User, products []*entity.Product) Buckets {
	var buckets Buckets
	for _, p := range products {
		if !user.Follows(p.BrandID) && !user.FollowsSubcategory(p.SubCategory) && !user.Wishlists(p.ProductID) {
			continue
		}
		switch {
		case p.Status == entity.ProductStatusNew:
			buckets.New = append(buckets.New, p.Name)
		case p.Status == entity.ProductStatusOnSale:
			buckets.OnSale = append(buckets.OnSale, p.Name)
		case p.Stock == entity.StockReStock:
			buckets.ReStock = append(buckets.ReStock, p.Name)
		}
	}

	return buckets
}
