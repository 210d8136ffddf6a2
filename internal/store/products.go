package store

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"nuovo/internal/domain/entity"
	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/util"
)

// ProductInput carries the admin-supplied fields for creating a product.
type ProductInput struct {
	Name          string
	ProductURL    string
	BrandID       string
	MainCategory  string
	SubCategory   string
	Size          []string
	Colour        string
	Price         string
	PreviousPrice string
	Stock         string
	Status        string
	PictureURLs   []string
}

// AddProduct creates a product under an existing brand and links it into the
// brand's product list. The denormalized brand name is copied at creation.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand, ok := s.brands[in.BrandID]
	if !ok {
		return nil, domainerrors.ErrBrandNotFound
	}
	if len(in.PictureURLs) > entity.MaxProductImages {
		in.PictureURLs = in.PictureURLs[:entity.MaxProductImages]
	}

	taken := make([]string, 0, len(s.products))
	for id := range s.products {
		taken = append(taken, id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	product := &entity.Product{
		ProductID:       util.GenerateID(taken),
		Name:            in.Name,
		ProductURL:      in.ProductURL,
		BrandID:         in.BrandID,
		BrandName:       brand.Name,
		MainCategory:    in.MainCategory,
		SubCategory:     in.SubCategory,
		Size:            slices.Clone(in.Size),
		Colour:          in.Colour,
		Price:           in.Price,
		PreviousPrice:   in.PreviousPrice,
		TimeCreated:     now,
		TimeModified:    now,
		Stock:           in.Stock,
		Status:          in.Status,
		WishlisterUsers: []string{},
		PictureURLs:     slices.Clone(in.PictureURLs),
	}
	s.products[product.ProductID] = product
	brand.ProductList = append(brand.ProductList, product.ProductID)

	return cloneProduct(product), s.flush()
}

// ProductUpdate carries the fields EditProduct may change. Empty strings and
// nil slices leave the current value alone.
type ProductUpdate struct {
	Name          string
	ProductURL    string
	BrandID       string
	MainCategory  string
	SubCategory   string
	Size          []string
	Colour        string
	Price         string
	PreviousPrice string
	Stock         string
	Status        string
	PictureURLs   []string
}

// EditProduct updates a product in place. Wishlister references and click
// counters survive every edit. Moving the product to another brand relinks
// both brands' product lists and refreshes the denormalized name.
func (s *Store) EditProduct(ctx context.Context, productID string, up ProductUpdate) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}

	if up.BrandID != "" && up.BrandID != product.BrandID {
		next, ok := s.brands[up.BrandID]
		if !ok {
			return nil, domainerrors.ErrBrandNotFound
		}
		if prev, ok := s.brands[product.BrandID]; ok {
			prev.ProductList = removeString(prev.ProductList, productID)
		}
		next.ProductList = append(next.ProductList, productID)
		product.BrandID = up.BrandID
		product.BrandName = next.Name
	}
	if up.Name != "" {
		product.Name = up.Name
	}
	if up.ProductURL != "" {
		product.ProductURL = up.ProductURL
	}
	if up.MainCategory != "" {
		product.MainCategory = up.MainCategory
	}
	if up.SubCategory != "" {
		product.SubCategory = up.SubCategory
	}
	if up.Size != nil {
		product.Size = slices.Clone(up.Size)
	}
	if up.Colour != "" {
		product.Colour = up.Colour
	}
	if up.Price != "" {
		product.Price = up.Price
	}
	if up.PreviousPrice != "" {
		product.PreviousPrice = up.PreviousPrice
	}
	if up.Stock != "" {
		product.Stock = up.Stock
	}
	if up.Status != "" {
		product.Status = up.Status
	}
	if up.PictureURLs != nil {
		if len(up.PictureURLs) > entity.MaxProductImages {
			up.PictureURLs = up.PictureURLs[:entity.MaxProductImages]
		}
		product.PictureURLs = slices.Clone(up.PictureURLs)
	}
	product.TimeModified = time.Now().UTC().Format(time.RFC3339)

	return cloneProduct(product), s.flush()
}

// DeleteProduct removes a product, unlinks it from its brand and from every
// wishlist, and drops its image directory. A failed image removal is logged
// but does not fail the delete.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domainerrors.ErrProductNotFound
	}

	if brand, ok := s.brands[product.BrandID]; ok {
		brand.ProductList = removeString(brand.ProductList, productID)
	}
	for _, user := range s.users {
		user.WishList = removeString(user.WishList, productID)
	}
	delete(s.products, productID)

	if err := s.images.RemoveAll(productID); err != nil {
		s.logger.Warn("failed to remove product images",
			"product_id", productID, "error", err)
	}

	return s.flush()
}

// Product returns a copy of a single product.
func (s *Store) Product(productID string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

// ProductFilter narrows and orders a product listing. List filters match on
// case-insensitive substring; Sizes matches only size labels that are marked
// available ("label:1"). MinPrice/MaxPrice of zero mean unbounded. At most
// one of the sort switches applies, checked in declaration order.
type ProductFilter struct {
	MainCategories []string
	SubCategories  []string
	Colours        []string
	BrandNames     []string
	Sizes          []string
	Statuses       []string
	Stock          string
	MinPrice       float64
	MaxPrice       float64
	Keyword        string

	SortByPopularity bool
	SortByPrice      string // "asc" or "desc"
	SortByNew        string // "asc" or "desc"
}

// ProductCard is a listing row: the product fields the catalog pages render,
// with the wishlister list collapsed to a count and prices parsed to numbers.
type ProductCard struct {
	ProductID         string   `json:"product_id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	PreviousPrice     float64  `json:"previous_price"`
	MainCategory      string   `json:"main_category"`
	SubCategory       string   `json:"sub_category"`
	BrandName         string   `json:"brand"`
	Colour            string   `json:"color"`
	Size              []string `json:"size"`
	FirstImage        string   `json:"first_image"`
	TimeCreated       string   `json:"time_created"`
	WishlisterCount   int      `json:"wishlister_count"`
	ProductURL        string   `json:"product_url"`
	Stock             string   `json:"stock"`
	Status            string   `json:"status"`
	ClickCount        int      `json:"click_count"`
	ClickThroughCount int      `json:"click_through_count"`
}

// ListProducts applies the filter and returns matching cards. An empty result
// is a NotFound, matching the catalog page contract.
func (s *Store) ListProducts(filter ProductFilter) ([]ProductCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]ProductCard, 0, len(s.products))
	for _, p := range s.products {
		if !filter.matches(p) {
			continue
		}
		cards = append(cards, productCard(p))
	}

	switch {
	case filter.SortByPopularity:
		slices.SortStableFunc(cards, func(a, b ProductCard) int {
			return b.WishlisterCount - a.WishlisterCount
		})
	case filter.SortByPrice != "":
		desc := filter.SortByPrice == "desc"
		slices.SortStableFunc(cards, func(a, b ProductCard) int {
			return orderFloat(a.Price, b.Price, desc)
		})
	case filter.SortByNew != "":
		desc := filter.SortByNew == "desc"
		slices.SortStableFunc(cards, func(a, b ProductCard) int {
			if desc {
				return strings.Compare(b.TimeCreated, a.TimeCreated)
			}

			return strings.Compare(a.TimeCreated, b.TimeCreated)
		})
	default:
		slices.SortStableFunc(cards, func(a, b ProductCard) int {
			return strings.Compare(a.ProductID, b.ProductID)
		})
	}

	if len(cards) == 0 {
		return nil, domainerrors.ErrProductNotFound
	}

	return cards, nil
}

func (f ProductFilter) matches(p *entity.Product) bool {
	if !matchesAny(f.MainCategories, p.MainCategory) {
		return false
	}
	if !matchesAny(f.SubCategories, p.SubCategory) {
		return false
	}
	if !matchesAny(f.Colours, p.Colour) {
		return false
	}
	if !matchesAny(f.BrandNames, p.BrandName) {
		return false
	}
	if len(f.Sizes) > 0 && !hasAvailableSize(p.Size, f.Sizes) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.ContainsFunc(f.Statuses, func(st string) bool {
		return strings.EqualFold(st, p.Status)
	}) {
		return false
	}
	if f.Stock != "" && !strings.EqualFold(f.Stock, p.Stock) {
		return false
	}
	price := parsePrice(p.Price)
	if f.MinPrice > 0 && price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}
	if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Keyword)) {
		return false
	}

	return true
}

// matchesAny reports whether value contains any of the wanted strings,
// case-insensitively. An empty wanted list matches everything.
func matchesAny(wanted []string, value string) bool {
	if len(wanted) == 0 {
		return true
	}
	lower := strings.ToLower(value)
	for _, w := range wanted {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}

	return false
}

// hasAvailableSize reports whether any "label:availability" entry has a
// wanted label with availability "1".
func hasAvailableSize(entries, wanted []string) bool {
	for _, entry := range entries {
		label, avail, ok := strings.Cut(entry, ":")
		if ok && avail == "1" && slices.Contains(wanted, label) {
			return true
		}
	}

	return false
}

func orderFloat(a, b float64, desc bool) int {
	if desc {
		a, b = b, a
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

func productCard(p *entity.Product) ProductCard {
	firstImage := ""
	if len(p.PictureURLs) > 0 {
		firstImage = p.PictureURLs[0]
	}

	return ProductCard{
		ProductID:         p.ProductID,
		Name:              p.Name,
		Price:             parsePrice(p.Price),
		PreviousPrice:     parsePrice(p.PreviousPrice),
		MainCategory:      p.MainCategory,
		SubCategory:       p.SubCategory,
		BrandName:         p.BrandName,
		Colour:            p.Colour,
		Size:              slices.Clone(p.Size),
		FirstImage:        firstImage,
		TimeCreated:       p.TimeCreated,
		WishlisterCount:   len(p.WishlisterUsers),
		ProductURL:        p.ProductURL,
		Stock:             p.Stock,
		Status:            p.Status,
		ClickCount:        p.ClickCount,
		ClickThroughCount: p.ClickThroughCount,
	}
}

// RecordClick increments the product card click counter.
func (s *Store) RecordClick(ctx context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return 0, domainerrors.ErrProductNotFound
	}
	product.ClickCount++

	return product.ClickCount, s.flush()
}

// RecordClickThrough increments the external page open counter.
func (s *Store) RecordClickThrough(ctx context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return 0, domainerrors.ErrProductNotFound
	}
	product.ClickThroughCount++

	return product.ClickThroughCount, s.flush()
}

// WishlistAdd records the wishlist entry on both sides of the relationship.
func (s *Store) WishlistAdd(ctx context.Context, email, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	product, ok := s.products[productID]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	if user.Wishlists(productID) {
		return domainerrors.ErrAlreadyWishlisted
	}

	user.WishList = append(user.WishList, productID)
	product.WishlisterUsers = append(product.WishlisterUsers, user.UserID)

	return s.flush()
}

// WishlistRemove removes the wishlist entry from both sides.
func (s *Store) WishlistRemove(ctx context.Context, email, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	product, ok := s.products[productID]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	if !user.Wishlists(productID) {
		return domainerrors.ErrNotWishlisted
	}

	user.WishList = removeString(user.WishList, productID)
	product.WishlisterUsers = removeString(product.WishlisterUsers, user.UserID)

	return s.flush()
}

// Wishlist returns copies of the products on the customer's wishlist, in
// wishlist order. Dangling IDs are skipped.
func (s *Store) Wishlist(email string) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(user.WishList))
	for _, id := range user.WishList {
		if p, ok := s.products[id]; ok {
			products = append(products, cloneProduct(p))
		}
	}

	return products, nil
}

// Following returns copies of the brands the customer follows, in follow
// order, along with the followed sub-category names.
func (s *Store) Following(email string) ([]*entity.Brand, []*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return nil, nil, err
	}

	brands := make([]*entity.Brand, 0, len(user.FollowedBrand))
	for _, id := range user.FollowedBrand {
		if b, ok := s.brands[id]; ok {
			brands = append(brands, cloneBrand(b))
		}
	}

	wishlist := make([]*entity.Product, 0, len(user.WishList))
	for _, id := range user.WishList {
		if p, ok := s.products[id]; ok {
			wishlist = append(wishlist, cloneProduct(p))
		}
	}

	return brands, wishlist, nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Size = slices.Clone(p.Size)
	c.WishlisterUsers = slices.Clone(p.WishlisterUsers)
	c.PictureURLs = slices.Clone(p.PictureURLs)

	return &c
}
