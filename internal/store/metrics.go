package store

import (
	"slices"
	"strings"
)

// maxMetricsRows caps every metrics leaderboard.
const maxMetricsRows = 20

// CountEntry is a leaderboard row counting follows or wishlist entries.
type CountEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ClickEntry is a leaderboard row for product card clicks.
type ClickEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClickCount int    `json:"click_count"`
}

// ClickThroughEntry is a leaderboard row for external page opens.
type ClickThroughEntry struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ClickThroughCount int    `json:"click_through_count"`
}

// Metrics is the admin dashboard payload: the top twenty entries of each
// leaderboard, most popular first.
type Metrics struct {
	TopBrandsFollowed        []CountEntry        `json:"top_brands_followed"`
	TopItemsWishlisted       []CountEntry        `json:"top_items_wishlisted"`
	TopProductsClicks        []ClickEntry        `json:"top_products_clicks"`
	TopProductsClickthroughs []ClickThroughEntry `json:"top_products_clickthroughs"`
}

// Metrics computes the admin leaderboards from the live dataset. Follow and
// wishlist counts are derived from the user side of each relationship;
// products with zero clicks are left off the click boards.
func (s *Store) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	brandFollows := make(map[string]int)
	wishlisted := make(map[string]int)
	for _, user := range s.users {
		for _, brandID := range user.FollowedBrand {
			if _, ok := s.brands[brandID]; ok {
				brandFollows[brandID]++
			}
		}
		for _, productID := range user.WishList {
			if _, ok := s.products[productID]; ok {
				wishlisted[productID]++
			}
		}
	}

	topBrands := make([]CountEntry, 0, len(brandFollows))
	for id, count := range brandFollows {
		topBrands = append(topBrands, CountEntry{ID: id, Name: s.brands[id].Name, Count: count})
	}
	topWishlisted := make([]CountEntry, 0, len(wishlisted))
	for id, count := range wishlisted {
		topWishlisted = append(topWishlisted, CountEntry{ID: id, Name: s.products[id].Name, Count: count})
	}

	clicks := make([]ClickEntry, 0, len(s.products))
	clickthroughs := make([]ClickThroughEntry, 0, len(s.products))
	for id, p := range s.products {
		if p.ClickCount > 0 {
			clicks = append(clicks, ClickEntry{ID: id, Name: p.Name, ClickCount: p.ClickCount})
		}
		if p.ClickThroughCount > 0 {
			clickthroughs = append(clickthroughs, ClickThroughEntry{ID: id, Name: p.Name, ClickThroughCount: p.ClickThroughCount})
		}
	}

	slices.SortFunc(topBrands, compareCount)
	slices.SortFunc(topWishlisted, compareCount)
	slices.SortFunc(clicks, func(a, b ClickEntry) int {
		if c := b.ClickCount - a.ClickCount; c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(clickthroughs, func(a, b ClickThroughEntry) int {
		if c := b.ClickThroughCount - a.ClickThroughCount; c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return Metrics{
		TopBrandsFollowed:        truncate(topBrands),
		TopItemsWishlisted:       truncate(topWishlisted),
		TopProductsClicks:        truncate(clicks),
		TopProductsClickthroughs: truncate(clickthroughs),
	}
}

func compareCount(a, b CountEntry) int {
	if c := b.Count - a.Count; c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

func truncate[T any](entries []T) []T {
	if len(entries) > maxMetricsRows {
		return entries[:maxMetricsRows]
	}

	return entries
}
