package catalog

import (
	"sort"
	"strconv"
)

// Sort keys accepted in the catalog query.
const (
	SortRelevance = "relevance"
	SortTitle     = "title"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// SortBooks orders books in place by the given key. Relevance (and any
// unknown key) preserves the remote order. Sorting happens within one
// assembled page only; it never re-ranks items across pages.
func SortBooks(books []Book, key string) {
	switch key {
	case SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Title < books[j].Title
		})
	case SortPriceLow:
		sort.SliceStable(books, func(i, j int) bool {
			return parsePrice(books[i].Price) < parsePrice(books[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(books, func(i, j int) bool {
			return parsePrice(books[i].Price) > parsePrice(books[j].Price)
		})
	}
}

func parsePrice(price string) float64 {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0
	}
	return v
}
