package cart

import "errors"

// ErrEmptyCart is the notice-class outcome of checking out an empty cart.
// It signals nothing was mutated; handlers render it as a notice, not a
// failure.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one book's quantity entry. Quantity is always >= 1; a line
// reduced to zero is removed from the collection, never stored.
type Line struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Qty   int     `json:"qty"`
}

// Receipt summarizes a successful checkout: total item count and the sum of
// price times quantity over every line, computed before the cart is cleared.
type Receipt struct {
	Items int     `json:"items"`
	Total float64 `json:"total"`
}
