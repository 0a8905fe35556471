package catalog

import "fmt"

// Samples returns a full page of static placeholder books. Views fall back
// to it when the remote catalog is unreachable so the storefront is never
// empty.
func Samples() []Book {
	books := make([]Book, 0, PageSize)
	for i := 0; i < PageSize; i++ {
		id := fmt.Sprintf("fallback-%d", i)
		rating, reviews := placeholderRating(id)
		books = append(books, Book{
			ID:      id,
			Title:   fmt.Sprintf("Sample Book %d", i+1),
			Price:   fmt.Sprintf("%d.99", 20+i*3),
			Rating:  rating,
			Reviews: reviews,
			Image:   defaultImage,
		})
	}
	return books
}
