package catalog

import (
	"fmt"
	"hash/fnv"
	"strings"

	"geekynerds/internal/platform/itbook"
)

// Book is the storefront's card shape. Every field is concrete; remote
// payloads with missing fields fall back to the defaults applied in
// fromSummary rather than leaking empties into consumers.
type Book struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Price   string  `json:"price"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
	Image   string  `json:"image"`
	URL     string  `json:"url,omitempty"`
}

const (
	defaultTitle = "Untitled"
	defaultPrice = "0.00"
	defaultImage = "/books/9781484206485.png"
)

// fromSummary maps one remote summary into the card shape. idx is the item's
// position within the assembled page, used only to synthesize an id when the
// remote omits the isbn.
func fromSummary(b itbook.Book, idx int) Book {
	id := b.ISBN13
	if id == "" {
		id = fmt.Sprintf("book-%d", idx)
	}

	title := b.Title
	if title == "" {
		title = defaultTitle
	}

	image := b.Image
	if image == "" {
		image = defaultImage
	}

	url := b.URL
	if url == "" && b.ISBN13 != "" {
		url = "https://itbook.store/books/" + b.ISBN13
	}

	rating, reviews := placeholderRating(id)

	return Book{
		ID:      id,
		Title:   title,
		Price:   cleanPrice(b.Price),
		Rating:  rating,
		Reviews: reviews,
		Image:   image,
		URL:     url,
	}
}

// cleanPrice strips currency symbols and any other non-numeric characters,
// leaving a plain decimal string ("$64.99" -> "64.99").
func cleanPrice(price string) string {
	var sb strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return defaultPrice
	}
	return sb.String()
}

// placeholderRating derives a stable rating and review count from the book
// id. The remote catalog does not publish ratings, so cards carry a
// deterministic placeholder in the 4.0-5.0 / 50-249 ranges.
func placeholderRating(id string) (float64, int) {
	h := fnv.New32a()
	h.Write([]byte(id))
	sum := h.Sum32()

	rating := 4.0 + float64(sum%11)/10.0
	reviews := 50 + int((sum/11)%200)
	return rating, reviews
}
