package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"geekynerds/internal/platform/itbook"
)

// PageSize is the number of cards shown per catalog page. The remote search
// API pages by itbook.PageSize (10), so assembling one catalog page can take
// up to two consecutive remote pages.
const PageSize = 12

// Query is the catalog view state carried in the address-bar parameters.
type Query struct {
	Term     string
	Category string
	Sort     string
	Page     int
}

// Page is one assembled catalog page. Total is the remote's reported match
// count for searches (approximate when the remote's own total is) and the
// batch length for the new-releases source.
type Page struct {
	Books      []Book `json:"books"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// Source is the remote catalog the assembler reads from. *itbook.Client
// satisfies it.
type Source interface {
	Search(ctx context.Context, query string, page int) (itbook.SearchResult, error)
	Book(ctx context.Context, isbn13 string) (itbook.Detail, error)
	New(ctx context.Context) ([]itbook.Book, error)
}

type Service struct {
	src    Source
	logger *zap.Logger
}

func NewService(src Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{src: src, logger: logger}
}

// Browse assembles the catalog page for q. Search terms win over categories;
// with neither, the page is sliced out of the new-releases batch.
func (s *Service) Browse(ctx context.Context, q Query) (Page, error) {
	pageNum := q.Page
	if pageNum < 1 {
		pageNum = 1
	}
	start := (pageNum - 1) * PageSize

	term := strings.TrimSpace(q.Term)
	if term == "" {
		term = CategoryQuery(q.Category)
	}

	var (
		window []itbook.Book
		total  int
		err    error
	)
	if term != "" {
		window, total, err = s.searchWindow(ctx, term, start)
	} else {
		var batch []itbook.Book
		batch, err = s.src.New(ctx)
		if err == nil {
			window = sliceWindow(batch, start, PageSize)
			total = len(batch)
		}
	}
	if err != nil {
		return Page{}, err
	}

	books := make([]Book, 0, len(window))
	for i, b := range window {
		books = append(books, fromSummary(b, i))
	}
	SortBooks(books, q.Sort)

	return Page{
		Books:      books,
		Total:      total,
		Page:       pageNum,
		TotalPages: totalPages(total),
	}, nil
}

// searchWindow fetches the remote page covering the zero-based offset start,
// pulls exactly one more consecutive page when the first cannot cover a full
// catalog page, and slices the concatenation down to the requested window.
func (s *Service) searchWindow(ctx context.Context, term string, start int) ([]itbook.Book, int, error) {
	first := start/itbook.PageSize + 1

	p1, err := s.src.Search(ctx, term, first)
	if err != nil {
		return nil, 0, err
	}

	combined := append([]itbook.Book(nil), p1.Books...)
	if len(combined) < start%itbook.PageSize+PageSize {
		p2, err := s.src.Search(ctx, term, first+1)
		if err != nil {
			// Partial pages are valid at the tail of a result set; serve
			// what we have instead of failing the whole page.
			s.logger.Warn("second search page unavailable",
				zap.String("term", term),
				zap.Int("page", first+1),
				zap.Error(err))
		} else {
			combined = append(combined, p2.Books...)
		}
	}

	localStart := start - (first-1)*itbook.PageSize
	window := sliceWindow(combined, localStart, PageSize)

	total := p1.Total
	if total == 0 {
		total = len(window) + (first-1)*itbook.PageSize
	}
	return window, total, nil
}

// NewReleases returns the full new-releases batch in card shape, used by the
// landing sections.
func (s *Service) NewReleases(ctx context.Context) ([]Book, error) {
	batch, err := s.src.New(ctx)
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(batch))
	for i, b := range batch {
		books = append(books, fromSummary(b, i))
	}
	return books, nil
}

// Detail fetches one title by isbn, raw payload included.
func (s *Service) Detail(ctx context.Context, isbn13 string) (itbook.Detail, error) {
	return s.src.Book(ctx, isbn13)
}

func sliceWindow(items []itbook.Book, start, n int) []itbook.Book {
	if start >= len(items) {
		return nil
	}
	end := start + n
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func totalPages(total int) int {
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
