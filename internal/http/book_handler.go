package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"geekynerds/internal/catalog"
	"geekynerds/internal/httpx"
	"geekynerds/internal/platform/itbook"
)

// Catalog is the slice of the catalog service the handlers need.
type Catalog interface {
	Browse(ctx context.Context, q catalog.Query) (catalog.Page, error)
	NewReleases(ctx context.Context) ([]catalog.Book, error)
	Detail(ctx context.Context, isbn13 string) (itbook.Detail, error)
}

type BookHandler struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewBookHandler(c Catalog, logger *zap.Logger) *BookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookHandler{catalog: c, logger: logger}
}

// List serves one assembled catalog page. Query parameters mirror the
// address-bar contract: q, category, sort, page.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := catalog.Query{
		Term:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if q.Page < 1 {
		q.Page = 1
	}

	page, err := h.catalog.Browse(ctx, q)
	meta := map[string]interface{}{
		"page":      q.Page,
		"page_size": catalog.PageSize,
	}
	if err != nil {
		// The storefront always shows something: serve the sample page and
		// let the client render its error panel from the meta.
		h.logger.Warn("catalog browse failed, serving fallback",
			zap.String("q", q.Term),
			zap.String("category", q.Category),
			zap.Error(err))

		samples := catalog.Samples()
		catalog.SortBooks(samples, q.Sort)
		meta["total"] = len(samples)
		meta["total_pages"] = 1
		meta["fallback"] = true
		meta["error"] = err.Error()
		httpx.JSONSuccessWithRequest(r, w, samples, meta)
		return
	}

	meta["total"] = page.Total
	meta["total_pages"] = page.TotalPages
	httpx.JSONSuccessWithRequest(r, w, page.Books, meta)
}

// GetByISBN serves one book's detail by ISBN-13.
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// crude path param extraction with net/http's ServeMux
	// /books/{isbn}
	const prefix = "/books/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	isbn := strings.TrimPrefix(r.URL.Path, prefix)
	if isbn == "" || strings.Contains(isbn, "/") {
		http.NotFound(w, r)
		return
	}

	req := struct {
		ISBN string `validate:"required,isbn"`
	}{ISBN: isbn}
	if verrs := ValidateStruct(req); verrs != nil {
		details := make([]httpx.ErrorDetail, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, httpx.ErrorDetail{Field: e.Field, Message: e.Message})
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_isbn", "Invalid ISBN", details)
		return
	}

	detail, err := h.catalog.Detail(ctx, isbn)
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, detail, nil)
}

// New serves the new-releases batch used by the landing sections.
func (h *BookHandler) New(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.NewReleases(r.Context())
	if err != nil {
		h.logger.Warn("new releases fetch failed, serving fallback", zap.Error(err))
		httpx.JSONSuccessWithRequest(r, w, catalog.Samples(), map[string]interface{}{
			"fallback": true,
			"error":    err.Error(),
		})
		return
	}
	httpx.JSONSuccessWithRequest(r, w, books, nil)
}

// Categories serves the fixed category table.
func (h *BookHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccessWithRequest(r, w, catalog.Categories, nil)
}

func (h *BookHandler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *itbook.StatusError
	switch {
	case errors.Is(err, itbook.ErrEmptyISBN):
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_isbn", "ISBN is required", nil)
	case errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound:
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "not_found", "Book not found", nil)
	default:
		h.logger.Warn("book detail fetch failed", zap.Error(err))
		httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "upstream_error", "Book catalog unavailable", nil)
	}
}
