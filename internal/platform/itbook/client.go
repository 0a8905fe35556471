package itbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// PageSize is the number of items the remote search endpoint returns per
// page. It is imposed by the service and not caller controlled.
const PageSize = 10

const defaultBaseURL = "https://api.itbook.store/1.0"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(userAgent string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   defaultBaseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// NewClientWithBaseURL points the client at an alternative host. Used by
// tests and by deployments fronting the API with a cache.
func NewClientWithBaseURL(userAgent string, rps int, baseURL string) *Client {
	c := NewClient(userAgent, rps)
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Book is the normalized summary shape shared by search and new-release
// results. Fields missing from the remote payload stay empty strings.
type Book struct {
	ISBN13   string `json:"isbn13"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

// Detail is the single-book shape. Raw keeps the unmodified remote payload
// for callers that need fields beyond the normalized set.
type Detail struct {
	Book
	Authors   string          `json:"authors"`
	Publisher string          `json:"publisher"`
	Pages     string          `json:"pages"`
	Year      string          `json:"year"`
	Rating    string          `json:"rating"`
	Desc      string          `json:"desc"`
	Raw       json.RawMessage `json:"-"`
}

// SearchResult is one remote page of search matches. Total is the remote's
// own (possibly approximate) match count.
type SearchResult struct {
	Total int
	Page  int
	Books []Book
}

// flexInt decodes the remote's numeric fields, which arrive as either JSON
// strings ("584") or numbers depending on the endpoint.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			*n = 0
			return nil
		}
		*n = flexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

type searchPayload struct {
	Total flexInt `json:"total"`
	Page  flexInt `json:"page"`
	Books []struct {
		ISBN13   string `json:"isbn13"`
		ISBN     string `json:"isbn"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Price    string `json:"price"`
		Image    string `json:"image"`
		URL      string `json:"url"`
	} `json:"books"`
}

func (p searchPayload) summaries() []Book {
	books := make([]Book, 0, len(p.Books))
	for _, b := range p.Books {
		isbn := b.ISBN13
		if isbn == "" {
			isbn = b.ISBN
		}
		books = append(books, Book{
			ISBN13:   isbn,
			Title:    b.Title,
			Subtitle: b.Subtitle,
			Price:    b.Price,
			Image:    b.Image,
			URL:      b.URL,
		})
	}
	return books
}

// Search queries the remote catalog by term. The remote pages by PageSize;
// page is 1-based.
func (c *Client) Search(ctx context.Context, query string, page int) (SearchResult, error) {
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	u := fmt.Sprintf("%s/search/%s/%d", c.baseURL, url.PathEscape(query), page)

	var payload searchPayload
	if err := c.get(ctx, u, &payload); err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Total: int(payload.Total),
		Page:  int(payload.Page),
		Books: payload.summaries(),
	}
	if result.Page == 0 {
		result.Page = page
	}
	return result, nil
}

// Book fetches one title by ISBN-13 and returns the normalized detail plus
// the raw remote payload.
func (c *Client) Book(ctx context.Context, isbn13 string) (Detail, error) {
	if isbn13 == "" {
		return Detail{}, ErrEmptyISBN
	}

	u := fmt.Sprintf("%s/books/%s", c.baseURL, url.PathEscape(isbn13))

	raw, err := c.getRaw(ctx, u)
	if err != nil {
		return Detail{}, err
	}

	var d Detail
	if err := json.Unmarshal(raw, &d); err != nil {
		return Detail{}, fmt.Errorf("itbook: decode book %s: %w", isbn13, err)
	}
	if d.ISBN13 == "" {
		d.ISBN13 = isbn13
	}
	d.Raw = raw
	return d, nil
}

// New returns the remote's newly-released batch. The endpoint has no
// pagination; it is one fixed list.
func (c *Client) New(ctx context.Context) ([]Book, error) {
	u := c.baseURL + "/new"

	var payload searchPayload
	if err := c.get(ctx, u, &payload); err != nil {
		return nil, err
	}
	return payload.summaries(), nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	raw, err := c.getRaw(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("itbook: decode response: %w", err)
	}
	return nil
}

// getRaw performs one GET. No retries; callers fall back to local sample
// data on failure.
func (c *Client) getRaw(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
