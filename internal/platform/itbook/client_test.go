package itbook

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("geekynerds-test/1.0", 100, srv.URL)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/golang/2", r.URL.Path)
		fmt.Fprint(w, `{
			"error": "0",
			"total": "584",
			"page": "2",
			"books": [
				{"title": "Go in Action", "subtitle": "", "isbn13": "9781617291784", "price": "$35.99", "image": "https://itbook.store/img/books/9781617291784.png", "url": "https://itbook.store/books/9781617291784"},
				{"title": "The Go Programming Language", "isbn13": "9780134190440", "price": "$28.89", "image": "img.png", "url": "u"}
			]
		}`)
	})

	res, err := client.Search(context.Background(), "golang", 2)
	require.NoError(t, err)

	assert.Equal(t, 584, res.Total)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Books, 2)
	assert.Equal(t, "9781617291784", res.Books[0].ISBN13)
	assert.Equal(t, "Go in Action", res.Books[0].Title)
	assert.Equal(t, "$35.99", res.Books[0].Price)
}

func TestSearch_NumericTotals(t *testing.T) {
	// Some endpoints return numbers where others return strings.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": 42, "page": 1, "books": []}`)
	})

	res, err := client.Search(context.Background(), "golang", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Books)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewClient("geekynerds-test/1.0", 100)

	_, err := client.Search(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_UpstreamStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	})

	_, err := client.Search(context.Background(), "golang", 1)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestSearch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := NewClientWithBaseURL("geekynerds-test/1.0", 100, srv.URL)

	_, err := client.Search(context.Background(), "golang", 1)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestBook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/9781617291784", r.URL.Path)
		fmt.Fprint(w, `{
			"error": "0",
			"title": "Go in Action",
			"subtitle": "",
			"authors": "William Kennedy",
			"publisher": "Manning",
			"isbn13": "9781617291784",
			"pages": "300",
			"year": "2015",
			"rating": "4",
			"desc": "desc",
			"price": "$35.99",
			"image": "img.png",
			"url": "u"
		}`)
	})

	d, err := client.Book(context.Background(), "9781617291784")
	require.NoError(t, err)

	assert.Equal(t, "Go in Action", d.Title)
	assert.Equal(t, "William Kennedy", d.Authors)
	assert.Equal(t, "4", d.Rating)
	assert.NotEmpty(t, d.Raw, "raw payload must be preserved for detail consumers")
}

func TestBook_EmptyISBN(t *testing.T) {
	client := NewClient("geekynerds-test/1.0", 100)

	_, err := client.Book(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyISBN)
}

func TestBook_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Book(context.Background(), "0000000000000")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func TestNew(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/new", r.URL.Path)
		fmt.Fprint(w, `{
			"error": "0",
			"total": "20",
			"books": [
				{"title": "A", "isbn13": "1", "price": "$1.00"},
				{"title": "B", "isbn": "2", "price": "$2.00"}
			]
		}`)
	})

	books, err := client.New(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "1", books[0].ISBN13)
	// isbn falls back when isbn13 is absent
	assert.Equal(t, "2", books[1].ISBN13)
}

func TestSearch_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": "0", "page": "1", "books": []}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "golang", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
