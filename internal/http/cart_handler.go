package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"geekynerds/internal/cart"
	"geekynerds/internal/httpx"
)

type CartHandler struct {
	store  *cart.Store
	logger *zap.Logger
}

func NewCartHandler(store *cart.Store, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{store: store, logger: logger}
}

type AddItemRequest struct {
	ID    string  `json:"id" validate:"required,max=64"`
	Title string  `json:"title" validate:"required,max=256"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image" validate:"max=512"`
}

type SetQuantityRequest struct {
	Qty int `json:"qty" validate:"gte=0"`
}

// Get serves the full collection plus the derived badge count and subtotal.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	lines := h.store.Lines()
	httpx.JSONSuccessWithRequest(r, w, map[string]interface{}{
		"items":    lines,
		"count":    h.store.Count(),
		"subtotal": h.store.Subtotal(),
	}, nil)
}

// AddItem handles POST /cart/items: upsert-increment by id.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON", nil)
		return
	}
	if details := validationDetails(req); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "validation_failed", "Invalid cart item", details)
		return
	}

	h.store.Add(r.Context(), req.ID, req.Title, req.Price, req.Image)
	h.writeCart(w, r)
}

// SetQuantity handles PATCH /cart/items/{id}. Quantity zero removes the
// line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON", nil)
		return
	}
	if details := validationDetails(req); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "validation_failed", "Invalid quantity", details)
		return
	}

	h.store.SetQuantity(r.Context(), id, req.Qty)
	h.writeCart(w, r)
}

// RemoveItem handles DELETE /cart/items/{id}. Idempotent.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.store.Remove(r.Context(), id)
	httpx.JSONSuccessNoContent(w)
}

// Checkout handles POST /cart/checkout. An empty cart yields a notice
// outcome, not an error; otherwise the receipt is returned and the cart is
// cleared.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.store.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			httpx.JSONSuccessWithRequest(r, w, map[string]interface{}{
				"outcome": "notice",
				"message": "Your cart is empty.",
			}, nil)
			return
		}
		h.logger.Error("checkout failed", zap.Error(err))
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "checkout_failed", "Checkout failed", nil)
		return
	}

	httpx.JSONSuccessWithRequest(r, w, map[string]interface{}{
		"outcome": "success",
		"items":   receipt.Items,
		"total":   receipt.Total,
		"message": fmt.Sprintf("Purchase successful: %d item(s) purchased. Total: $%.2f. Thank you!", receipt.Items, receipt.Total),
	}, nil)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccessWithRequest(r, w, map[string]interface{}{
		"items":    h.store.Lines(),
		"count":    h.store.Count(),
		"subtotal": h.store.Subtotal(),
	}, nil)
}

// itemID extracts the line id from /cart/items/{id}.
func itemID(r *http.Request) (string, bool) {
	const prefix = "/cart/items/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func validationDetails(s interface{}) []httpx.ErrorDetail {
	verrs := ValidateStruct(s)
	if verrs == nil {
		return nil
	}
	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, httpx.ErrorDetail{Field: e.Field, Message: e.Message})
	}
	return details
}
