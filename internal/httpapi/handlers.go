package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-state/internal/domain"
)

const maxBodyBytes = 1 << 16

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, toProductViews(h.catalog.Products()))
}

func (h *handler) getDisplay(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.display)
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, toCartView(h.cart.Snapshot()))
}

func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("productId is empty"))
		return
	}

	product, ok := h.catalog.Lookup(req.ProductID)
	if !ok {
		h.writeError(w, http.StatusNotFound, fmt.Errorf("product[%s] not found", req.ProductID))
		return
	}

	h.cart.AddItem(product.CartItem())

	h.writeJSON(w, http.StatusOK, toCartView(h.cart.Snapshot()))
}

func (h *handler) removeItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(domain.CartItem{ID: chi.URLParam(r, "id")})

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart()

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, toSessionView(h.session.Snapshot()))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.session.Login(req.Username)

	h.writeJSON(w, http.StatusOK, toSessionView(h.session.Snapshot()))
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()

	h.writeJSON(w, http.StatusOK, toSessionView(h.session.Snapshot()))
}

func (h *handler) setPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.PreferDarkMode == nil {
		h.writeError(w, http.StatusBadRequest, errors.New("preferDarkMode is missing"))
		return
	}

	h.session.SetPreferDarkMode(*req.PreferDarkMode)

	h.writeJSON(w, http.StatusOK, toSessionView(h.session.Snapshot()))
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", slog.Any("err", err))
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
