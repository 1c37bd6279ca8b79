package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rl1809/gallery-pos/internal/adapter/backend"
	"github.com/rl1809/gallery-pos/internal/core/domain"
	"github.com/rl1809/gallery-pos/internal/core/service"
)

// HTTPHandler is the local facade a register UI drives. It owns no business
// rules; every decision lives in the checkout service.
type HTTPHandler struct {
	checkout *service.CheckoutService
	logger   zerolog.Logger
}

func NewHTTPHandler(checkout *service.CheckoutService, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		checkout: checkout,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

func (h *HTTPHandler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)
		r.Post("/catalog/refresh", h.RefreshCatalog)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddCartItem)
		r.Delete("/cart/items/{id}", h.RemoveCartItem)
		r.Get("/cart/totals", h.GetTotals)
		r.Get("/payment-options", h.GetPaymentOptions)
		r.Post("/checkout/reconcile", h.Reconcile)
		r.Post("/checkout/submit", h.Submit)
	})
	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.checkout.Catalog())
}

func (h *HTTPHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.checkout.RefreshCatalog(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type cartLineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artist       string          `json:"artist"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	PriceDisplay string          `json:"priceDisplay"`
	Quantity     int             `json:"quantity"`
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines := h.checkout.CartLines()
	out := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, cartLineResponse{
			ID:           line.Item.ID,
			Name:         line.Item.Name,
			Artist:       line.Item.Artist,
			SellingPrice: line.Item.SellingPrice,
			PriceDisplay: domain.FormatVND(line.Item.SellingPrice),
			Quantity:     line.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "itemId is required"})
		return
	}
	if err := h.checkout.AddToCart(req.ItemID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cartSize": len(h.checkout.CartLines())})
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.checkout.RemoveFromCart(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]int{"cartSize": len(h.checkout.CartLines())})
}

type totalsResponse struct {
	domain.Totals
	SubtotalDisplay string `json:"subtotalDisplay"`
	TaxDisplay      string `json:"taxDisplay"`
	TotalDisplay    string `json:"totalDisplay"`
}

func (h *HTTPHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals := h.checkout.Totals()
	writeJSON(w, http.StatusOK, totalsResponse{
		Totals:          totals,
		SubtotalDisplay: domain.FormatVND(totals.Subtotal),
		TaxDisplay:      domain.FormatVND(totals.Tax),
		TotalDisplay:    domain.FormatVND(totals.Total),
	})
}

func (h *HTTPHandler) GetPaymentOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.checkout.LoadPaymentOptions(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

type reconcileRequest struct {
	Method   domain.PaymentMethod `json:"method"`
	Tendered decimal.Decimal      `json:"tendered"`
}

type reconcileResponse struct {
	*service.Reconciliation
	ChangeDisplay string `json:"changeDisplay"`
}

func (h *HTTPHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Method != domain.PaymentCash && req.Method != domain.PaymentQR {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "method must be cash or qr"})
		return
	}

	rec, err := h.checkout.Reconcile(req.Method, req.Tendered)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reconcileResponse{
		Reconciliation: rec,
		ChangeDisplay:  domain.FormatVND(rec.Change),
	})
}

type submitRequest struct {
	CustomerID string `json:"customerId"`
}

type submitResponse struct {
	OrderID string `json:"orderId"`
}

func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	orderID, err := h.checkout.Submit(r.Context(), req.CustomerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{OrderID: orderID})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var subErr *backend.SubmissionError
	switch {
	case errors.Is(err, domain.ErrDuplicateItem),
		errors.Is(err, service.ErrDuplicateSubmission):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrItemUnavailable):
		status = http.StatusGone
	case errors.Is(err, service.ErrUnknownItem):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingCustomer),
		errors.Is(err, service.ErrPaymentNotReconciled):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, backend.ErrCatalogUnavailable):
		status = http.StatusBadGateway
	case errors.As(err, &subErr):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("unexpected error")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
