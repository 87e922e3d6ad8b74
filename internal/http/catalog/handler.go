package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/rotation"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/rotation", h.rotation)
}

func (h *Handler) InventoryRoutes(r chi.Router) {
	r.Get("/snapshot", h.snapshot)
}

type createProductRequest struct {
	CategoryID    uuid.UUID    `json:"category_id"`
	Name          string       `json:"name"`
	Brand         string       `json:"brand"`
	Kind          catalog.Kind `json:"kind"`
	PurchasePrice int64        `json:"purchase_price"`
	SellingPrice  int64        `json:"selling_price"`
	Quantity      int          `json:"quantity"`
	LowStockAt    int          `json:"low_stock_at"`
	Featured      bool         `json:"featured"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), catalog.CreateParams{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Brand:         req.Brand,
		Kind:          req.Kind,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Quantity:      req.Quantity,
		LowStockAt:    req.LowStockAt,
		Featured:      req.Featured,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ListFilter{}

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = &id
		}
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		k := catalog.Kind(s)
		filter.Kind = &k
	}

	if s := r.URL.Query().Get("active"); s != "" {
		if active, err := strconv.ParseBool(s); err == nil {
			filter.Active = &active
		}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil {
			filter.Limit = limit
		}
	}

	products, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(products)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateProductRequest struct {
	Name          *string       `json:"name,omitempty"`
	Brand         *string       `json:"brand,omitempty"`
	Kind          *catalog.Kind `json:"kind,omitempty"`
	PurchasePrice *int64        `json:"purchase_price,omitempty"`
	SellingPrice  *int64        `json:"selling_price,omitempty"`
	Quantity      *int          `json:"quantity,omitempty"`
	LowStockAt    *int          `json:"low_stock_at,omitempty"`
	Active        *bool         `json:"active,omitempty"`
	Featured      *bool         `json:"featured,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Brand != nil {
		p.Brand = *req.Brand
	}

	if req.Kind != nil {
		p.Kind = *req.Kind
	}

	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}

	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}

	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}

	if req.LowStockAt != nil {
		p.LowStockAt = *req.LowStockAt
	}

	if req.Active != nil {
		p.Active = *req.Active
	}

	if req.Featured != nil {
		p.Featured = *req.Featured
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type rotationResponse struct {
	ProductID uuid.UUID      `json:"product_id"`
	Label     rotation.Label `json:"label"`
}

func (h *Handler) rotation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rotationResponse{
		ProductID: p.ID,
		Label:     rotation.Detect(p, time.Now()),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.TakeSnapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSnapshotResponse(snap)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
