package recommend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/recommend"
)

type Handler struct {
	svc *recommend.Service
}

func NewHandler(svc *recommend.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts on the products subtree; the static upsells route must be
// registered alongside the wildcard ones, which chi resolves correctly.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/upsells", h.upsells)
	r.Get("/{id}/similar", h.similar)
	r.Get("/{id}/bought-together", h.boughtTogether)
}

type productSummary struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Kind         catalog.Kind `json:"kind"`
	SellingPrice int64        `json:"selling_price"`
	Featured     bool         `json:"featured"`
}

func toSummaries(products []*catalog.Product) []productSummary {
	// An empty recommendation list serializes as [], not null; the
	// storefront treats it as "no signal".
	resp := make([]productSummary, len(products))
	for i, p := range products {
		resp[i] = productSummary{
			ID:           p.ID,
			Name:         p.Name,
			Brand:        p.Brand,
			Kind:         p.Kind,
			SellingPrice: p.SellingPrice,
			Featured:     p.Featured,
		}
	}

	return resp
}

func limitParam(r *http.Request) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return 0
	}

	limit, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return limit
}

func (h *Handler) similar(w http.ResponseWriter, r *http.Request) {
	h.recommendByProduct(w, r, h.svc.Similar)
}

func (h *Handler) boughtTogether(w http.ResponseWriter, r *http.Request) {
	h.recommendByProduct(w, r, h.svc.BoughtTogether)
}

func (h *Handler) recommendByProduct(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, productID uuid.UUID, limit int) ([]*catalog.Product, error),
) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	products, err := fn(r.Context(), id, limitParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaries(products)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) upsells(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Upsells(r.Context(), limitParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaries(products)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
