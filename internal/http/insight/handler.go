package insight

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfontes/ohm/internal/insight"
)

type Handler struct {
	svc *insight.Service
}

func NewHandler(svc *insight.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.recommendations)
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Recommendations(r.Context())
	if err != nil {
		// Only a failed audit append lands here; the recommendations
		// themselves degrade instead of erroring.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if recs == nil {
		recs = []insight.Recommendation{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(recs); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
