package importledger

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfontes/ohm/internal/finance"
	"github.com/mfontes/ohm/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	financeSvc *finance.Service
}

func NewHandler(importSvc *importer.Service, financeSvc *finance.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		financeSvc: financeSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/ledger", h.importLedger)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importLedger(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.financeSvc.RecordBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: len(entries)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
