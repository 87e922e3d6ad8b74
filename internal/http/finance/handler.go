package finance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/finance"
)

type Handler struct {
	svc *finance.Service
}

func NewHandler(svc *finance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/entries", h.entries)
	r.Post("/entries", h.record)
	r.Get("/pnl", h.pnl)
	r.Get("/cashflow", h.cashFlow)
}

func daysParam(r *http.Request) int {
	s := r.URL.Query().Get("days")
	if s == "" {
		return 0
	}

	days, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return days
}

type entryResponse struct {
	ID        uuid.UUID    `json:"id"`
	Type      finance.Type `json:"type"`
	Amount    int64        `json:"amount"`
	Category  string       `json:"category"`
	Date      time.Time    `json:"date"`
	CreatedAt time.Time    `json:"created_at"`
}

func toEntryResponse(e *finance.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Type:      e.Type,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}

func toEntryResponseList(entries []*finance.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}

func (h *Handler) entries(w http.ResponseWriter, r *http.Request) {
	var typ *finance.Type

	if s := r.URL.Query().Get("type"); s != "" {
		t := finance.Type(s)
		typ = &t
	}

	entries, err := h.svc.Entries(r.Context(), typ, daysParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEntryResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recordEntryRequest struct {
	Type     finance.Type `json:"type"`
	Amount   int64        `json:"amount"`
	Category string       `json:"category"`
	Date     time.Time    `json:"date"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Record(r.Context(), finance.CreateParams{
		Type:     req.Type,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type pnlResponse struct {
	Revenue    int64                   `json:"revenue"`
	Expenses   int64                   `json:"expenses"`
	NetProfit  int64                   `json:"net_profit"`
	ByCategory []categoryTotalResponse `json:"by_category"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

func (h *Handler) pnl(w http.ResponseWriter, r *http.Request) {
	pnl, err := h.svc.ComputePnL(r.Context(), daysParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := pnlResponse{
		Revenue:    pnl.Revenue,
		Expenses:   pnl.Expenses,
		NetProfit:  pnl.NetProfit,
		ByCategory: make([]categoryTotalResponse, len(pnl.ByCategory)),
	}

	for i, ct := range pnl.ByCategory {
		resp.ByCategory[i] = categoryTotalResponse{Category: ct.Category, Amount: ct.Amount}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dayFlowResponse struct {
	Date    string `json:"date"`
	Inflow  int64  `json:"inflow"`
	Outflow int64  `json:"outflow"`
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	flows, err := h.svc.CashFlow(r.Context(), daysParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dayFlowResponse, len(flows))
	for i, f := range flows {
		resp[i] = dayFlowResponse{Date: f.Date, Inflow: f.Inflow, Outflow: f.Outflow}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
