package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
)

type recordService interface {
	Create(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error)
	Get(ctx context.Context, recordID uuid.UUID) (recordsvc.DetailView, error)
	List(ctx context.Context, input recordsvc.ListInput) (recordsvc.ListResult, error)
	Finalize(ctx context.Context, recordID uuid.UUID) (recordsvc.View, error)
	Unlock(ctx context.Context, recordID uuid.UUID, reason string) (recordsvc.View, error)
	Edit(ctx context.Context, recordID uuid.UUID, input recordsvc.EditInput) (recordsvc.View, error)
	Delete(ctx context.Context, recordID uuid.UUID) error
	AuditTrail(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error)
}

// RecordsHandler serves the nisab year record endpoints.
type RecordsHandler struct {
	svc recordService
	log *slog.Logger
}

// NewRecordsHandler creates a RecordsHandler.
func NewRecordsHandler(svc recordService, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{svc: svc, log: logger.With("handler", "records")}
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type createRecordRequest struct {
	Basis string `json:"basis"`
}

type unlockRequest struct {
	Reason string `json:"reason"`
}

type editRequest struct {
	WealthTotal decimal.Decimal `json:"wealth_total"`
}

type recordResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`

	Basis          string          `json:"basis"`
	ThresholdValue decimal.Decimal `json:"threshold_value"`
	Currency       string          `json:"currency"`

	HawlStartGregorian string  `json:"hawl_start_gregorian"`
	HawlStartHijri     string  `json:"hawl_start_hijri"`
	ExpectedCompletion string  `json:"expected_completion"`
	CompletionHijri    *string `json:"completion_hijri,omitempty"`

	FinalizedAt     *time.Time              `json:"finalized_at,omitempty"`
	WealthTotal     *decimal.Decimal        `json:"wealth_total,omitempty"`
	Breakdown       []domain.CategoryAmount `json:"breakdown,omitempty"`
	ObligationValue *decimal.Decimal        `json:"obligation_value,omitempty"`
	UnlockReason    *string                 `json:"unlock_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type auditEntryResponse struct {
	ID        uuid.UUID           `json:"id"`
	EventType string              `json:"event_type"`
	Changes   domain.AuditChanges `json:"changes"`
	CreatedAt time.Time           `json:"created_at"`
}

type recordDetailResponse struct {
	recordResponse
	Audit []auditEntryResponse `json:"audit"`
}

type recordListResponse struct {
	Records []recordResponse `json:"records"`
	Total   int              `json:"total"`
}

func toRecordResponse(v recordsvc.View) recordResponse {
	return recordResponse{
		ID:                 v.ID,
		Status:             v.Status.String(),
		Basis:              v.Basis.String(),
		ThresholdValue:     v.ThresholdValue,
		Currency:           v.Currency,
		HawlStartGregorian: v.HawlStartGregorian.Format(time.DateOnly),
		HawlStartHijri:     v.HawlStartHijri,
		ExpectedCompletion: v.ExpectedCompletion.Format(time.DateOnly),
		CompletionHijri:    v.CompletionHijri,
		FinalizedAt:        v.FinalizedAt,
		WealthTotal:        v.WealthTotal,
		Breakdown:          v.Breakdown,
		ObligationValue:    v.ObligationValue,
		UnlockReason:       v.UnlockReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toAuditResponses(entries []domain.AuditEntry) []auditEntryResponse {
	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditEntryResponse{
			ID:        e.ID,
			EventType: e.EventType.String(),
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Create handles POST /api/v1/records.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.Create(r.Context(), recordsvc.CreateInput{
		Basis: domain.ThresholdBasis(req.Basis),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(view))
}

// List handles GET /api/v1/records.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := recordsvc.ListInput{
		Status:    q.Get("status"),
		Basis:     q.Get("basis"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	input.Limit, _ = strconv.Atoi(q.Get("limit"))
	input.Offset, _ = strconv.Atoi(q.Get("offset"))

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := recordListResponse{
		Records: make([]recordResponse, 0, len(result.Records)),
		Total:   result.Total,
	}
	for _, v := range result.Records {
		resp.Records = append(resp.Records, toRecordResponse(v))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/records/{id}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Get(r.Context(), recordID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recordDetailResponse{
		recordResponse: toRecordResponse(detail.View),
		Audit:          toAuditResponses(detail.Audit),
	})
}

// Finalize handles POST /api/v1/records/{id}/finalize.
func (h *RecordsHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Finalize(r.Context(), recordID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(view))
}

// Unlock handles POST /api/v1/records/{id}/unlock.
func (h *RecordsHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.Unlock(r.Context(), recordID, req.Reason)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(view))
}

// Edit handles PATCH /api/v1/records/{id}.
func (h *RecordsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.Edit(r.Context(), recordID, recordsvc.EditInput{
		WealthTotal: req.WealthTotal,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(view))
}

// Delete handles DELETE /api/v1/records/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), recordID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuditTrail handles GET /api/v1/records/{id}/audit.
func (h *RecordsHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	recordID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.AuditTrail(r.Context(), recordID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": toAuditResponses(entries)})
}

func (h *RecordsHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return uuid.Nil, false
	}
	return id, true
}
