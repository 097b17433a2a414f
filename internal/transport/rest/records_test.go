package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
)

type recordServiceMock struct {
	CreateFunc     func(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error)
	GetFunc        func(ctx context.Context, recordID uuid.UUID) (recordsvc.DetailView, error)
	ListFunc       func(ctx context.Context, input recordsvc.ListInput) (recordsvc.ListResult, error)
	FinalizeFunc   func(ctx context.Context, recordID uuid.UUID) (recordsvc.View, error)
	UnlockFunc     func(ctx context.Context, recordID uuid.UUID, reason string) (recordsvc.View, error)
	EditFunc       func(ctx context.Context, recordID uuid.UUID, input recordsvc.EditInput) (recordsvc.View, error)
	DeleteFunc     func(ctx context.Context, recordID uuid.UUID) error
	AuditTrailFunc func(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error)
}

func (m *recordServiceMock) Create(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error) {
	return m.CreateFunc(ctx, input)
}

func (m *recordServiceMock) Get(ctx context.Context, recordID uuid.UUID) (recordsvc.DetailView, error) {
	return m.GetFunc(ctx, recordID)
}

func (m *recordServiceMock) List(ctx context.Context, input recordsvc.ListInput) (recordsvc.ListResult, error) {
	return m.ListFunc(ctx, input)
}

func (m *recordServiceMock) Finalize(ctx context.Context, recordID uuid.UUID) (recordsvc.View, error) {
	return m.FinalizeFunc(ctx, recordID)
}

func (m *recordServiceMock) Unlock(ctx context.Context, recordID uuid.UUID, reason string) (recordsvc.View, error) {
	return m.UnlockFunc(ctx, recordID, reason)
}

func (m *recordServiceMock) Edit(ctx context.Context, recordID uuid.UUID, input recordsvc.EditInput) (recordsvc.View, error) {
	return m.EditFunc(ctx, recordID, input)
}

func (m *recordServiceMock) Delete(ctx context.Context, recordID uuid.UUID) error {
	return m.DeleteFunc(ctx, recordID)
}

func (m *recordServiceMock) AuditTrail(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	return m.AuditTrailFunc(ctx, recordID)
}

func sampleView() recordsvc.View {
	return recordsvc.View{
		ID:                 uuid.New(),
		Status:             domain.RecordStatusDraft,
		Basis:              domain.ThresholdBasisGold,
		ThresholdValue:     decimal.RequireFromString("6561.00"),
		Currency:           "USD",
		HawlStartGregorian: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		HawlStartHijri:     "1447-09-12",
		ExpectedCompletion: time.Date(2027, 2, 18, 0, 0, 0, 0, time.UTC),
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}
}

func TestRecordsCreate(t *testing.T) {
	t.Parallel()

	var gotInput recordsvc.CreateInput
	h := NewRecordsHandler(&recordServiceMock{
		CreateFunc: func(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error) {
			gotInput = input
			return sampleView(), nil
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(`{"basis":"GOLD"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if gotInput.Basis != domain.ThresholdBasisGold {
		t.Errorf("basis: got %s", gotInput.Basis)
	}

	var resp recordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "DRAFT" || resp.HawlStartGregorian != "2026-03-01" {
		t.Errorf("response: %+v", resp)
	}
}

func TestRecordsCreate_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{}, slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsCreate_DuplicateWindow(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{
		CreateFunc: func(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error) {
			return recordsvc.View{}, domain.ErrDuplicateOpenWindow
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsGet_NotFound(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{
		GetFunc: func(ctx context.Context, recordID uuid.UUID) (recordsvc.DetailView, error) {
			return recordsvc.DetailView{}, domain.ErrNotFound
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/x", nil)
	req.SetPathValue("id", uuid.New().String())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsGet_BadID(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{}, slog.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsFinalize_InvalidTransition(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{
		FinalizeFunc: func(ctx context.Context, recordID uuid.UUID) (recordsvc.View, error) {
			return recordsvc.View{}, domain.ErrInvalidTransition
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records/x/finalize", nil)
	req.SetPathValue("id", uuid.New().String())
	rec := httptest.NewRecorder()
	h.Finalize(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsUnlock_ShortReason(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{
		UnlockFunc: func(ctx context.Context, recordID uuid.UUID, reason string) (recordsvc.View, error) {
			return recordsvc.View{}, domain.NewInsufficientJustification(10)
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records/x/unlock", strings.NewReader(`{"reason":"nah"}`))
	req.SetPathValue("id", uuid.New().String())
	rec := httptest.NewRecorder()
	h.Unlock(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsDelete(t *testing.T) {
	t.Parallel()

	h := NewRecordsHandler(&recordServiceMock{
		DeleteFunc: func(ctx context.Context, recordID uuid.UUID) error { return nil },
	}, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/records/x", nil)
	req.SetPathValue("id", uuid.New().String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRecordsList_PassesFilter(t *testing.T) {
	t.Parallel()

	var gotInput recordsvc.ListInput
	h := NewRecordsHandler(&recordServiceMock{
		ListFunc: func(ctx context.Context, input recordsvc.ListInput) (recordsvc.ListResult, error) {
			gotInput = input
			return recordsvc.ListResult{Records: []recordsvc.View{sampleView()}, Total: 1}, nil
		},
	}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records?status=FINALIZED&limit=10&offset=20&sort_by=finalized_at", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if gotInput.Status != "FINALIZED" || gotInput.Limit != 10 || gotInput.Offset != 20 || gotInput.SortBy != "finalized_at" {
		t.Errorf("input: %+v", gotInput)
	}
}
