package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// View is a record with its encrypted snapshot fields opened for the owner.
type View struct {
	ID     uuid.UUID
	Status domain.RecordStatus

	Basis          domain.ThresholdBasis
	ThresholdValue decimal.Decimal
	Currency       string

	HawlStartGregorian time.Time
	HawlStartHijri     string
	ExpectedCompletion time.Time
	CompletionHijri    *string
	FinalizedAt        *time.Time

	WealthTotal     *decimal.Decimal
	Breakdown       []domain.CategoryAmount
	ObligationValue *decimal.Decimal
	UnlockReason    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetailView is a record view paired with its full ordered audit trail.
type DetailView struct {
	View
	Audit []domain.AuditEntry
}

// ListResult is one page of the user's records.
type ListResult struct {
	Records []View
	Total   int
}

// view decrypts the snapshot fields of a record.
func (s *Service) view(rec *domain.NisabYearRecord) (View, error) {
	v := View{
		ID:                 rec.ID,
		Status:             rec.Status,
		Basis:              rec.Basis,
		ThresholdValue:     rec.ThresholdValue,
		Currency:           rec.Currency,
		HawlStartGregorian: rec.HawlStartGregorian,
		HawlStartHijri:     rec.HawlStartHijri,
		ExpectedCompletion: rec.ExpectedCompletion,
		CompletionHijri:    rec.CompletionHijri,
		FinalizedAt:        rec.FinalizedAt,
		ObligationValue:    rec.ObligationValue,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}

	if len(rec.WealthTotalEnc) > 0 {
		total, err := s.decryptAmount(rec.WealthTotalEnc)
		if err != nil {
			return View{}, fmt.Errorf("record %s: wealth total: %w", rec.ID, err)
		}
		v.WealthTotal = &total
	}

	if len(rec.BreakdownEnc) > 0 {
		raw, err := s.box.Decrypt(rec.BreakdownEnc)
		if err != nil {
			return View{}, fmt.Errorf("record %s: breakdown: %w", rec.ID, err)
		}
		if err := json.Unmarshal(raw, &v.Breakdown); err != nil {
			return View{}, fmt.Errorf("record %s: breakdown: %w", rec.ID, err)
		}
	}

	if len(rec.UnlockReasonEnc) > 0 {
		reason, err := s.box.DecryptString(rec.UnlockReasonEnc)
		if err != nil {
			return View{}, fmt.Errorf("record %s: unlock reason: %w", rec.ID, err)
		}
		v.UnlockReason = &reason
	}

	return v, nil
}

func (s *Service) decryptAmount(blob []byte) (decimal.Decimal, error) {
	raw, err := s.box.DecryptString(blob)
	if err != nil {
		return decimal.Decimal{}, err
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount: %w", err)
	}
	return amount, nil
}

func (s *Service) encryptAmount(d decimal.Decimal) ([]byte, error) {
	return s.box.EncryptString(d.String())
}

func (s *Service) encryptBreakdown(breakdown []domain.CategoryAmount) ([]byte, error) {
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}
	return s.box.Encrypt(raw)
}
