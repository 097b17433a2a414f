// Package record implements the nisab year record lifecycle and its audit
// ledger facade. Every status transition runs in one transaction with its
// ledger append; a failed append rolls the transition back. The ledger is
// owned one-directionally: records never hold entry pointers, entries carry a
// record id back-reference only.
package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	recordrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/record"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// minUnlockReasonLen is the shortest acceptable unlock justification.
const minUnlockReasonLen = 10

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordRepo interface {
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.NisabYearRecord, error)
	GetByIDForUpdate(ctx context.Context, userID, recordID uuid.UUID) (*domain.NisabYearRecord, error)
	GetDraftByUser(ctx context.Context, userID uuid.UUID) (*domain.NisabYearRecord, error)
	GetDraftByUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.NisabYearRecord, error)
	List(ctx context.Context, userID uuid.UUID, filter recordrepo.Filter) ([]*domain.NisabYearRecord, int, error)
	Create(ctx context.Context, rec *domain.NisabYearRecord) error
	Update(ctx context.Context, rec *domain.NisabYearRecord) error
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
}

type auditLedger interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	ListForRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type wealthAggregator interface {
	Aggregate(ctx context.Context, userID uuid.UUID) (domain.WealthSnapshot, error)
}

type thresholdSource interface {
	NisabThreshold(ctx context.Context, currency string, basis domain.ThresholdBasis) (domain.ThresholdResult, error)
}

type cryptoBox interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(blob []byte) ([]byte, error)
	EncryptString(s string) ([]byte, error)
	DecryptString(blob []byte) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the record lifecycle service. All operations authorize against
// the user id carried in the context.
type Service struct {
	records recordRepo
	ledger  auditLedger
	tx      txManager
	wealth  wealthAggregator
	oracle  thresholdSource
	box     cryptoBox
	log     *slog.Logger

	currency     string
	defaultBasis domain.ThresholdBasis
	now          func() time.Time
}

// NewService creates a new record lifecycle service.
func NewService(
	log *slog.Logger,
	records recordRepo,
	ledger auditLedger,
	tx txManager,
	wealth wealthAggregator,
	oracle thresholdSource,
	box cryptoBox,
	currency string,
	defaultBasis domain.ThresholdBasis,
) *Service {
	return &Service{
		records:      records,
		ledger:       ledger,
		tx:           tx,
		wealth:       wealth,
		oracle:       oracle,
		box:          box,
		log:          log.With("service", "record"),
		currency:     currency,
		defaultBasis: defaultBasis,
		now:          func() time.Time { return time.Now().UTC() },
	}
}
