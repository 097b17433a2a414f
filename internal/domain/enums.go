package domain

// RecordStatus represents the lifecycle state of a NisabYearRecord.
type RecordStatus string

const (
	RecordStatusDraft     RecordStatus = "DRAFT"
	RecordStatusFinalized RecordStatus = "FINALIZED"
	RecordStatusUnlocked  RecordStatus = "UNLOCKED"
)

func (s RecordStatus) String() string { return string(s) }

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusDraft, RecordStatusFinalized, RecordStatusUnlocked:
		return true
	}
	return false
}

// ThresholdBasis is the metal the Nisab threshold is derived from.
type ThresholdBasis string

const (
	ThresholdBasisGold   ThresholdBasis = "GOLD"
	ThresholdBasisSilver ThresholdBasis = "SILVER"
)

func (b ThresholdBasis) String() string { return string(b) }

func (b ThresholdBasis) IsValid() bool {
	switch b {
	case ThresholdBasisGold, ThresholdBasisSilver:
		return true
	}
	return false
}

// Metal returns the cached-price metal backing this basis.
func (b ThresholdBasis) Metal() Metal {
	if b == ThresholdBasisSilver {
		return MetalSilver
	}
	return MetalGold
}

// Metal identifies a precious metal in the price cache.
type Metal string

const (
	MetalGold   Metal = "GOLD"
	MetalSilver Metal = "SILVER"
)

func (m Metal) String() string { return string(m) }

func (m Metal) IsValid() bool {
	return m == MetalGold || m == MetalSilver
}

// Symbol returns the price-feed ticker for the metal (troy ounce quotes).
func (m Metal) Symbol() string {
	if m == MetalSilver {
		return "XAG"
	}
	return "XAU"
}

// AuditEventType represents the kind of lifecycle event recorded in the ledger.
type AuditEventType string

const (
	AuditEventCreated     AuditEventType = "CREATED"
	AuditEventFinalized   AuditEventType = "FINALIZED"
	AuditEventUnlocked    AuditEventType = "UNLOCKED"
	AuditEventEdited      AuditEventType = "EDITED"
	AuditEventRefinalized AuditEventType = "REFINALIZED"
)

func (e AuditEventType) String() string { return string(e) }

func (e AuditEventType) IsValid() bool {
	switch e {
	case AuditEventCreated, AuditEventFinalized, AuditEventUnlocked,
		AuditEventEdited, AuditEventRefinalized:
		return true
	}
	return false
}

// AssetCategory classifies a zakatable asset for the breakdown snapshot.
type AssetCategory string

const (
	AssetCategoryCash       AssetCategory = "CASH"
	AssetCategoryGold       AssetCategory = "GOLD"
	AssetCategorySilver     AssetCategory = "SILVER"
	AssetCategoryInvestment AssetCategory = "INVESTMENT"
	AssetCategoryBusiness   AssetCategory = "BUSINESS"
	AssetCategoryReceivable AssetCategory = "RECEIVABLE"
	AssetCategoryOther      AssetCategory = "OTHER"
)

func (c AssetCategory) String() string { return string(c) }

func (c AssetCategory) IsValid() bool {
	switch c {
	case AssetCategoryCash, AssetCategoryGold, AssetCategorySilver,
		AssetCategoryInvestment, AssetCategoryBusiness,
		AssetCategoryReceivable, AssetCategoryOther:
		return true
	}
	return false
}

// HawlEvaluation is the outcome of one tracker pass over a user.
type HawlEvaluation string

const (
	HawlNoChange              HawlEvaluation = "NO_CHANGE"
	HawlThresholdFirstCrossed HawlEvaluation = "THRESHOLD_FIRST_CROSSED"
	HawlWindowCompleted       HawlEvaluation = "WINDOW_COMPLETED"
	HawlWindowInterrupted     HawlEvaluation = "WINDOW_INTERRUPTED"
)

func (e HawlEvaluation) String() string { return string(e) }
