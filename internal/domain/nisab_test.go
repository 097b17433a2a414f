package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObligation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wealth    string
		threshold string
		want      string
	}{
		{"wealth above threshold", "12000", "6000", "150"},
		{"wealth equals threshold", "6000", "6000", "0"},
		{"wealth below threshold", "5000", "6000", "0"},
		{"rounds to cents", "6001", "6000", "0.03"}, // 1 * 0.025 = 0.025
		{"large excess", "1006000", "6000", "25000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Obligation(
				decimal.RequireFromString(tt.wealth),
				decimal.RequireFromString(tt.threshold),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestNisabMass(t *testing.T) {
	t.Parallel()

	assert.True(t, NisabMass(ThresholdBasisGold).Equal(decimal.RequireFromString("87.48")))
	assert.True(t, NisabMass(ThresholdBasisSilver).Equal(decimal.RequireFromString("612.36")))
}
