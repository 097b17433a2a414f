package config

import (
	"encoding/hex"
	"fmt"

	"github.com/hawlguard/zakat-backend/internal/cryptobox"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := c.Crypto.Key(); err != nil {
		return fmt.Errorf("crypto: %w", err)
	}

	if len(c.Zakat.Currency) != 3 {
		return fmt.Errorf("zakat.currency must be a 3-letter code (got %q)", c.Zakat.Currency)
	}
	if !domain.ThresholdBasis(c.Zakat.DefaultBasis).IsValid() {
		return fmt.Errorf("zakat.default_basis must be GOLD or SILVER (got %q)", c.Zakat.DefaultBasis)
	}

	if c.Detection.Interval <= 0 {
		return fmt.Errorf("detection.interval must be > 0 (got %v)", c.Detection.Interval)
	}
	if c.Detection.Concurrency <= 0 {
		return fmt.Errorf("detection.concurrency must be > 0 (got %d)", c.Detection.Concurrency)
	}

	return nil
}

// Key decodes the hex-encoded encryption key and checks its length.
func (c CryptoConfig) Key() ([]byte, error) {
	key, err := hex.DecodeString(c.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("key_hex is not valid hex: %w", err)
	}
	if len(key) != cryptobox.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (got %d)", cryptobox.KeySize, len(key))
	}
	return key, nil
}

// Basis returns the typed default threshold basis. Validate guarantees it is
// one of the known values.
func (c ZakatConfig) Basis() domain.ThresholdBasis {
	return domain.ThresholdBasis(c.DefaultBasis)
}
