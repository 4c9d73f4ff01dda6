package models

import "github.com/shopspring/decimal"

// PlatformSettings is a single-row table so admin fee changes survive
// restarts. The row is seeded from the config file on first boot.
type PlatformSettings struct {
	BaseModel

	// Flat like fee in native units, used when UseOracle is off.
	LikeFee decimal.Decimal `json:"like_fee" gorm:"type:decimal(30,18)"`
	// Percentage of every like fee kept by the platform, 0..100.
	PlatformFeePercent int `json:"platform_fee_percent"`

	UseOracle bool `json:"use_oracle"`
	// USD-denominated like fee for the oracle variant.
	LikeFeeUSD decimal.Decimal `json:"like_fee_usd" gorm:"type:decimal(30,18)"`
	// Accepted deviation between the attached payment and the derived fee,
	// in basis points.
	ToleranceBps int64 `json:"tolerance_bps"`

	OracleURL string `json:"oracle_url"`
}
