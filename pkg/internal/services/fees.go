package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

// GetPlatformSettings returns the singleton settings row, seeding it from
// the config file on first use.
func GetPlatformSettings() (models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := database.C.
		Attrs(models.PlatformSettings{
			LikeFee:            decimal.RequireFromString(viper.GetString("fee.like_amount")),
			PlatformFeePercent: viper.GetInt("fee.platform_percent"),
			UseOracle:          viper.GetBool("fee.use_oracle"),
			LikeFeeUSD:         decimal.RequireFromString(viper.GetString("fee.like_usd")),
			ToleranceBps:       viper.GetInt64("fee.tolerance_bps"),
			OracleURL:          viper.GetString("fee.oracle_url"),
		}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return settings, fmt.Errorf("unable to load platform settings: %v", err)
	}
	return settings, nil
}

func UpdateLikeFee(amount decimal.Decimal) (models.PlatformSettings, error) {
	settings, err := GetPlatformSettings()
	if err != nil {
		return settings, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return settings, fmt.Errorf("%w: like fee must be positive", status.ErrInvalidInput)
	}

	settings.LikeFee = amount
	err = database.C.Model(&settings).Update("like_fee", amount).Error
	return settings, err
}

func UpdatePlatformFeePercent(percent int) (models.PlatformSettings, error) {
	settings, err := GetPlatformSettings()
	if err != nil {
		return settings, err
	}
	if percent < 0 || percent > 100 {
		return settings, fmt.Errorf("%w: platform fee percent must be within 0..100", status.ErrInvalidInput)
	}

	settings.PlatformFeePercent = percent
	err = database.C.Model(&settings).Update("platform_fee_percent", percent).Error
	return settings, err
}

func UpdateOracleWiring(url string, useOracle bool) (models.PlatformSettings, error) {
	settings, err := GetPlatformSettings()
	if err != nil {
		return settings, err
	}
	if useOracle && len(url) == 0 && len(settings.OracleURL) == 0 {
		return settings, fmt.Errorf("%w: oracle mode requires a feed address", status.ErrNotReady)
	}

	if len(url) > 0 {
		settings.OracleURL = url
	}
	settings.UseOracle = useOracle
	err = database.C.Model(&settings).Updates(map[string]any{
		"oracle_url": settings.OracleURL,
		"use_oracle": settings.UseOracle,
	}).Error
	return settings, err
}

// CalculateLikeFee derives the amount a like must attach right now: the
// configured flat amount, or the native equivalent of the USD-denominated
// fee at the oracle's current rate.
func CalculateLikeFee() (decimal.Decimal, error) {
	settings, err := GetPlatformSettings()
	if err != nil {
		return decimal.Zero, err
	}

	if !settings.UseOracle {
		return settings.LikeFee, nil
	}

	snapshot, err := GetOracleRate()
	if err != nil {
		return decimal.Zero, err
	}

	// rate = USD per native unit
	rate := snapshot.Price.Shift(-snapshot.Decimals)
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: oracle reported a non-positive rate", status.ErrNotReady)
	}

	return settings.LikeFeeUSD.DivRound(rate, 18), nil
}

// ValidateLikeFee accepts the attached payment when it matches the flat fee
// exactly, or falls within the configured tolerance band of the
// oracle-derived amount.
func ValidateLikeFee(paid decimal.Decimal) error {
	settings, err := GetPlatformSettings()
	if err != nil {
		return err
	}

	want, err := CalculateLikeFee()
	if err != nil {
		return err
	}

	if !settings.UseOracle {
		if !paid.Equal(want) {
			return fmt.Errorf("%w: want %s, got %s", status.ErrIncorrectFee, want, paid)
		}
		return nil
	}

	band := want.Mul(decimal.NewFromInt(settings.ToleranceBps)).Div(decimal.NewFromInt(10000))
	if paid.Sub(want).Abs().GreaterThan(band) {
		return fmt.Errorf("%w: want %s within %s bps tolerance, got %s",
			status.ErrIncorrectFee, want, decimal.NewFromInt(settings.ToleranceBps), paid)
	}
	return nil
}
