package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func TestCalculateLikeFeeFlat(t *testing.T) {
	setupTestDatabase(t)

	fee, err := CalculateLikeFee()
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("0.01")))

	assert.NoError(t, ValidateLikeFee(decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, ValidateLikeFee(decimal.RequireFromString("0.0100001")), status.ErrIncorrectFee)
}

func TestCalculateLikeFeeOracle(t *testing.T) {
	setupTestDatabase(t)

	_, err := UpdateOracleWiring("https://feed.example.com/native-usd", true)
	require.NoError(t, err)

	// No rate pulled yet
	_, err = CalculateLikeFee()
	assert.ErrorIs(t, err, status.ErrNotReady)

	// 2000.00000000 USD per native unit, 8 feed decimals
	SetOracleRate(PriceSnapshot{
		Price:     decimal.RequireFromString("200000000000"),
		Decimals:  8,
		FetchedAt: time.Now(),
	})

	fee, err := CalculateLikeFee()
	require.NoError(t, err)
	// 0.1 USD at 2000 USD/native = 0.00005 native
	assert.True(t, fee.Equal(decimal.RequireFromString("0.00005")), "got %s", fee)
}

func TestValidateLikeFeeToleranceBand(t *testing.T) {
	setupTestDatabase(t)

	_, err := UpdateOracleWiring("https://feed.example.com/native-usd", true)
	require.NoError(t, err)
	SetOracleRate(PriceSnapshot{
		Price:     decimal.RequireFromString("200000000000"),
		Decimals:  8,
		FetchedAt: time.Now(),
	})

	want := decimal.RequireFromString("0.00005")
	band := want.Mul(decimal.NewFromInt(50)).Div(decimal.NewFromInt(10000))

	assert.NoError(t, ValidateLikeFee(want))
	assert.NoError(t, ValidateLikeFee(want.Add(band)))
	assert.NoError(t, ValidateLikeFee(want.Sub(band)))

	outside := want.Add(band.Mul(decimal.NewFromInt(2)))
	assert.ErrorIs(t, ValidateLikeFee(outside), status.ErrIncorrectFee)
}

func TestUpdateFeeSettingsGuards(t *testing.T) {
	setupTestDatabase(t)

	_, err := UpdateLikeFee(decimal.Zero)
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = UpdatePlatformFeePercent(101)
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = UpdateOracleWiring("", true)
	assert.ErrorIs(t, err, status.ErrNotReady)

	settings, err := UpdateLikeFee(decimal.RequireFromString("0.02"))
	require.NoError(t, err)
	assert.True(t, settings.LikeFee.Equal(decimal.RequireFromString("0.02")))

	// The new flat fee is what validation now expects
	assert.ErrorIs(t, ValidateLikeFee(decimal.RequireFromString("0.01")), status.ErrIncorrectFee)
	assert.NoError(t, ValidateLikeFee(decimal.RequireFromString("0.02")))
}
