package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	localCache "github.com/tokengraph/tokengraph/pkg/internal/cache"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

// PriceSnapshot is what the price-feed collaborator hands back: a scaled
// integer price plus its decimal exponent, USD per native unit.
type PriceSnapshot struct {
	Price     decimal.Decimal `json:"price"`
	Decimals  int32           `json:"decimals"`
	FetchedAt time.Time       `json:"fetched_at"`
}

const oracleRateCacheKey = "oracle-rate-snapshot"

var oracleClient = &http.Client{Timeout: 10 * time.Second}

// RefreshOracleRate pulls the price feed and caches the snapshot. Scheduled
// every minute when oracle fees are enabled; a failed pull keeps the
// previous snapshot until it expires.
func RefreshOracleRate() {
	settings, err := GetPlatformSettings()
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when loading settings for oracle refresh...")
		return
	}
	if !settings.UseOracle || len(settings.OracleURL) == 0 {
		return
	}

	snapshot, err := fetchOracleRate(settings.OracleURL)
	if err != nil {
		log.Warn().Err(err).Str("feed", settings.OracleURL).Msg("An error occurred when pulling the price feed...")
		return
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	_ = marshal.Set(
		context.Background(),
		oracleRateCacheKey,
		snapshot,
		store.WithExpiration(10*time.Minute),
		store.WithTags([]string{"oracle-rate"}),
	)

	log.Debug().Str("price", snapshot.Price.String()).Int32("decimals", snapshot.Decimals).
		Msg("Oracle rate refreshed.")
}

func fetchOracleRate(url string) (PriceSnapshot, error) {
	var snapshot PriceSnapshot

	resp, err := oracleClient.Get(url)
	if err != nil {
		return snapshot, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return snapshot, fmt.Errorf("price feed answered status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return snapshot, err
	}

	var payload struct {
		Price    string `json:"price"`
		Decimals int32  `json:"decimals"`
	}
	if err := jsoniter.Unmarshal(raw, &payload); err != nil {
		return snapshot, err
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		return snapshot, fmt.Errorf("price feed returned a malformed price: %v", err)
	}

	snapshot = PriceSnapshot{
		Price:     price,
		Decimals:  payload.Decimals,
		FetchedAt: time.Now(),
	}
	return snapshot, nil
}

// GetOracleRate returns the cached snapshot, or NotReady when the feed has
// not been pulled successfully yet.
func GetOracleRate() (PriceSnapshot, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)

	snapshot, err := marshal.Get(context.Background(), oracleRateCacheKey, new(PriceSnapshot))
	if err != nil {
		return PriceSnapshot{}, fmt.Errorf("%w: no oracle rate loaded", status.ErrNotReady)
	}

	return *snapshot.(*PriceSnapshot), nil
}

// SetOracleRate seeds the snapshot directly; used by operator tooling and
// tests to avoid a live feed.
func SetOracleRate(snapshot PriceSnapshot) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	_ = marshal.Set(
		context.Background(),
		oracleRateCacheKey,
		snapshot,
		store.WithExpiration(10*time.Minute),
		store.WithTags([]string{"oracle-rate"}),
	)

	// Ristretto applies writes from a buffer; seeding must be readable
	// as soon as this returns.
	localCache.R.Wait()
}
