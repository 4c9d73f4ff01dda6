package services

import (
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/cache"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDatabaseSeq int

// setupTestDatabase points the package at a fresh in-memory database and a
// fresh cache store, with the fee defaults seeded.
func setupTestDatabase(t *testing.T) {
	t.Helper()

	viper.Set("fee.like_amount", "0.01")
	viper.Set("fee.platform_percent", 10)
	viper.Set("fee.use_oracle", false)
	viper.Set("fee.like_usd", "0.1")
	viper.Set("fee.tolerance_bps", 50)
	viper.Set("fee.oracle_url", "")

	testDatabaseSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDatabaseSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.C = conn
	require.NoError(t, database.RunMigration(database.C))
	require.NoError(t, cache.NewStore())
}

func mustCreateProfile(t *testing.T, user models.Account, handle string) models.Profile {
	t.Helper()

	profile, err := CreateProfile(user, handle, "https://img.example.com/"+handle)
	require.NoError(t, err)
	return profile
}

func mustCreatePublish(t *testing.T, user models.Account, creator models.Profile) models.Publish {
	t.Helper()

	item, err := NewPublish(user, creator, PublishContent{
		ContentURI:  "ipfs://content/" + creator.Handle,
		Title:       "Hello there",
		Description: "General greetings",
	})
	require.NoError(t, err)
	return item
}
