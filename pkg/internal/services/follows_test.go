package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func TestToggleFollowRoundTrip(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	p1 := mustCreateProfile(t, alice, "p-one")
	p2 := mustCreateProfile(t, bob, "p-two")

	following, edge, err := ToggleFollow(alice, p1.ID, p2.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.NotZero(t, edge.TokenID)

	// Symmetry: edge visible from both directions, counters agree
	assert.True(t, IsFollowing(p1.ID, p2.ID))
	assert.False(t, IsFollowing(p2.ID, p1.ID))

	followers, _, err := GetFollowCounts(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, followers)
	_, followingCount, err := GetFollowCounts(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, followingCount)

	names, err := ListFollowers(p2.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, p1.ID, names[0].ID)

	// Toggling again restores the original state
	following, _, err = ToggleFollow(alice, p1.ID, p2.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, IsFollowing(p1.ID, p2.ID))

	followers, _, err = GetFollowCounts(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, followers)
	_, followingCount, err = GetFollowCounts(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, followingCount)

	// And the edge token was burned
	_, err = TokenOwner(edge.TokenID)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestToggleFollowGuards(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	p1 := mustCreateProfile(t, alice, "p-one")
	p2 := mustCreateProfile(t, bob, "p-two")

	_, _, err := ToggleFollow(alice, p1.ID, p1.ID)
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	// Acting as a profile the caller does not own
	_, _, err = ToggleFollow(alice, p2.ID, p1.ID)
	assert.ErrorIs(t, err, status.ErrNotOwner)

	_, _, err = ToggleFollow(alice, p1.ID, 999)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestToggleFollowToleratesMissingEdgeToken(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	p1 := mustCreateProfile(t, alice, "p-one")
	p2 := mustCreateProfile(t, bob, "p-two")

	_, edge, err := ToggleFollow(alice, p1.ID, p2.ID)
	require.NoError(t, err)

	// Ledger drift: the edge token row is gone entirely. Unfollow must
	// still work or the edge would be stuck forever.
	require.NoError(t, database.C.Unscoped().Delete(&models.Token{}, edge.TokenID).Error)

	following, _, err := ToggleFollow(alice, p1.ID, p2.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, IsFollowing(p1.ID, p2.ID))

	followers, _, err := GetFollowCounts(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, followers)
}

func TestFollowReFollowAfterUnfollow(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	p1 := mustCreateProfile(t, alice, "p-one")
	p2 := mustCreateProfile(t, bob, "p-two")

	for i := 0; i < 3; i++ {
		following, _, err := ToggleFollow(alice, p1.ID, p2.ID)
		require.NoError(t, err)
		assert.True(t, following)

		following, _, err = ToggleFollow(alice, p1.ID, p2.ID)
		require.NoError(t, err)
		assert.False(t, following)
	}

	followers, _, err := GetFollowCounts(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, followers)
}
