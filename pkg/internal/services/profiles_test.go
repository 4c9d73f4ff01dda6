package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func TestCreateProfileHandleUniqueness(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}

	first, err := CreateProfile(alice, "wanderer", "")
	require.NoError(t, err)
	assert.NotZero(t, first.TokenID)

	_, err = CreateProfile(bob, "wanderer", "")
	assert.ErrorIs(t, err, status.ErrDuplicateHandle)

	// A failed create must leave nothing behind
	_, err = GetProfileByHandle("wanderer")
	require.NoError(t, err)
	profiles, err := ListOwnedProfile(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestCreateProfileInvalidHandle(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}

	for _, handle := range []string{"", "ab", "UPPERCASE", "has space", "way-too-long-handle-that-overruns-the-thirty-two-char-limit"} {
		_, err := CreateProfile(alice, handle, "")
		assert.ErrorIs(t, err, status.ErrInvalidInput, "handle %q should be rejected", handle)
	}
}

func TestDefaultProfileSingularity(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	first := mustCreateProfile(t, alice, "first")
	second := mustCreateProfile(t, alice, "second")

	// Creating the first profile makes it default; the second does not steal it
	current, err := GetDefaultProfile(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)

	require.NoError(t, SetDefaultProfile(alice, second.ID))
	current, err = GetDefaultProfile(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	err = SetDefaultProfile(alice, second.ID)
	assert.ErrorIs(t, err, status.ErrAlreadyInState)
}

func TestSetDefaultProfileOwnership(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	foreign := mustCreateProfile(t, bob, "bobs")
	mustCreateProfile(t, alice, "alices")

	err := SetDefaultProfile(alice, foreign.ID)
	assert.ErrorIs(t, err, status.ErrNotOwner)

	err = SetDefaultProfile(alice, 999)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestProfileOwnerResolution(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 7, Name: "alice"}
	profile := mustCreateProfile(t, alice, "resolver")

	owner, err := ProfileOwner(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner)

	// Second resolution is served from cache and must agree
	owner, err = ProfileOwner(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner)

	assert.True(t, ProfileExists(profile.ID))
	assert.False(t, ProfileExists(999))
}
