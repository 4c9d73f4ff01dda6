package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func TestCleanupReclaimsTombstonedPublishEngagement(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	author := mustCreateProfile(t, alice, "author")
	fan := mustCreateProfile(t, bob, "fan")
	item := mustCreatePublish(t, alice, author)

	_, err := Deposit(bob.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = LikePublish(bob, fan.ID, item.ID, decimal.RequireFromString("0.01"))
	require.NoError(t, err)

	reaction, err := getReaction(database.C, models.CommentableKindPublish, item.ID, fan.ID)
	require.NoError(t, err)
	require.NotNil(t, reaction)
	require.NotNil(t, reaction.TokenID)
	receiptID := *reaction.TokenID

	require.NoError(t, DeletePublish(alice, item.ID, author.ID))

	DoAutoDatabaseCleanup()

	// The orphaned like is gone, its receipt token burned, the liker's
	// counter unwound
	reaction, err = getReaction(database.C, models.CommentableKindPublish, item.ID, fan.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)

	_, err = TokenOwner(receiptID)
	assert.ErrorIs(t, err, status.ErrNotFound)

	fan, err = GetProfile(fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fan.TotalGivenLikes)
}

func TestCleanupReclaimsTombstonedCommentEngagement(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	author := mustCreateProfile(t, alice, "author")
	fan := mustCreateProfile(t, bob, "fan")
	item := mustCreatePublish(t, alice, author)

	comment, err := NewComment(alice, author, models.CommentableKindPublish, item.ID, "ipfs://reply")
	require.NoError(t, err)

	_, err = LikeComment(bob, fan.ID, comment.ID)
	require.NoError(t, err)
	_, err = DislikePublish(bob, fan.ID, item.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteComment(alice, comment.ID, author.ID))

	DoAutoDatabaseCleanup()

	reaction, err := getReaction(database.C, models.CommentableKindComment, comment.ID, fan.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)

	fan, err = GetProfile(fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fan.TotalGivenLikes)

	// Engagement on the live publish is untouched
	kept, err := getReaction(database.C, models.CommentableKindPublish, item.ID, fan.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, models.AttitudeDislike, kept.Attitude)
}
