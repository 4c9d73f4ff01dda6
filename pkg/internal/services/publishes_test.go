package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func TestPublishCategoryPartialOrder(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	creator := mustCreateProfile(t, alice, "author")

	_, err := NewPublish(alice, creator, PublishContent{
		ContentURI:  "ipfs://a",
		CategoryTwo: "news",
	})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = NewPublish(alice, creator, PublishContent{
		ContentURI:    "ipfs://a",
		CategoryOne:   "media",
		CategoryThree: "local",
	})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	item, err := NewPublish(alice, creator, PublishContent{
		ContentURI:    "ipfs://a",
		CategoryOne:   "media",
		CategoryTwo:   "news",
		CategoryThree: "local",
	})
	require.NoError(t, err)
	assert.Equal(t, "local", item.CategoryThree)
}

func TestEditPublishDiffAndWrite(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	creator := mustCreateProfile(t, alice, "author")
	item := mustCreatePublish(t, alice, creator)

	same := PublishContent{
		ContentURI:  item.ContentURI,
		Title:       item.Title,
		Description: item.Description,
	}
	_, err := EditPublish(item, same)
	assert.ErrorIs(t, err, status.ErrNothingChanged)

	changed := same
	changed.Title = "A different title"
	updated, err := EditPublish(item, changed)
	require.NoError(t, err)
	assert.Equal(t, "A different title", updated.Title)
	assert.Equal(t, item.ContentURI, updated.ContentURI)
}

func TestEditPublishAttachmentsOnly(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	creator := mustCreateProfile(t, alice, "author")

	item, err := NewPublish(alice, creator, PublishContent{
		ContentURI:  "ipfs://a",
		Attachments: []string{"ipfs://att-1"},
	})
	require.NoError(t, err)

	same := PublishContent{
		ContentURI:  item.ContentURI,
		Attachments: []string{"ipfs://att-1"},
	}
	_, err = EditPublish(item, same)
	assert.ErrorIs(t, err, status.ErrNothingChanged)

	changed := same
	changed.Attachments = []string{"ipfs://att-1", "ipfs://att-2"}
	updated, err := EditPublish(item, changed)
	require.NoError(t, err)
	assert.Equal(t, []string{"ipfs://att-1", "ipfs://att-2"}, []string(updated.Attachments))

	// And the write is persisted, not just echoed
	updated, err = GetPublish(item.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Attachments, 2)
}

func TestDeletePublishOwnershipPair(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	bob := models.Account{ID: 2, Name: "bob"}
	creator := mustCreateProfile(t, alice, "author")
	other := mustCreateProfile(t, alice, "other")
	item := mustCreatePublish(t, alice, creator)

	err := DeletePublish(bob, item.ID, creator.ID)
	assert.ErrorIs(t, err, status.ErrNotOwner)

	// Right account, wrong creator profile
	err = DeletePublish(alice, item.ID, other.ID)
	assert.ErrorIs(t, err, status.ErrNotOwner)

	require.NoError(t, DeletePublish(alice, item.ID, creator.ID))
	assert.False(t, PublishExists(item.ID))

	// The publish token is burned alongside
	_, err = TokenOwner(item.TokenID)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestDeletePublishOrphansComments(t *testing.T) {
	setupTestDatabase(t)

	alice := models.Account{ID: 1, Name: "alice"}
	creator := mustCreateProfile(t, alice, "author")
	item := mustCreatePublish(t, alice, creator)

	comment, err := NewComment(alice, creator, models.CommentableKindPublish, item.ID, "ipfs://reply")
	require.NoError(t, err)

	require.NoError(t, DeletePublish(alice, item.ID, creator.ID))

	// The child comment survives as an orphan
	_, err = GetComment(comment.ID)
	require.NoError(t, err)
}
