package services

import (
	"errors"
	"fmt"

	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/gorm"
)

// ResolveCommentable checks the parent reference of a comment. Publish and
// comment rows adopt their token id, so the two tables never share an id:
// an id that exists under the other kind is reported as the wrong kind
// instead of missing, and callers can tell a typo from a stale reference.
func ResolveCommentable(kind string, id uint) error {
	switch kind {
	case models.CommentableKindPublish:
		if PublishExists(id) {
			return nil
		}
		if CommentExists(id) {
			return fmt.Errorf("%w: id %d is a comment, not a publish", status.ErrWrongKind, id)
		}
		return status.ErrNotFound
	case models.CommentableKindComment:
		if CommentExists(id) {
			return nil
		}
		if PublishExists(id) {
			return fmt.Errorf("%w: id %d is a publish, not a comment", status.ErrWrongKind, id)
		}
		return status.ErrNotFound
	default:
		return fmt.Errorf("%w: unknown parent kind %s", status.ErrInvalidInput, kind)
	}
}

func NewComment(user models.Account, creator models.Profile, parentKind string, parentID uint, contentURI string) (models.Comment, error) {
	var item models.Comment
	if len(contentURI) == 0 || len(contentURI) > 2048 {
		return item, fmt.Errorf("%w: content URI is required and must fit 2048 chars", status.ErrInvalidInput)
	}
	if err := ResolveCommentable(parentKind, parentID); err != nil {
		return item, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		token, err := MintToken(tx, models.TokenKindComment, user.ID)
		if err != nil {
			return err
		}

		item = models.Comment{
			BaseModel:  models.BaseModel{ID: token.ID},
			AccountID:  user.ID,
			CreatorID:  creator.ID,
			TokenID:    token.ID,
			ParentKind: parentKind,
			ParentID:   parentID,
			ContentURI: contentURI,
		}

		return tx.Create(&item).Error
	})
	if err != nil {
		return item, err
	}

	item.Creator = creator
	return item, nil
}

func EditComment(item models.Comment, contentURI string) (models.Comment, error) {
	if len(contentURI) == 0 || len(contentURI) > 2048 {
		return item, fmt.Errorf("%w: content URI is required and must fit 2048 chars", status.ErrInvalidInput)
	}

	if fieldDigest(item.ContentURI) == fieldDigest(contentURI) {
		return item, status.ErrNothingChanged
	}

	item.ContentURI = contentURI
	if err := database.C.Model(&item).Update("content_uri", contentURI).Error; err != nil {
		return item, err
	}
	return item, nil
}

func DeleteComment(user models.Account, commentID, creatorID uint) error {
	item, err := GetComment(commentID)
	if err != nil {
		return err
	}
	if item.AccountID != user.ID {
		return status.ErrNotOwner
	}
	if item.CreatorID != creatorID {
		return fmt.Errorf("%w: comment was not authored by that profile", status.ErrNotOwner)
	}
	if _, err := GetOwnedProfile(creatorID, user.ID); err != nil {
		return err
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := BurnToken(tx, item.TokenID); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func GetComment(id uint) (models.Comment, error) {
	var item models.Comment
	if err := database.C.Preload("Creator").Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, status.ErrNotFound
		}
		return item, fmt.Errorf("unable to get comment: %v", err)
	}
	return item, nil
}

func CommentExists(id uint) bool {
	var count int64
	if err := database.C.Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func CountCommentByParent(kind string, parentID uint) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("parent_kind = ? AND parent_id = ?", kind, parentID).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func ListCommentByParent(kind string, parentID uint, take int, offset int) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Comment
	if err := database.C.Preload("Creator").
		Where("parent_kind = ? AND parent_id = ?", kind, parentID).
		Limit(take).Offset(offset).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}
