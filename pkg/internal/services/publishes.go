package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PublishContent carries the updatable fields of a publish.
type PublishContent struct {
	ContentURI    string
	ImageURI      string
	MetadataURI   string
	Title         string
	Description   string
	CategoryOne   string
	CategoryTwo   string
	CategoryThree string
	Attachments   []string
}

func fieldDigest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// ValidateCategories enforces the partial order over the optional
// three-level classification: a level may only be set when the level above
// it is set.
func ValidateCategories(one, two, three string) error {
	if len(one) == 0 && len(two) > 0 {
		return fmt.Errorf("%w: secondary category requires a primary category", status.ErrInvalidInput)
	}
	if len(two) == 0 && len(three) > 0 {
		return fmt.Errorf("%w: tertiary category requires a secondary category", status.ErrInvalidInput)
	}
	return nil
}

func validatePublishContent(content PublishContent) error {
	if len(content.ContentURI) == 0 {
		return fmt.Errorf("%w: content URI is required", status.ErrInvalidInput)
	}
	if len(content.ContentURI) > 2048 || len(content.ImageURI) > 2048 || len(content.MetadataURI) > 2048 {
		return fmt.Errorf("%w: URI is too long", status.ErrInvalidInput)
	}
	if len(content.Title) > 256 {
		return fmt.Errorf("%w: title is too long", status.ErrInvalidInput)
	}
	if len(content.Description) > 4096 {
		return fmt.Errorf("%w: description is too long", status.ErrInvalidInput)
	}

	return ValidateCategories(content.CategoryOne, content.CategoryTwo, content.CategoryThree)
}

func NewPublish(user models.Account, creator models.Profile, content PublishContent) (models.Publish, error) {
	var item models.Publish
	if err := validatePublishContent(content); err != nil {
		return item, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		token, err := MintToken(tx, models.TokenKindPublish, user.ID)
		if err != nil {
			return err
		}

		item = models.Publish{
			// The row adopts its token id, keeping publish and comment ids
			// in one disjoint space.
			BaseModel:     models.BaseModel{ID: token.ID},
			AccountID:     user.ID,
			CreatorID:     creator.ID,
			TokenID:       token.ID,
			ContentURI:    content.ContentURI,
			ImageURI:      content.ImageURI,
			MetadataURI:   content.MetadataURI,
			Title:         content.Title,
			Description:   content.Description,
			Language:      DetectLanguage(content.Title + " " + content.Description),
			CategoryOne:   content.CategoryOne,
			CategoryTwo:   content.CategoryTwo,
			CategoryThree: content.CategoryThree,
			Attachments:   content.Attachments,
		}

		return tx.Create(&item).Error
	})
	if err != nil {
		return item, err
	}

	item.Creator = creator
	return item, nil
}

// EditPublish rewrites only the fields whose digest differs from the stored
// value; when none differ the update is rejected outright.
func EditPublish(item models.Publish, content PublishContent) (models.Publish, error) {
	if err := validatePublishContent(content); err != nil {
		return item, err
	}

	updates := map[string]any{}
	diffable := []struct {
		column string
		stored string
		next   string
	}{
		{"content_uri", item.ContentURI, content.ContentURI},
		{"image_uri", item.ImageURI, content.ImageURI},
		{"metadata_uri", item.MetadataURI, content.MetadataURI},
		{"title", item.Title, content.Title},
		{"description", item.Description, content.Description},
		{"category_one", item.CategoryOne, content.CategoryOne},
		{"category_two", item.CategoryTwo, content.CategoryTwo},
		{"category_three", item.CategoryThree, content.CategoryThree},
	}
	for _, field := range diffable {
		if fieldDigest(field.stored) != fieldDigest(field.next) {
			updates[field.column] = field.next
		}
	}

	stored := strings.Join(item.Attachments, "\x1f")
	if fieldDigest(stored) != fieldDigest(strings.Join(content.Attachments, "\x1f")) {
		updates["attachments"] = datatypes.JSONSlice[string](content.Attachments)
	}

	if len(updates) == 0 {
		return item, status.ErrNothingChanged
	}

	if _, ok := updates["title"]; ok {
		updates["language"] = DetectLanguage(content.Title + " " + content.Description)
	} else if _, ok := updates["description"]; ok {
		updates["language"] = DetectLanguage(content.Title + " " + content.Description)
	}

	if err := database.C.Model(&item).Updates(updates).Error; err != nil {
		return item, err
	}

	return GetPublish(item.ID)
}

// DeletePublish burns the token and tombstones the record. Child comments
// are left orphaned on purpose; the scheduled cleanup purges their
// engagement rows.
func DeletePublish(user models.Account, publishID, creatorID uint) error {
	item, err := GetPublish(publishID)
	if err != nil {
		return err
	}
	if item.AccountID != user.ID {
		return status.ErrNotOwner
	}
	if item.CreatorID != creatorID {
		return fmt.Errorf("%w: publish was not authored by that profile", status.ErrNotOwner)
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

func GetPublish(id uint) (models.Publish, error) {
	var item models.Publish
	if err := database.C.Preload("Creator").Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, status.ErrNotFound
		}
		return item, fmt.Errorf("unable to get publish: %v", err)
	}
	return item, nil
}

func PublishExists(id uint) bool {
	var count int64
	if err := database.C.Model(&models.Publish{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func FilterPublishWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where("title ILIKE ? OR description ILIKE ?", probe, probe)
}

func FilterPublishWithCreator(tx *gorm.DB, creatorID uint) *gorm.DB {
	return tx.Where("creator_id = ?", creatorID)
}

func CountPublish(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Publish{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListPublish(tx *gorm.DB, take int, offset int) ([]*models.Publish, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Publish
	if err := tx.Preload("Creator").
		Limit(take).Offset(offset).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return items, err
	}

	// Attach reply counts in one query
	idx := lo.Map(items, func(item *models.Publish, index int) uint {
		return item.ID
	})

	var replies []struct {
		ParentID uint
		Count    int64
	}
	if err := database.C.Model(&models.Comment{}).
		Select("parent_id, COUNT(id) as count").
		Where("parent_kind = ? AND parent_id IN ?", models.CommentableKindPublish, idx).
		Group("parent_id").
		Scan(&replies).Error; err != nil {
		return items, err
	}

	counts := map[uint]int64{}
	for _, info := range replies {
		counts[info.ParentID] = info.Count
	}
	for _, item := range items {
		item.Metric = models.PublishMetric{ReplyCount: counts[item.ID]}
	}

	return items, nil
}
