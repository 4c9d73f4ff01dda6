package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/tokengraph/tokengraph/pkg/internal/cache"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/gorm"
)

var handleRegex = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

func ValidateHandle(handle string) error {
	if !handleRegex.MatchString(handle) {
		return fmt.Errorf("%w: handle must be 3-32 chars of lowercase letters, digits, '_', '.' or '-'", status.ErrInvalidInput)
	}
	return nil
}

func CreateProfile(user models.Account, handle, imageURI string) (models.Profile, error) {
	var profile models.Profile
	if err := ValidateHandle(handle); err != nil {
		return profile, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
			return fmt.Errorf("unable to count existing handle: %v", err)
		}
		if count > 0 {
			return status.ErrDuplicateHandle
		}

		token, err := MintToken(tx, models.TokenKindProfile, user.ID)
		if err != nil {
			return err
		}

		profile = models.Profile{
			AccountID: user.ID,
			Handle:    handle,
			ImageURI:  imageURI,
			TokenID:   token.ID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		// The account's first profile becomes its default.
		var pointer models.DefaultProfile
		if err := tx.Where("account_id = ?", user.ID).First(&pointer).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			pointer = models.DefaultProfile{
				AccountID: user.ID,
				ProfileID: profile.ID,
			}
			return tx.Create(&pointer).Error
		}

		return nil
	})

	return profile, err
}

func GetProfile(id uint) (models.Profile, error) {
	var profile models.Profile
	if err := database.C.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, status.ErrNotFound
		}
		return profile, fmt.Errorf("unable to get profile: %v", err)
	}
	return profile, nil
}

func GetProfileByHandle(handle string) (models.Profile, error) {
	var profile models.Profile
	if err := database.C.Where("handle = ?", handle).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, status.ErrNotFound
		}
		return profile, fmt.Errorf("unable to get profile: %v", err)
	}
	return profile, nil
}

func ProfileExists(id uint) bool {
	var count int64
	if err := database.C.Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// ProfileOwner resolves the owning account of a profile. Ownership never
// changes after mint, so the lookup is cached aggressively.
func ProfileOwner(id uint) (uint, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := fmt.Sprintf("profile-owner#%d", id)
	if owner, err := marshal.Get(ctx, cacheKey, new(uint)); err == nil {
		return *owner.(*uint), nil
	}

	profile, err := GetProfile(id)
	if err != nil {
		return 0, err
	}

	_ = marshal.Set(
		ctx,
		cacheKey,
		profile.AccountID,
		store.WithExpiration(30*time.Minute),
		store.WithTags([]string{"profile-owner", fmt.Sprintf("profile#%d", id)}),
	)

	return profile.AccountID, nil
}

// GetOwnedProfile is the authorization guard every entry point goes through
// before acting as a profile.
func GetOwnedProfile(id uint, userID uint) (models.Profile, error) {
	profile, err := GetProfile(id)
	if err != nil {
		return profile, err
	}
	if profile.AccountID != userID {
		return profile, status.ErrNotOwner
	}
	return profile, nil
}

func ListOwnedProfile(userID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := database.C.Where("account_id = ?", userID).Find(&profiles).Error; err != nil {
		return profiles, fmt.Errorf("unable to list profiles: %v", err)
	}
	return profiles, nil
}

func GetDefaultProfile(userID uint) (models.Profile, error) {
	var pointer models.DefaultProfile
	if err := database.C.Where("account_id = ?", userID).First(&pointer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, status.ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("unable to get default pointer: %v", err)
	}

	return GetProfile(pointer.ProfileID)
}

func SetDefaultProfile(user models.Account, profileID uint) error {
	if _, err := GetOwnedProfile(profileID, user.ID); err != nil {
		return err
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		var pointer models.DefaultProfile
		if err := tx.Where("account_id = ?", user.ID).First(&pointer).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			pointer = models.DefaultProfile{
				AccountID: user.ID,
				ProfileID: profileID,
			}
			return tx.Create(&pointer).Error
		}

		if pointer.ProfileID == profileID {
			return status.ErrAlreadyInState
		}

		pointer.ProfileID = profileID
		return tx.Save(&pointer).Error
	})
}

func UpdateProfileImage(user models.Account, profileID uint, imageURI string) (models.Profile, error) {
	profile, err := GetOwnedProfile(profileID, user.ID)
	if err != nil {
		return profile, err
	}

	profile.ImageURI = imageURI
	if err := database.C.Model(&profile).Update("image_uri", imageURI).Error; err != nil {
		return profile, err
	}
	return profile, nil
}
