package services

import (
	"errors"
	"fmt"

	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/gorm"
)

// ToggleFollow flips the directed follower -> followee edge. The returned
// flag reports the resulting state: true when the edge now exists.
func ToggleFollow(user models.Account, followerID, followeeID uint) (bool, models.FollowEdge, error) {
	var edge models.FollowEdge
	if followerID == followeeID {
		return false, edge, fmt.Errorf("%w: a profile cannot follow itself", status.ErrInvalidInput)
	}

	follower, err := GetOwnedProfile(followerID, user.ID)
	if err != nil {
		return false, edge, err
	}
	followee, err := GetProfile(followeeID)
	if err != nil {
		return false, edge, err
	}

	var following bool
	err = database.C.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("follower_id = ? AND followee_id = ?", follower.ID, followee.ID).First(&edge).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("unable to check follow edge: %v", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			token, err := MintToken(tx, models.TokenKindFollow, user.ID)
			if err != nil {
				return err
			}

			edge = models.FollowEdge{
				FollowerID: follower.ID,
				FolloweeID: followee.ID,
				TokenID:    token.ID,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}

			if err := tx.Model(&followee).Update("total_followers", gorm.Expr("total_followers + 1")).Error; err != nil {
				return err
			}
			if err := tx.Model(&follower).Update("total_following", gorm.Expr("total_following + 1")).Error; err != nil {
				return err
			}

			following = true
			return nil
		}

		// A missing edge token must not wedge the toggle; burn it when it
		// is still there, unfollow either way.
		var receipt models.Token
		err = tx.Where("id = ?", edge.TokenID).First(&receipt).Error
		if err == nil {
			if receipt.AccountID != user.ID {
				return status.ErrNotOwner
			}
			if err := tx.Delete(&receipt).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Delete(&edge).Error; err != nil {
			return err
		}

		// Guarded against underflow; counters can drift only if rows were
		// edited outside the toggle.
		if err := tx.Model(&followee).
			Update("total_followers", gorm.Expr("CASE WHEN total_followers > 0 THEN total_followers - 1 ELSE 0 END")).Error; err != nil {
			return err
		}
		if err := tx.Model(&follower).
			Update("total_following", gorm.Expr("CASE WHEN total_following > 0 THEN total_following - 1 ELSE 0 END")).Error; err != nil {
			return err
		}

		following = false
		return nil
	})

	return following, edge, err
}

func IsFollowing(followerID, followeeID uint) bool {
	var count int64
	if err := database.C.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func GetFollowCounts(profileID uint) (followers int, following int, err error) {
	profile, err := GetProfile(profileID)
	if err != nil {
		return 0, 0, err
	}
	return profile.TotalFollowers, profile.TotalFollowing, nil
}

func ListFollowers(profileID uint, take int, offset int) ([]models.Profile, error) {
	if take > 100 {
		take = 100
	}

	var profiles []models.Profile
	err := database.C.
		Joins("JOIN follow_edges ON follow_edges.follower_id = profiles.id").
		Where("follow_edges.followee_id = ?", profileID).
		Limit(take).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return profiles, fmt.Errorf("unable to list followers: %v", err)
	}
	return profiles, nil
}

func ListFollowing(profileID uint, take int, offset int) ([]models.Profile, error) {
	if take > 100 {
		take = 100
	}

	var profiles []models.Profile
	err := database.C.
		Joins("JOIN follow_edges ON follow_edges.followee_id = profiles.id").
		Where("follow_edges.follower_id = ?", profileID).
		Limit(take).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return profiles, fmt.Errorf("unable to list following: %v", err)
	}
	return profiles, nil
}
