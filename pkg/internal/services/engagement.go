package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"gorm.io/gorm"
)

// EngagementState names the per (target, profile) machine states so every
// toggle reports the transition it actually made instead of leaving the
// caller to infer it from a zero value.
type EngagementState = int8

const (
	StateNone = EngagementState(iota)
	StateLiked
	StateDisliked
)

func getReaction(tx *gorm.DB, kind string, targetID, profileID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := tx.Where("target_kind = ? AND target_id = ? AND profile_id = ?", kind, targetID, profileID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to check reaction: %v", err)
	}
	return &reaction, nil
}

func GetEngagementState(kind string, targetID, profileID uint) EngagementState {
	reaction, err := getReaction(database.C, kind, targetID, profileID)
	if err != nil || reaction == nil {
		return StateNone
	}
	if reaction.Attitude == models.AttitudeLike {
		return StateLiked
	}
	return StateDisliked
}

func CheckLikedPublish(publishID, profileID uint) bool {
	return GetEngagementState(models.CommentableKindPublish, publishID, profileID) == StateLiked
}

func CheckDisLikedPublish(publishID, profileID uint) bool {
	return GetEngagementState(models.CommentableKindPublish, publishID, profileID) == StateDisliked
}

func CheckLikedComment(commentID, profileID uint) bool {
	return GetEngagementState(models.CommentableKindComment, commentID, profileID) == StateLiked
}

func CheckDisLikedComment(commentID, profileID uint) bool {
	return GetEngagementState(models.CommentableKindComment, commentID, profileID) == StateDisliked
}

func bumpPublishCounters(tx *gorm.DB, id uint, likes, dislikes int) error {
	updates := map[string]any{}
	if likes != 0 {
		updates["total_likes"] = gorm.Expr("total_likes + ?", likes)
	}
	if dislikes != 0 {
		updates["total_dislikes"] = gorm.Expr("total_dislikes + ?", dislikes)
	}
	return tx.Model(&models.Publish{}).Where("id = ?", id).Updates(updates).Error
}

func bumpCommentCounters(tx *gorm.DB, id uint, likes, dislikes int) error {
	updates := map[string]any{}
	if likes != 0 {
		updates["total_likes"] = gorm.Expr("total_likes + ?", likes)
	}
	if dislikes != 0 {
		updates["total_dislikes"] = gorm.Expr("total_dislikes + ?", dislikes)
	}
	return tx.Model(&models.Comment{}).Where("id = ?", id).Updates(updates).Error
}

func bumpProfileGivenLikes(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&models.Profile{}).Where("id = ?", id).
		Update("total_given_likes", gorm.Expr("total_given_likes + ?", delta)).Error
}

// settleLikeFee moves the attached payment: the platform keeps its cut, the
// remainder goes to the publish owner and is booked as revenue. Called only
// after the reaction row and counters are already written, so a failure
// rolls the whole transition back.
func settleLikeFee(tx *gorm.DB, payer uint, item models.Publish, payment decimal.Decimal) error {
	settings, err := GetPlatformSettings()
	if err != nil {
		return err
	}

	cut := payment.
		Mul(decimal.NewFromInt(int64(settings.PlatformFeePercent))).
		Div(decimal.NewFromInt(100))
	net := payment.Sub(cut)

	if err := DebitWallet(tx, payer, payment); err != nil {
		return err
	}
	if err := CreditWallet(tx, models.PlatformAccountID, cut); err != nil {
		return err
	}
	if err := CreditWallet(tx, item.AccountID, net); err != nil {
		return err
	}

	platform := models.PlatformAccountID
	if _, err := RecordTransfer(tx, models.TransferKindLikeFee, &payer, &item.AccountID, net, &item.ID); err != nil {
		return err
	}
	if _, err := RecordTransfer(tx, models.TransferKindPlatformCut, &payer, &platform, cut, &item.ID); err != nil {
		return err
	}

	return tx.Model(&item).Update("revenue", gorm.Expr("revenue + ?", net)).Error
}

// LikePublish toggles the like edge on a publish. Entering the liked state
// requires the attached payment to satisfy the active fee policy; leaving it
// refunds nothing, the fee is spent goodwill.
func LikePublish(user models.Account, profileID, publishID uint, payment decimal.Decimal) (EngagementState, error) {
	profile, err := GetOwnedProfile(profileID, user.ID)
	if err != nil {
		return StateNone, err
	}
	item, err := GetPublish(publishID)
	if err != nil {
		return StateNone, err
	}

	result := StateNone
	err = database.C.Transaction(func(tx *gorm.DB) error {
		reaction, err := getReaction(tx, models.CommentableKindPublish, item.ID, profile.ID)
		if err != nil {
			return err
		}

		if reaction != nil && reaction.Attitude == models.AttitudeLike {
			// LIKED -> NONE
			if reaction.TokenID != nil {
				if err := BurnToken(tx, *reaction.TokenID); err != nil {
					return err
				}
			}
			if err := tx.Delete(reaction).Error; err != nil {
				return err
			}
			if err := bumpPublishCounters(tx, item.ID, -1, 0); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, -1); err != nil {
				return err
			}
			result = StateNone
			return nil
		}

		// NONE -> LIKED, or DISLIKED -> LIKED
		if err := ValidateLikeFee(payment); err != nil {
			return err
		}

		token, err := MintToken(tx, models.TokenKindLike, user.ID)
		if err != nil {
			return err
		}

		wasDisliked := reaction != nil
		if wasDisliked {
			reaction.Attitude = models.AttitudeLike
			reaction.TokenID = &token.ID
			if err := tx.Save(reaction).Error; err != nil {
				return err
			}
		} else {
			reaction = &models.Reaction{
				TargetKind: models.CommentableKindPublish,
				TargetID:   item.ID,
				ProfileID:  profile.ID,
				Attitude:   models.AttitudeLike,
				TokenID:    &token.ID,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
		}

		dislikeDelta := 0
		if wasDisliked {
			dislikeDelta = -1
		}
		if err := bumpPublishCounters(tx, item.ID, 1, dislikeDelta); err != nil {
			return err
		}
		if err := bumpProfileGivenLikes(tx, profile.ID, 1); err != nil {
			return err
		}

		// Settlement is deliberately the last step of the transition.
		if err := settleLikeFee(tx, user.ID, item, payment); err != nil {
			return err
		}

		result = StateLiked
		return nil
	})

	return result, err
}

// DislikePublish toggles the dislike flag, feeless and tokenless. Entering
// the disliked state from liked clears the like edge from this side.
func DislikePublish(user models.Account, profileID, publishID uint) (EngagementState, error) {
	profile, err := GetOwnedProfile(profileID, user.ID)
	if err != nil {
		return StateNone, err
	}
	item, err := GetPublish(publishID)
	if err != nil {
		return StateNone, err
	}

	result := StateNone
	err = database.C.Transaction(func(tx *gorm.DB) error {
		reaction, err := getReaction(tx, models.CommentableKindPublish, item.ID, profile.ID)
		if err != nil {
			return err
		}

		switch {
		case reaction == nil:
			// NONE -> DISLIKED
			reaction = &models.Reaction{
				TargetKind: models.CommentableKindPublish,
				TargetID:   item.ID,
				ProfileID:  profile.ID,
				Attitude:   models.AttitudeDislike,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
			if err := bumpPublishCounters(tx, item.ID, 0, 1); err != nil {
				return err
			}
			result = StateDisliked

		case reaction.Attitude == models.AttitudeLike:
			// LIKED -> DISLIKED, the paid fee stays spent
			if reaction.TokenID != nil {
				if err := BurnToken(tx, *reaction.TokenID); err != nil {
					return err
				}
			}
			reaction.Attitude = models.AttitudeDislike
			reaction.TokenID = nil
			if err := tx.Save(reaction).Error; err != nil {
				return err
			}
			if err := bumpPublishCounters(tx, item.ID, -1, 1); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, -1); err != nil {
				return err
			}
			result = StateDisliked

		default:
			// DISLIKED -> NONE
			if err := tx.Delete(reaction).Error; err != nil {
				return err
			}
			if err := bumpPublishCounters(tx, item.ID, 0, -1); err != nil {
				return err
			}
			result = StateNone
		}

		return nil
	})

	return result, err
}

// LikeComment runs the identical machine against a comment, without fee
// transfer or receipt token.
func LikeComment(user models.Account, profileID, commentID uint) (EngagementState, error) {
	profile, err := GetOwnedProfile(profileID, user.ID)
	if err != nil {
		return StateNone, err
	}
	item, err := GetComment(commentID)
	if err != nil {
		return StateNone, err
	}

	result := StateNone
	err = database.C.Transaction(func(tx *gorm.DB) error {
		reaction, err := getReaction(tx, models.CommentableKindComment, item.ID, profile.ID)
		if err != nil {
			return err
		}

		switch {
		case reaction == nil:
			reaction = &models.Reaction{
				TargetKind: models.CommentableKindComment,
				TargetID:   item.ID,
				ProfileID:  profile.ID,
				Attitude:   models.AttitudeLike,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, 1, 0); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, 1); err != nil {
				return err
			}
			result = StateLiked

		case reaction.Attitude == models.AttitudeDislike:
			reaction.Attitude = models.AttitudeLike
			if err := tx.Save(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, 1, -1); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, 1); err != nil {
				return err
			}
			result = StateLiked

		default:
			if err := tx.Delete(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, -1, 0); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, -1); err != nil {
				return err
			}
			result = StateNone
		}

		return nil
	})

	return result, err
}

func DislikeComment(user models.Account, profileID, commentID uint) (EngagementState, error) {
	profile, err := GetOwnedProfile(profileID, user.ID)
	if err != nil {
		return StateNone, err
	}
	item, err := GetComment(commentID)
	if err != nil {
		return StateNone, err
	}

	result := StateNone
	err = database.C.Transaction(func(tx *gorm.DB) error {
		reaction, err := getReaction(tx, models.CommentableKindComment, item.ID, profile.ID)
		if err != nil {
			return err
		}

		switch {
		case reaction == nil:
			reaction = &models.Reaction{
				TargetKind: models.CommentableKindComment,
				TargetID:   item.ID,
				ProfileID:  profile.ID,
				Attitude:   models.AttitudeDislike,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, 0, 1); err != nil {
				return err
			}
			result = StateDisliked

		case reaction.Attitude == models.AttitudeLike:
			reaction.Attitude = models.AttitudeDislike
			if err := tx.Save(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, -1, 1); err != nil {
				return err
			}
			if err := bumpProfileGivenLikes(tx, profile.ID, -1); err != nil {
				return err
			}
			result = StateDisliked

		default:
			if err := tx.Delete(reaction).Error; err != nil {
				return err
			}
			if err := bumpCommentCounters(tx, item.ID, 0, -1); err != nil {
				return err
			}
			result = StateNone
		}

		return nil
	})

	return result, err
}
