package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"gorm.io/gorm"
)

// DoAutoDatabaseCleanup purges engagement rows whose target has been
// tombstoned and hard-deletes tombstones past the retention window.
// Deletion intentionally does not cascade inline; this job is the one place
// orphans get reclaimed. Purging a like also burns its receipt token and
// unwinds the liker's given-likes counter so the ledger does not drift.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64

	for kind, table := range map[string]string{
		models.CommentableKindPublish: "publishes",
		models.CommentableKindComment: "comments",
	} {
		err := database.C.Transaction(func(tx *gorm.DB) error {
			var stale []models.Reaction
			if err := tx.
				Where("target_kind = ?", kind).
				Where("target_id IN (?)", tx.
					Table(table).
					Unscoped().
					Select("id").
					Where("deleted_at IS NOT NULL"),
				).
				Find(&stale).Error; err != nil {
				return err
			}
			if len(stale) == 0 {
				return nil
			}

			for _, reaction := range stale {
				if reaction.Attitude != models.AttitudeLike {
					continue
				}
				if reaction.TokenID != nil {
					if err := tx.Delete(&models.Token{}, *reaction.TokenID).Error; err != nil {
						return err
					}
				}
				if err := bumpProfileGivenLikes(tx, reaction.ProfileID, -1); err != nil {
					return err
				}
			}

			idx := lo.Map(stale, func(reaction models.Reaction, index int) uint {
				return reaction.ID
			})
			res := tx.Delete(&models.Reaction{}, idx)
			if res.Error != nil {
				return res.Error
			}
			count += res.RowsAffected
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("kind", kind).Msg("An error occurred when cleaning up reactions...")
		}
	}

	for _, model := range []any{&models.Publish{}, &models.Comment{}} {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when cleaning up tombstones...")
			continue
		}
		count += tx.RowsAffected
	}

	log.Info().Int64("affected", count).Msg("Database cleanup finished.")
}
