package services

import (
	"github.com/rs/zerolog/log"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
)

// AddEvent appends a notification record for off-platform consumers.
// Events are a side-channel; a failed append never fails the operation that
// produced it.
func AddEvent(accountID uint, topic, relatedID string, payload map[string]any) {
	event := models.ActivityEvent{
		Topic:     topic,
		AccountID: accountID,
		RelatedID: relatedID,
		Payload:   payload,
	}

	if err := database.C.Create(&event).Error; err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("An error occurred when recording activity event...")
		return
	}

	log.Debug().Str("topic", topic).Str("related", relatedID).Uint("account", accountID).
		Msg("Activity event recorded.")
}

func ListEvent(take int, offset int, topic string) ([]models.ActivityEvent, int64, error) {
	if take > 100 {
		take = 100
	}

	tx := database.C.Model(&models.ActivityEvent{})
	if len(topic) > 0 {
		tx = tx.Where("topic = ?", topic)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, count, err
	}

	var events []models.ActivityEvent
	if err := tx.Limit(take).Offset(offset).Order("created_at DESC").Find(&events).Error; err != nil {
		return events, count, err
	}

	return events, count, nil
}
