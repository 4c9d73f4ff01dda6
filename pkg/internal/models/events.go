package models

import "gorm.io/datatypes"

// ActivityEvent is the notification side-channel for off-platform
// consumers (indexers, UIs). It carries no authority over the entity state.
type ActivityEvent struct {
	BaseModel

	Topic     string            `json:"topic" gorm:"index"`
	AccountID uint              `json:"account_id" gorm:"index"`
	RelatedID string            `json:"related_id"`
	Payload   datatypes.JSONMap `json:"payload"`
}
