package models

import "time"

type ReactionAttitude = int8

const (
	AttitudeLike = ReactionAttitude(iota)
	AttitudeDislike
)

// Reaction is the per (target, profile) engagement edge. At most one row
// exists per pair, so a like and a dislike can never coexist. Rows are hard
// deleted when the toggle returns to the neutral state.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TargetKind string           `json:"target_kind" gorm:"uniqueIndex:idx_reaction_pair"`
	TargetID   uint             `json:"target_id" gorm:"uniqueIndex:idx_reaction_pair"`
	ProfileID  uint             `json:"profile_id" gorm:"uniqueIndex:idx_reaction_pair;index"`
	Attitude   ReactionAttitude `json:"attitude"`

	// Receipt token minted for paid publish likes; nil for dislikes and for
	// comment reactions.
	TokenID *uint `json:"token_id"`
}
