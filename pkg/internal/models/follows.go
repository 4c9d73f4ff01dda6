package models

import "time"

// FollowEdge is the directed follower -> followee relationship. Rows are
// hard deleted on unfollow so the pair index stays reusable.
type FollowEdge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FollowerID uint `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair"`
	FolloweeID uint `json:"followee_id" gorm:"uniqueIndex:idx_follow_pair;index"`
	TokenID    uint `json:"token_id"`
}
