package models

type Profile struct {
	BaseModel

	AccountID uint   `json:"account_id" gorm:"index"`
	Handle    string `json:"handle" gorm:"uniqueIndex"`
	ImageURI  string `json:"image_uri"`
	TokenID   uint   `json:"token_id"`

	TotalFollowers  int `json:"total_followers"`
	TotalFollowing  int `json:"total_following"`
	TotalGivenLikes int `json:"total_given_likes"`
}

// DefaultProfile is the per-account default pointer. The unique index on
// the account column is what keeps the default singular.
type DefaultProfile struct {
	BaseModel

	AccountID uint `json:"account_id" gorm:"uniqueIndex"`
	ProfileID uint `json:"profile_id"`
}
