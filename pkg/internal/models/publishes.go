package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Publish struct {
	BaseModel

	AccountID uint    `json:"account_id" gorm:"index"`
	CreatorID uint    `json:"creator_id" gorm:"index"`
	Creator   Profile `json:"creator"`
	TokenID   uint    `json:"token_id"`

	ContentURI  string `json:"content_uri"`
	ImageURI    string `json:"image_uri"`
	MetadataURI string `json:"metadata_uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`

	// Optional three-level classification. A level may only be set when the
	// level above it is set.
	CategoryOne   string `json:"category_one"`
	CategoryTwo   string `json:"category_two"`
	CategoryThree string `json:"category_three"`

	Attachments datatypes.JSONSlice[string] `json:"attachments"`

	TotalLikes    int             `json:"total_likes"`
	TotalDislikes int             `json:"total_dislikes"`
	Revenue       decimal.Decimal `json:"revenue" gorm:"type:decimal(30,18);default:0"`

	Metric PublishMetric `json:"metric" gorm:"-"`
}

type PublishMetric struct {
	ReplyCount int64 `json:"reply_count"`
}
