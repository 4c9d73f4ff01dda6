package models

const (
	CommentableKindPublish = "publish"
	CommentableKindComment = "comment"
)

type Comment struct {
	BaseModel

	AccountID uint    `json:"account_id" gorm:"index"`
	CreatorID uint    `json:"creator_id" gorm:"index"`
	Creator   Profile `json:"creator"`
	TokenID   uint    `json:"token_id"`

	// The target kind is fixed at creation; a comment attached to a publish
	// never becomes attached to a comment.
	ParentKind string `json:"parent_kind" gorm:"index:idx_comment_parent"`
	ParentID   uint   `json:"parent_id" gorm:"index:idx_comment_parent"`

	ContentURI string `json:"content_uri"`

	TotalLikes    int `json:"total_likes"`
	TotalDislikes int `json:"total_dislikes"`
}
