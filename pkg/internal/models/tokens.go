package models

const (
	TokenKindProfile = "profile"
	TokenKindPublish = "publish"
	TokenKindComment = "comment"
	TokenKindFollow  = "follow"
	TokenKindLike    = "like"
)

// Token is the ledger row behind every entity and edge. The surrounding
// bookkeeping (transfers, approvals) lives outside this service; the core
// only mints, burns and resolves ownership.
type Token struct {
	BaseModel

	Kind      string `json:"kind" gorm:"index"`
	AccountID uint   `json:"account_id" gorm:"index"`
}
