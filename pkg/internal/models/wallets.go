package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformAccountID is the reserved identity holding the platform's cut
// until an admin withdraws it.
const PlatformAccountID = uint(0)

type Wallet struct {
	BaseModel

	AccountID uint            `json:"account_id" gorm:"uniqueIndex"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(30,18);default:0"`
}

const (
	TransferKindLikeFee     = "like_fee"
	TransferKindPlatformCut = "platform_cut"
	TransferKindDeposit     = "deposit"
	TransferKindWithdraw    = "withdraw"
)

// Transfer is the append-only settlement record. From or To is nil when
// value enters or leaves the platform (deposit / withdraw).
type Transfer struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Kind   string          `json:"kind" gorm:"index"`
	From   *uint           `json:"from"`
	To     *uint           `json:"to"`
	Amount decimal.Decimal `json:"amount" gorm:"type:decimal(30,18)"`

	// Related publish for like-fee settlements.
	RelatedID *uint `json:"related_id"`
}
