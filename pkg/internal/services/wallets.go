package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/gorm"
)

// GetWallet fetches or lazily creates the wallet row. The platform account
// id is zero, so the condition must not go through a struct query.
func GetWallet(tx *gorm.DB, accountID uint) (models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where("account_id = ?", accountID).First(&wallet).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return wallet, fmt.Errorf("unable to get wallet: %v", err)
		}
		wallet = models.Wallet{
			AccountID: accountID,
			Balance:   decimal.Zero,
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return wallet, fmt.Errorf("unable to create wallet: %v", err)
		}
	}
	return wallet, nil
}

// CreditWallet and DebitWallet move money through in-database expressions;
// read-modify-write on the balance column would let concurrent settlements
// lose a credit or double-spend past the funds check.

func CreditWallet(tx *gorm.DB, accountID uint, amount decimal.Decimal) error {
	if _, err := GetWallet(tx, accountID); err != nil {
		return err
	}

	return tx.Model(&models.Wallet{}).
		Where("account_id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

func DebitWallet(tx *gorm.DB, accountID uint, amount decimal.Decimal) error {
	if _, err := GetWallet(tx, accountID); err != nil {
		return err
	}

	res := tx.Model(&models.Wallet{}).
		Where("account_id = ? AND balance >= ?", accountID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return status.ErrInsufficientFunds
	}
	return nil
}

func RecordTransfer(tx *gorm.DB, kind string, from, to *uint, amount decimal.Decimal, relatedID *uint) (models.Transfer, error) {
	transfer := models.Transfer{
		ID:        uuid.NewString(),
		Kind:      kind,
		From:      from,
		To:        to,
		Amount:    amount,
		RelatedID: relatedID,
	}

	err := tx.Create(&transfer).Error
	return transfer, err
}

// Deposit tops up an account wallet from outside the platform.
func Deposit(accountID uint, amount decimal.Decimal) (models.Transfer, error) {
	var transfer models.Transfer
	if amount.LessThanOrEqual(decimal.Zero) {
		return transfer, fmt.Errorf("%w: deposit amount must be positive", status.ErrInvalidInput)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := CreditWallet(tx, accountID, amount); err != nil {
			return err
		}
		var err error
		transfer, err = RecordTransfer(tx, models.TransferKindDeposit, nil, &accountID, amount, nil)
		return err
	})

	return transfer, err
}

// WithdrawPlatform moves accumulated platform cuts out to the given account.
func WithdrawPlatform(to uint, amount decimal.Decimal) (models.Transfer, error) {
	var transfer models.Transfer
	if amount.LessThanOrEqual(decimal.Zero) {
		return transfer, fmt.Errorf("%w: withdraw amount must be positive", status.ErrInvalidInput)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		platform := models.PlatformAccountID
		if err := DebitWallet(tx, platform, amount); err != nil {
			return err
		}
		if err := CreditWallet(tx, to, amount); err != nil {
			return err
		}
		var err error
		transfer, err = RecordTransfer(tx, models.TransferKindWithdraw, &platform, &to, amount, nil)
		return err
	})

	return transfer, err
}
