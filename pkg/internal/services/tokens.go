package services

import (
	"errors"
	"fmt"

	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
	"gorm.io/gorm"
)

// The token ledger is the boundary to the external non-fungible-token
// bookkeeping. The core only ever mints, burns and resolves ownership;
// transfers and approvals are somebody else's problem.

func MintToken(tx *gorm.DB, kind string, accountID uint) (models.Token, error) {
	token := models.Token{
		Kind:      kind,
		AccountID: accountID,
	}

	if err := tx.Create(&token).Error; err != nil {
		return token, fmt.Errorf("unable to mint %s token: %v", kind, err)
	}
	return token, nil
}

func BurnToken(tx *gorm.DB, id uint) error {
	var token models.Token
	if err := tx.Where("id = ?", id).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status.ErrNotFound
		}
		return err
	}

	return tx.Delete(&token).Error
}

func TokenOwner(id uint) (uint, error) {
	var token models.Token
	if err := database.C.Where("id = ?", id).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, status.ErrNotFound
		}
		return 0, err
	}

	return token.AccountID, nil
}
