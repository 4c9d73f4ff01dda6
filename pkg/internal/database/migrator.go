package database

import (
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Profile{},
	&models.DefaultProfile{},
	&models.Publish{},
	&models.Comment{},
	&models.FollowEdge{},
	&models.Wallet{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.Reaction{},
			&models.Token{},
			&models.Transfer{},
			&models.ActivityEvent{},
			&models.PlatformSettings{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
