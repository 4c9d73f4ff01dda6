package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func adminUpdateLikeFee(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}

	var data struct {
		Amount decimal.Decimal `json:"amount"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	settings, err := services.UpdateLikeFee(data.Amount)
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(settings)
}

func adminUpdatePlatformFee(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}

	var data struct {
		Percent int `json:"percent" validate:"min=0,max=100"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	settings, err := services.UpdatePlatformFeePercent(data.Percent)
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(settings)
}

func adminUpdateOracleWiring(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}

	var data struct {
		URL       string `json:"url" validate:"omitempty,url"`
		UseOracle bool   `json:"use_oracle"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	settings, err := services.UpdateOracleWiring(data.URL, data.UseOracle)
	if err != nil {
		return status.AsFiberError(err)
	}

	// Pull the feed right away so the first like after enabling does not
	// trip the readiness guard longer than needed.
	if settings.UseOracle {
		go services.RefreshOracleRate()
	}

	return c.JSON(settings)
}
