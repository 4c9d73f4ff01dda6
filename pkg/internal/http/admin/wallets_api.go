package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func adminWithdraw(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		To     uint            `json:"to" validate:"required"`
		Amount decimal.Decimal `json:"amount"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	transfer, err := services.WithdrawPlatform(data.To, data.Amount)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "platform.withdraw", transfer.ID, map[string]any{
		"to":     data.To,
		"amount": data.Amount.String(),
	})

	return c.JSON(transfer)
}

func adminDeposit(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Account uint            `json:"account" validate:"required"`
		Amount  decimal.Decimal `json:"amount"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	transfer, err := services.Deposit(data.Account, data.Amount)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "platform.deposit", transfer.ID, map[string]any{
		"account": data.Account,
		"amount":  data.Amount.String(),
	})

	return c.JSON(transfer)
}

func adminListEvents(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}

	take := c.QueryInt("take", 50)
	offset := c.QueryInt("offset", 0)

	events, count, err := services.ListEvent(take, offset, c.Query("topic"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  events,
	})
}

func adminTriggerCleanup(c *fiber.Ctx) error {
	if err := security.EnsureSuperuser(c); err != nil {
		return err
	}

	go services.DoAutoDatabaseCleanup()

	return c.SendStatus(fiber.StatusAccepted)
}
