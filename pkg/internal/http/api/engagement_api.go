package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func likePublish(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("publishId", 0)

	var data struct {
		Profile uint            `json:"profile" validate:"required"`
		Payment decimal.Decimal `json:"payment"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	state, err := services.LikePublish(user, data.Profile, uint(id), data.Payment)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "publishes.like", strconv.Itoa(id), map[string]any{
		"profile": data.Profile,
		"liked":   state == services.StateLiked,
	})

	return c.Status(lo.Ternary(state == services.StateLiked, fiber.StatusCreated, fiber.StatusNoContent)).
		JSON(fiber.Map{"state": state})
}

func dislikePublish(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("publishId", 0)

	var data struct {
		Profile uint `json:"profile" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	state, err := services.DislikePublish(user, data.Profile, uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "publishes.dislike", strconv.Itoa(id), map[string]any{
		"profile":  data.Profile,
		"disliked": state == services.StateDisliked,
	})

	return c.Status(lo.Ternary(state == services.StateDisliked, fiber.StatusCreated, fiber.StatusNoContent)).
		JSON(fiber.Map{"state": state})
}

func getPublishEngagement(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("publishId", 0)
	profileId := c.QueryInt("profile", 0)
	if profileId <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing profile id in request")
	}

	return c.JSON(fiber.Map{
		"liked":    services.CheckLikedPublish(uint(id), uint(profileId)),
		"disliked": services.CheckDisLikedPublish(uint(id), uint(profileId)),
	})
}

func likeComment(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("commentId", 0)

	var data struct {
		Profile uint `json:"profile" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	state, err := services.LikeComment(user, data.Profile, uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "comments.like", strconv.Itoa(id), map[string]any{
		"profile": data.Profile,
		"liked":   state == services.StateLiked,
	})

	return c.Status(lo.Ternary(state == services.StateLiked, fiber.StatusCreated, fiber.StatusNoContent)).
		JSON(fiber.Map{"state": state})
}

func dislikeComment(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("commentId", 0)

	var data struct {
		Profile uint `json:"profile" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	state, err := services.DislikeComment(user, data.Profile, uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "comments.dislike", strconv.Itoa(id), map[string]any{
		"profile":  data.Profile,
		"disliked": state == services.StateDisliked,
	})

	return c.Status(lo.Ternary(state == services.StateDisliked, fiber.StatusCreated, fiber.StatusNoContent)).
		JSON(fiber.Map{"state": state})
}

func getCommentEngagement(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)
	profileId := c.QueryInt("profile", 0)
	if profileId <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing profile id in request")
	}

	return c.JSON(fiber.Map{
		"liked":    services.CheckLikedComment(uint(id), uint(profileId)),
		"disliked": services.CheckDisLikedComment(uint(id), uint(profileId)),
	})
}

func getLikeFee(c *fiber.Ctx) error {
	fee, err := services.CalculateLikeFee()
	if err != nil {
		return status.AsFiberError(err)
	}

	settings, err := services.GetPlatformSettings()
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(fiber.Map{
		"amount":               fee,
		"platform_fee_percent": settings.PlatformFeePercent,
		"use_oracle":           settings.UseOracle,
	})
}
