package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func toggleFollow(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Follower uint `json:"follower" validate:"required"`
		Followee uint `json:"followee" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	following, edge, err := services.ToggleFollow(user, data.Follower, data.Followee)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "follows.toggle", strconv.Itoa(int(data.Followee)), map[string]any{
		"follower":  data.Follower,
		"following": following,
	})

	return c.Status(lo.Ternary(following, fiber.StatusCreated, fiber.StatusNoContent)).JSON(edge)
}

func getFollowCounts(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)

	followers, following, err := services.GetFollowCounts(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(fiber.Map{
		"followers": followers,
		"following": following,
	})
}

func getFollowStatus(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)
	otherId, _ := c.ParamsInt("otherId", 0)

	return c.JSON(fiber.Map{
		"following": services.IsFollowing(uint(id), uint(otherId)),
		"followed":  services.IsFollowing(uint(otherId), uint(id)),
	})
}

func listFollowers(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	profiles, err := services.ListFollowers(uint(id), take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(profiles)
}

func listFollowing(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	profiles, err := services.ListFollowing(uint(id), take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(profiles)
}
