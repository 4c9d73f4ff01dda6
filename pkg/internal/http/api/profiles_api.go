package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

func createProfile(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Handle   string `json:"handle" validate:"required"`
		ImageURI string `json:"image_uri" validate:"max=2048"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	profile, err := services.CreateProfile(user, data.Handle, data.ImageURI)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "profiles.new", strconv.Itoa(int(profile.ID)), map[string]any{
		"handle": profile.Handle,
	})

	return c.JSON(profile)
}

func validateHandle(c *fiber.Ctx) error {
	handle := c.Query("handle")

	if err := services.ValidateHandle(handle); err != nil {
		return status.AsFiberError(err)
	}
	if _, err := services.GetProfileByHandle(handle); err == nil {
		return status.AsFiberError(status.ErrDuplicateHandle)
	}

	return c.SendStatus(fiber.StatusOK)
}

func getProfile(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)

	profile, err := services.GetProfile(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(profile)
}

func getProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")

	profile, err := services.GetProfileByHandle(handle)
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(profile)
}

func listOwnedProfile(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	profiles, err := services.ListOwnedProfile(user.ID)
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(profiles)
}

func getDefaultProfile(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	profile, err := services.GetDefaultProfile(user.ID)
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(profile)
}

func setDefaultProfile(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("profileId", 0)

	if err := services.SetDefaultProfile(user, uint(id)); err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "profiles.default", strconv.Itoa(id), nil)

	return c.SendStatus(fiber.StatusOK)
}

func updateProfileImage(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("profileId", 0)

	var data struct {
		ImageURI string `json:"image_uri" validate:"required,max=2048"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	profile, err := services.UpdateProfileImage(user, uint(id), data.ImageURI)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "profiles.image", strconv.Itoa(id), map[string]any{
		"image_uri": data.ImageURI,
	})

	return c.JSON(profile)
}
