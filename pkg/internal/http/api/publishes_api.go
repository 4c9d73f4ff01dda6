package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tokengraph/tokengraph/pkg/internal/database"
	"github.com/tokengraph/tokengraph/pkg/internal/http/exts"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
	"github.com/tokengraph/tokengraph/pkg/internal/security"
	"github.com/tokengraph/tokengraph/pkg/internal/services"
	"github.com/tokengraph/tokengraph/pkg/internal/status"
)

type publishRequest struct {
	Creator       uint     `json:"creator" validate:"required"`
	ContentURI    string   `json:"content_uri" validate:"required,max=2048"`
	ImageURI      string   `json:"image_uri" validate:"max=2048"`
	MetadataURI   string   `json:"metadata_uri" validate:"max=2048"`
	Title         string   `json:"title" validate:"max=256"`
	Description   string   `json:"description" validate:"max=4096"`
	CategoryOne   string   `json:"category_one" validate:"max=64"`
	CategoryTwo   string   `json:"category_two" validate:"max=64"`
	CategoryThree string   `json:"category_three" validate:"max=64"`
	Attachments   []string `json:"attachments"`
}

func (v publishRequest) toContent() services.PublishContent {
	return services.PublishContent{
		ContentURI:    v.ContentURI,
		ImageURI:      v.ImageURI,
		MetadataURI:   v.MetadataURI,
		Title:         v.Title,
		Description:   v.Description,
		CategoryOne:   v.CategoryOne,
		CategoryTwo:   v.CategoryTwo,
		CategoryThree: v.CategoryThree,
		Attachments:   v.Attachments,
	}
}

func createPublish(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data publishRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	creator, err := services.GetOwnedProfile(data.Creator, user.ID)
	if err != nil {
		return status.AsFiberError(err)
	}

	item, err := services.NewPublish(user, creator, data.toContent())
	if err != nil {
		return status.AsFiberError(err)
	}

	// The event carries the fields off-platform indexers need but the
	// record does not serve back in short form.
	services.AddEvent(user.ID, "publishes.new", strconv.Itoa(int(item.ID)), map[string]any{
		"title":       data.Title,
		"description": data.Description,
		"categories":  []string{data.CategoryOne, data.CategoryTwo, data.CategoryThree},
	})

	return c.JSON(item)
}

func editPublish(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("publishId", 0)

	var data publishRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.GetOwnedProfile(data.Creator, user.ID); err != nil {
		return status.AsFiberError(err)
	}

	item, err := services.GetPublish(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}
	if item.AccountID != user.ID || item.CreatorID != data.Creator {
		return status.AsFiberError(status.ErrNotOwner)
	}

	item, err = services.EditPublish(item, data.toContent())
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "publishes.edit", strconv.Itoa(int(item.ID)), nil)

	return c.JSON(item)
}

func deletePublish(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("publishId", 0)

	creatorId := c.QueryInt("creatorId", 0)
	if creatorId <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing creator id in request")
	}

	if err := services.DeletePublish(user, uint(id), uint(creatorId)); err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "publishes.delete", strconv.Itoa(id), nil)

	return c.SendStatus(fiber.StatusOK)
}

func getPublish(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("publishId", 0)

	item, err := services.GetPublish(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	item.Metric = models.PublishMetric{
		ReplyCount: services.CountCommentByParent(models.CommentableKindPublish, item.ID),
	}

	return c.JSON(item)
}

func listPublish(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := database.C
	if len(c.Query("probe")) > 0 {
		tx = services.FilterPublishWithFuzzySearch(tx, c.Query("probe"))
	}
	if creator := c.QueryInt("creator", 0); creator > 0 {
		tx = services.FilterPublishWithCreator(tx, uint(creator))
	}

	count, err := services.CountPublish(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListPublish(tx, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}
