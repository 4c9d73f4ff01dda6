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

func createComment(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Creator    uint   `json:"creator" validate:"required"`
		ParentKind string `json:"parent_kind" validate:"required,oneof=publish comment"`
		ParentID   uint   `json:"parent_id" validate:"required"`
		ContentURI string `json:"content_uri" validate:"required,max=2048"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	creator, err := services.GetOwnedProfile(data.Creator, user.ID)
	if err != nil {
		return status.AsFiberError(err)
	}

	item, err := services.NewComment(user, creator, data.ParentKind, data.ParentID, data.ContentURI)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "comments.new", strconv.Itoa(int(item.ID)), map[string]any{
		"parent_kind": data.ParentKind,
		"parent_id":   data.ParentID,
	})

	return c.JSON(item)
}

func editComment(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("commentId", 0)

	var data struct {
		Creator    uint   `json:"creator" validate:"required"`
		ContentURI string `json:"content_uri" validate:"required,max=2048"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.GetOwnedProfile(data.Creator, user.ID); err != nil {
		return status.AsFiberError(err)
	}

	item, err := services.GetComment(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}
	if item.AccountID != user.ID || item.CreatorID != data.Creator {
		return status.AsFiberError(status.ErrNotOwner)
	}

	item, err = services.EditComment(item, data.ContentURI)
	if err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "comments.edit", strconv.Itoa(int(item.ID)), nil)

	return c.JSON(item)
}

func deleteComment(c *fiber.Ctx) error {
	if err := security.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("commentId", 0)

	creatorId := c.QueryInt("creatorId", 0)
	if creatorId <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing creator id in request")
	}

	if err := services.DeleteComment(user, uint(id), uint(creatorId)); err != nil {
		return status.AsFiberError(err)
	}

	services.AddEvent(user.ID, "comments.delete", strconv.Itoa(id), nil)

	return c.SendStatus(fiber.StatusOK)
}

func getComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("commentId", 0)

	item, err := services.GetComment(uint(id))
	if err != nil {
		return status.AsFiberError(err)
	}

	return c.JSON(item)
}

func listComment(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)
	parentKind := c.Query("parentKind", models.CommentableKindPublish)
	parentId := c.QueryInt("parentId", 0)

	if parentId <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing parent id in request")
	}
	if err := services.ResolveCommentable(parentKind, uint(parentId)); err != nil {
		return status.AsFiberError(err)
	}

	items, err := services.ListCommentByParent(parentKind, uint(parentId), take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": services.CountCommentByParent(parentKind, uint(parentId)),
		"data":  items,
	})
}
