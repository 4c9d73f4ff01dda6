package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		profiles := api.Group("/profiles").Name("Profiles API")
		{
			profiles.Get("/me", listOwnedProfile)
			profiles.Get("/validate", validateHandle)
			profiles.Get("/default", getDefaultProfile)
			profiles.Get("/handle/:handle", getProfileByHandle)
			profiles.Get("/:profileId", getProfile)
			profiles.Post("/", createProfile)
			profiles.Put("/:profileId/image", updateProfileImage)
			profiles.Post("/:profileId/default", setDefaultProfile)
		}

		publishes := api.Group("/publishes").Name("Publishes API")
		{
			publishes.Get("/", listPublish)
			publishes.Get("/:publishId", getPublish)
			publishes.Post("/", createPublish)
			publishes.Put("/:publishId", editPublish)
			publishes.Delete("/:publishId", deletePublish)

			publishes.Post("/:publishId/like", likePublish)
			publishes.Post("/:publishId/dislike", dislikePublish)
			publishes.Get("/:publishId/engagement", getPublishEngagement)
		}

		comments := api.Group("/comments").Name("Comments API")
		{
			comments.Get("/", listComment)
			comments.Get("/:commentId", getComment)
			comments.Post("/", createComment)
			comments.Put("/:commentId", editComment)
			comments.Delete("/:commentId", deleteComment)

			comments.Post("/:commentId/like", likeComment)
			comments.Post("/:commentId/dislike", dislikeComment)
			comments.Get("/:commentId/engagement", getCommentEngagement)
		}

		follows := api.Group("/follows").Name("Follows API")
		{
			follows.Post("/", toggleFollow)
			follows.Get("/:profileId/counts", getFollowCounts)
			follows.Get("/:profileId/followers", listFollowers)
			follows.Get("/:profileId/following", listFollowing)
			follows.Get("/:profileId/status/:otherId", getFollowStatus)
		}

		fees := api.Group("/fees").Name("Fees API")
		{
			fees.Get("/like", getLikeFee)
		}
	}
}
