package admin

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL)
	{
		admin.Put("/fees/like", adminUpdateLikeFee)
		admin.Put("/fees/platform", adminUpdatePlatformFee)
		admin.Put("/oracle", adminUpdateOracleWiring)
		admin.Post("/withdraw", adminWithdraw)
		admin.Post("/deposit", adminDeposit)
		admin.Get("/events", adminListEvents)
		admin.Post("/cleanup", adminTriggerCleanup)
	}
}
