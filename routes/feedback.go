package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/controllers"
	"github.com/khadamaty/khadamaty-api/middleware"
)

// SetupFeedbackRoutes configures complaint/suggestion routes
func SetupFeedbackRoutes(app *fiber.App) {
	feedback := app.Group("/feedback", middleware.Protected())

	feedback.Post("/", controllers.SubmitFeedback)
	feedback.Get("/mine", controllers.GetMyFeedback)
}
