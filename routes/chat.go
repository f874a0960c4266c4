package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/controllers"
	"github.com/khadamaty/khadamaty-api/middleware"
)

// SetupChatRoutes configures conversation routes for both roles
func SetupChatRoutes(app *fiber.App) {
	chats := app.Group("/chats", middleware.Protected())

	chats.Post("/open", controllers.OpenThread)
	chats.Get("/", controllers.ListThreads)
	chats.Get("/:id/messages", controllers.GetMessages)
	chats.Post("/:id/messages", controllers.SendMessage)
	chats.Post("/:id/read", controllers.MarkThreadRead)
}
