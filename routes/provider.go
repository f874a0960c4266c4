package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/controllers/provider"
	"github.com/khadamaty/khadamaty-api/middleware"
	"github.com/khadamaty/khadamaty-api/models"
)

// SetupProviderRoutes configures routes for the provider dashboard
func SetupProviderRoutes(app *fiber.App) {
	group := app.Group("/provider", middleware.Protected(), middleware.RequireRole(models.RoleProvider))

	group.Get("/profile", provider.GetMyProfile)
	group.Patch("/profile", provider.UpdateMyProfile)

	group.Get("/bookings", provider.ListBookings)
	group.Patch("/bookings/:id/status", provider.UpdateBookingStatus)

	group.Post("/works", provider.CreateWork)
	group.Patch("/works/:id", provider.UpdateWork)
	group.Delete("/works/:id", provider.DeleteWork)
	group.Post("/works/:id/images", provider.UploadWorkImage)
}
