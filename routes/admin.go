package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/controllers"
	"github.com/khadamaty/khadamaty-api/middleware"
	"github.com/khadamaty/khadamaty-api/models"
)

// SetupAdminRoutes configures the moderation dashboard routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	admin.Get("/users", controllers.AdminListUsers)
	admin.Patch("/users/:email", controllers.AdminUpdateUser)
	admin.Delete("/users/:email", controllers.AdminDeleteUser)

	admin.Get("/providers", controllers.AdminListProviders)
	admin.Patch("/providers/:email", controllers.AdminUpdateProvider)
	admin.Delete("/providers/:email", controllers.AdminDeleteUser)

	admin.Get("/bookings", controllers.AdminListBookings)

	admin.Get("/reviews", controllers.AdminListReviews)
	admin.Patch("/reviews/:id", controllers.AdminUpdateReview)
	admin.Delete("/reviews/:id", controllers.AdminDeleteReview)

	admin.Get("/feedback", controllers.AdminListFeedback)
	admin.Patch("/feedback/:id", controllers.AdminUpdateFeedback)
}
