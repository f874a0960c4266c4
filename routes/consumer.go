package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/controllers/consumer"
	"github.com/khadamaty/khadamaty-api/middleware"
	"github.com/khadamaty/khadamaty-api/models"
)

// SetupConsumerRoutes configures provider browsing, booking and review routes
func SetupConsumerRoutes(app *fiber.App) {
	// Public browsing
	providers := app.Group("/providers")
	providers.Get("/", consumer.ListProviders)
	providers.Get("/:email", consumer.GetProvider)
	providers.Get("/:email/works", consumer.GetProviderWorks)
	providers.Get("/:email/reviews", consumer.GetProviderReviews)
	providers.Get("/:email/reviews/stats", consumer.GetProviderReviewStats)
	providers.Get("/:email/availability", consumer.GetProviderAvailability)

	// Booking and reviewing require a consumer account
	bookings := app.Group("/bookings", middleware.Protected())
	bookings.Post("/", middleware.RequireRole(models.RoleConsumer), consumer.CreateBooking)
	bookings.Get("/mine", consumer.GetMyBookings)

	reviews := app.Group("/reviews", middleware.Protected())
	reviews.Post("/", middleware.RequireRole(models.RoleConsumer), consumer.CreateReview)
}
