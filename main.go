package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/khadamaty/khadamaty-api/cron"

	"github.com/khadamaty/khadamaty-api/db"

	"github.com/khadamaty/khadamaty-api/redis"

	"github.com/khadamaty/khadamaty-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	// The ranking cache degrades to direct database reads without Redis.
	if err := redis.InitRedis(); err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
	}
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Khadamaty API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupConsumerRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupChatRoutes(app)
	routes.SetupFeedbackRoutes(app)
	routes.SetupAdminRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server stopped")
}
