package db

import (
	"fmt"
	"log"

	"github.com/khadamaty/khadamaty-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.ProviderProfile{},
		&models.Work{},
		&models.Booking{},
		&models.Review{},
		&models.ChatThread{},
		&models.ChatMessage{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
