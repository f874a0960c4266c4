package consumer

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// CreateReview adds a new review for a provider and refreshes the provider's
// aggregate rating from the full review set in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	type ReviewInput struct {
		ProviderEmail string `json:"provider_email"`
		Rating        int    `json:"rating"`
		Comment       string `json:"comment"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review data",
		})
	}

	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	clientEmail, _ := c.Locals("userEmail").(string)
	var client models.User
	if err := db.DB.Where("email = ?", clientEmail).First(&client).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Client account not found",
		})
	}

	providerEmail := utils.CanonicalEmail(input.ProviderEmail)

	// Check if the provider exists
	var profile models.ProviderProfile
	if err := db.DB.Preload("User").Where("email = ?", providerEmail).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	review := models.Review{
		ProviderEmail:    providerEmail,
		ProviderName:     profile.User.Name,
		ProviderCategory: profile.Category,
		ClientEmail:      client.Email,
		ClientName:       client.Name,
		Rating:           input.Rating,
		Comment:          input.Comment,
	}

	// Check if the user has already reviewed this provider
	hasExisting, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if hasExisting {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this provider",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		_, err := models.RefreshProviderRating(tx, providerEmail)
		return err
	})
	if err != nil {
		// A racing submission for the same pair lost to the unique index
		// rather than the check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "You have already reviewed this provider",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	InvalidateProviderRanking()

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetProviderReviews retrieves all reviews for a specific provider
func GetProviderReviews(c *fiber.Ctx) error {
	providerEmail := utils.CanonicalEmail(c.Params("email"))

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	var reviews []models.Review
	if err := db.DB.
		Where("provider_email = ?", providerEmail).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	// Count total reviews for pagination
	var count int64
	db.DB.Model(&models.Review{}).Where("provider_email = ?", providerEmail).Count(&count)

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"total":   count,
		"page":    page,
		"limit":   limit,
		"pages":   (int(count) + limit - 1) / limit,
	})
}

// GetProviderReviewStats retrieves review statistics for a provider
func GetProviderReviewStats(c *fiber.Ctx) error {
	providerEmail := utils.CanonicalEmail(c.Params("email"))

	type ReviewStats struct {
		ProviderEmail string  `json:"provider_email"`
		TotalReviews  int64   `json:"total_reviews"`
		AvgRating     float64 `json:"average_rating"`
		Rating5Count  int64   `json:"rating_5_count"`
		Rating4Count  int64   `json:"rating_4_count"`
		Rating3Count  int64   `json:"rating_3_count"`
		Rating2Count  int64   `json:"rating_2_count"`
		Rating1Count  int64   `json:"rating_1_count"`
	}

	summary, err := models.ComputeRatingSummary(db.DB, providerEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute review stats",
		})
	}

	stats := ReviewStats{
		ProviderEmail: providerEmail,
		TotalReviews:  summary.Count,
		AvgRating:     summary.Average,
	}

	// Count reviews by star bucket
	db.DB.Model(&models.Review{}).Where("provider_email = ? AND rating = 5", providerEmail).Count(&stats.Rating5Count)
	db.DB.Model(&models.Review{}).Where("provider_email = ? AND rating = 4", providerEmail).Count(&stats.Rating4Count)
	db.DB.Model(&models.Review{}).Where("provider_email = ? AND rating = 3", providerEmail).Count(&stats.Rating3Count)
	db.DB.Model(&models.Review{}).Where("provider_email = ? AND rating = 2", providerEmail).Count(&stats.Rating2Count)
	db.DB.Model(&models.Review{}).Where("provider_email = ? AND rating = 1", providerEmail).Count(&stats.Rating1Count)

	return c.JSON(stats)
}
