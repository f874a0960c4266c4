package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/controllers/consumer"
	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// Admin moderation endpoints. Every entity gets its own typed payload;
// record shapes are never edited by generic key enumeration.

// AdminListUsers returns all accounts.
func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// AdminUpdateUser edits a user's display fields.
func AdminUpdateUser(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	type UserInput struct {
		Name        *string `json:"name"`
		Governorate *string `json:"governorate"`
		Phone       *string `json:"phone"`
	}

	input := new(UserInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Governorate != nil {
		if !models.IsValidGovernorate(*input.Governorate) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Unknown governorate",
			})
		}
		user.Governorate = *input.Governorate
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// AdminDeleteUser removes a user account. A provider account loses its
// profile as well; historical bookings and reviews stay for moderation.
func AdminDeleteUser(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if user.Role == models.RoleProvider {
			if err := tx.Where("email = ?", email).Delete(&models.ProviderProfile{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListProviders returns all provider profiles with their accounts.
func AdminListProviders(c *fiber.Ctx) error {
	var profiles []models.ProviderProfile
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}
	for i := range profiles {
		profiles[i].User.Password = ""
	}
	return c.JSON(profiles)
}

// AdminUpdateProvider edits a provider profile.
func AdminUpdateProvider(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	var profile models.ProviderProfile
	if err := db.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}

	type ProviderInput struct {
		Category        *string `json:"category"`
		Profession      *string `json:"profession"`
		SubscriptionFee *string `json:"subscription_fee"`
		Bio             *string `json:"bio"`
		ShowContact     *bool   `json:"show_contact"`
		Address         *string `json:"address"`
	}

	input := new(ProviderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	category := profile.Category
	if input.Category != nil {
		category = *input.Category
		if !models.IsValidCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Unknown service category",
			})
		}
	}
	profession := profile.Profession
	if input.Profession != nil {
		profession = *input.Profession
	}
	if !models.IsValidProfession(category, profession) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Profession does not belong to this category",
		})
	}

	profile.Category = category
	profile.Profession = profession
	if input.SubscriptionFee != nil {
		if !models.IsValidSubscriptionFee(*input.SubscriptionFee) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Unknown subscription fee",
			})
		}
		profile.SubscriptionFee = *input.SubscriptionFee
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.ShowContact != nil {
		profile.ShowContact = *input.ShowContact
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update provider",
			Error:   err.Error(),
		})
	}

	return c.JSON(profile)
}

// AdminListBookings returns all bookings for moderation.
func AdminListBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := db.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}
	return c.JSON(bookings)
}

// AdminListReviews returns all reviews.
func AdminListReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := db.DB.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// AdminUpdateReview edits a review and refreshes the provider aggregate from
// the review set, so edits can never drift the counters.
func AdminUpdateReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid review id",
		})
	}

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
			Error:   err.Error(),
		})
	}

	type ReviewInput struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Rating must be between 1 and 5",
			})
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		_, err := models.RefreshProviderRating(tx, review.ProviderEmail)
		return err
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update review",
			Error:   err.Error(),
		})
	}

	consumer.InvalidateProviderRanking()
	return c.JSON(review)
}

// AdminDeleteReview removes a review and refreshes the provider aggregate.
func AdminDeleteReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid review id",
		})
	}

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
			Error:   err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		_, err := models.RefreshProviderRating(tx, review.ProviderEmail)
		return err
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete review",
			Error:   err.Error(),
		})
	}

	consumer.InvalidateProviderRanking()
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListFeedback returns all feedback, optionally filtered by status.
func AdminListFeedback(c *fiber.Ctx) error {
	query := db.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var feedbacks []models.Feedback
	if err := query.Find(&feedbacks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch feedback",
			Error:   err.Error(),
		})
	}
	return c.JSON(feedbacks)
}

// AdminUpdateFeedback moves a feedback item through triage and records the
// admin's response.
func AdminUpdateFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid feedback id",
		})
	}

	var feedback models.Feedback
	if err := db.DB.First(&feedback, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Feedback not found",
			Error:   err.Error(),
		})
	}

	type FeedbackInput struct {
		Status        *models.FeedbackStatus `json:"status"`
		AdminResponse *string                `json:"admin_response"`
	}

	input := new(FeedbackInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Status != nil {
		if !models.IsValidFeedbackStatus(*input.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Unknown feedback status",
			})
		}
		feedback.Status = *input.Status
	}
	if input.AdminResponse != nil {
		feedback.AdminResponse = *input.AdminResponse
	}

	if err := db.DB.Save(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update feedback",
			Error:   err.Error(),
		})
	}

	return c.JSON(feedback)
}
