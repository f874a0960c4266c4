package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// SubmitFeedback files a complaint or suggestion for admin triage.
func SubmitFeedback(c *fiber.Ctx) error {
	type FeedbackInput struct {
		Type    models.FeedbackType `json:"type"`
		Subject string              `json:"subject"`
		Body    string              `json:"body"`
	}

	input := new(FeedbackInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Type != models.FeedbackComplaint && input.Type != models.FeedbackSuggestion {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Type must be complaint or suggestion",
		})
	}
	if input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Feedback body is required",
		})
	}

	selfEmail, _ := c.Locals("userEmail").(string)
	var author models.User
	if err := db.DB.Where("email = ?", selfEmail).First(&author).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Account not found",
			Error:   err.Error(),
		})
	}

	feedback := models.Feedback{
		AuthorEmail: author.Email,
		AuthorName:  author.Name,
		Type:        input.Type,
		Subject:     input.Subject,
		Body:        input.Body,
		Status:      models.FeedbackNew,
	}

	if err := db.DB.Create(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to submit feedback",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// GetMyFeedback lists the caller's own complaints and suggestions.
func GetMyFeedback(c *fiber.Ctx) error {
	selfEmail, _ := c.Locals("userEmail").(string)

	var feedbacks []models.Feedback
	if err := db.DB.Where("author_email = ?", selfEmail).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch feedback",
			Error:   err.Error(),
		})
	}

	return c.JSON(feedbacks)
}
