package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// CreateWork adds a portfolio entry for the authenticated provider.
func CreateWork(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)

	type WorkInput struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
	}

	input := new(WorkInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Title is required",
		})
	}

	work := models.Work{
		ProviderEmail: providerEmail,
		Title:         input.Title,
		Description:   input.Description,
		Images:        models.ImageList(input.Images),
	}

	if err := db.DB.Create(&work).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create work",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(work)
}

// UpdateWork edits a portfolio entry owned by the provider.
func UpdateWork(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid work id",
		})
	}

	var work models.Work
	if err := db.DB.First(&work, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Work not found",
			Error:   err.Error(),
		})
	}
	if work.ProviderEmail != providerEmail {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't own this work",
		})
	}

	type WorkInput struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Images      *[]string `json:"images"`
	}

	input := new(WorkInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Title != nil {
		work.Title = *input.Title
	}
	if input.Description != nil {
		work.Description = *input.Description
	}
	if input.Images != nil {
		work.Images = models.ImageList(*input.Images)
	}

	if err := db.DB.Save(&work).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update work",
			Error:   err.Error(),
		})
	}

	return c.JSON(work)
}

// DeleteWork removes a portfolio entry owned by the provider.
func DeleteWork(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid work id",
		})
	}

	var work models.Work
	if err := db.DB.First(&work, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Work not found",
			Error:   err.Error(),
		})
	}
	if work.ProviderEmail != providerEmail {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't own this work",
		})
	}

	if err := db.DB.Delete(&work).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete work",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadWorkImage uploads an image to Cloudinary and appends its URL to the
// work's image list.
func UploadWorkImage(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid work id",
		})
	}

	var work models.Work
	if err := db.DB.First(&work, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Work not found",
			Error:   err.Error(),
		})
	}
	if work.ProviderEmail != providerEmail {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't own this work",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Image file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read image file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadWorkImage(file, uuid.NewString())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	work.Images = append(work.Images, url)
	if err := db.DB.Save(&work).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save image URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(work)
}
