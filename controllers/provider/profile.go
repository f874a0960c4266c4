package provider

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// GetMyProfile returns the authenticated provider's full profile.
func GetMyProfile(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)

	var profile models.ProviderProfile
	if err := db.DB.Preload("User").Where("email = ?", providerEmail).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	profile.User.Password = ""
	return c.JSON(profile)
}

// UpdateMyProfile edits the provider's public profile. Category and
// profession stay consistent with the catalog; rating fields are never
// writable here.
func UpdateMyProfile(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)

	var profile models.ProviderProfile
	if err := db.DB.Where("email = ?", providerEmail).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	type ProfileInput struct {
		Category        *string `json:"category"`
		Profession      *string `json:"profession"`
		SubscriptionFee *string `json:"subscription_fee"`
		Bio             *string `json:"bio"`
		ShowContact     *bool   `json:"show_contact"`
		Address         *string `json:"address"`
	}

	input := new(ProfileInput)
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
	if input.SubscriptionFee != nil && !models.IsValidSubscriptionFee(*input.SubscriptionFee) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown subscription fee",
		})
	}

	profile.Category = category
	profile.Profession = profession
	if input.SubscriptionFee != nil {
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
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	return c.JSON(profile)
}
