package provider

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// ListBookings returns the authenticated provider's bookings, optionally
// filtered by status, newest first.
func ListBookings(c *fiber.Ctx) error {
	providerEmail, _ := c.Locals("userEmail").(string)

	query := db.DB.Where("provider_email = ?", providerEmail)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(bookings)
}

// UpdateBookingStatus confirms or cancels a pending booking. Only the
// provider who owns the booking may decide it; terminal states are rejected.
func UpdateBookingStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Status != models.StatusConfirmed && input.Status != models.StatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Status must be confirmed or cancelled",
			Error:   fmt.Sprintf("got %q", input.Status),
		})
	}

	providerEmail, _ := c.Locals("userEmail").(string)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking id",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	if booking.ProviderEmail != providerEmail {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't own this booking",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return booking.UpdateStatus(tx, input.Status)
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot update booking status",
			Error:   err.Error(),
		})
	}

	if booking.Status == models.StatusConfirmed {
		go sendDecisionEmail(booking)
	}

	return c.JSON(booking)
}

func sendDecisionEmail(booking models.Booking) {
	subject := fmt.Sprintf("تم تأكيد حجزك مع %s", booking.ProviderName)
	body := fmt.Sprintf(`
		<p>مرحباً %s،</p>
		<p>تم تأكيد حجزك مع %s يوم %s الساعة %s.</p>
	`, booking.ClientName, booking.ProviderName, booking.BookingDate, booking.BookingTime)

	if err := utils.SendEmail(booking.ClientEmail, subject, body); err != nil {
		fmt.Printf("Failed to send booking decision email for booking %d: %v\n", booking.ID, err)
	}
}
