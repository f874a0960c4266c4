package consumer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// CreateBooking places an appointment request against a provider slot.
// The availability check is advisory; the unique slot key on the insert is
// what actually arbitrates contention.
func CreateBooking(c *fiber.Ctx) error {
	type BookingInput struct {
		ProviderEmail string `json:"provider_email"`
		BookingDate   string `json:"booking_date"`
		BookingTime   string `json:"booking_time"`
		Note          string `json:"note"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	clientEmail, _ := c.Locals("userEmail").(string)
	var client models.User
	if err := db.DB.Where("email = ?", clientEmail).First(&client).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Client account not found",
			Error:   err.Error(),
		})
	}

	providerEmail := utils.CanonicalEmail(input.ProviderEmail)
	if providerEmail == "" {
		return validationError(c, "provider_email", "required")
	}
	if input.BookingTime == "" {
		return validationError(c, "booking_time", "required")
	}
	if !utils.IsBookingSlot(input.BookingTime) {
		return validationError(c, "booking_time", "not one of the bookable slots")
	}
	date, err := utils.NormalizeBookingDate(input.BookingDate)
	if err != nil {
		return validationError(c, "booking_date", "expected YYYY-MM-DD")
	}

	var profile models.ProviderProfile
	if err := db.DB.Preload("User").Where("email = ?", providerEmail).First(&profile).Error; err != nil {
		nf := &utils.NotFoundError{Resource: "provider"}
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   nf.Error(),
		})
	}

	booking := models.Booking{
		ProviderEmail: providerEmail,
		ProviderName:  profile.User.Name,
		ClientEmail:   client.Email,
		ClientName:    client.Name,
		BookingDate:   date,
		BookingTime:   input.BookingTime,
		Note:          input.Note,
		Status:        models.StatusPending,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckSlotAvailability(tx, providerEmail, date, input.BookingTime)
		if err != nil {
			return &utils.PersistenceError{Op: "check availability", Err: err}
		}
		if !available {
			return &utils.SlotTakenError{ProviderEmail: providerEmail, Date: date, Slot: input.BookingTime}
		}
		if err := tx.Create(&booking).Error; err != nil {
			// A concurrent request won the slot between the check and the
			// insert; the unique key turns that into a clean rejection.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &utils.SlotTakenError{ProviderEmail: providerEmail, Date: date, Slot: input.BookingTime}
			}
			return &utils.PersistenceError{Op: "create booking", Err: err}
		}
		return nil
	})
	if err != nil {
		var slotTaken *utils.SlotTakenError
		if errors.As(err, &slotTaken) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "This slot is already booked, please pick another time",
				Error:   slotTaken.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings lists the authenticated consumer's bookings, newest first.
func GetMyBookings(c *fiber.Ctx) error {
	clientEmail, _ := c.Locals("userEmail").(string)

	var bookings []models.Booking
	if err := db.DB.Where("client_email = ?", clientEmail).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(bookings)
}

func validationError(c *fiber.Ctx, field, reason string) error {
	ve := &utils.ValidationError{Field: field, Reason: reason}
	return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
		Message: "Invalid booking request",
		Error:   ve.Error(),
	})
}
