package utils

import (
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/models"
)

// CheckSlotAvailability reports whether a provider slot is still free: no
// booking exists for the triple in pending or confirmed status. It fails
// closed — a query error reports the slot as unavailable.
//
// This check alone carries no atomicity guarantee; the unique index on
// bookings.slot_key is what prevents two concurrent callers from both
// inserting.
func CheckSlotAvailability(tx *gorm.DB, providerEmail, date, slot string) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("provider_email = ? AND booking_date = ? AND booking_time = ? AND status IN ?",
			providerEmail, date, slot,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
