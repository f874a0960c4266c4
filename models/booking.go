package models

import (
	"fmt"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	gorm.Model
	ProviderEmail string        `json:"provider_email" gorm:"index;not null"`
	ProviderName  string        `json:"provider_name"`
	ClientEmail   string        `json:"client_email" gorm:"index;not null"`
	ClientName    string        `json:"client_name"`
	BookingDate   string        `json:"booking_date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	BookingTime   string        `json:"booking_time" gorm:"not null"`                  // slot label
	Note          string        `json:"note"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16)"`
	// SlotKey holds provider|date|time while the booking is pending or
	// confirmed. The unique index on it is what makes booking creation an
	// insert-if-absent: two concurrent requests for the same slot cannot
	// both commit. Cancellation clears it so the slot can be rebooked.
	SlotKey *string `json:"-" gorm:"uniqueIndex"`
}

// SlotKeyFor builds the contention key for a (provider, date, time) triple.
func SlotKeyFor(providerEmail, date, slot string) string {
	return fmt.Sprintf("%s|%s|%s", providerEmail, date, slot)
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.SlotKey == nil && (b.Status == StatusPending || b.Status == StatusConfirmed) {
		key := SlotKeyFor(b.ProviderEmail, b.BookingDate, b.BookingTime)
		b.SlotKey = &key
	}
	return nil
}

// UpdateStatus applies a provider decision on a pending booking. Terminal
// states accept no further transitions.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	default:
		return fmt.Errorf("unknown booking status %s", b.Status)
	}

	slotKey := b.SlotKey
	if newStatus == StatusCancelled {
		// Release the slot for rebooking.
		slotKey = nil
	}
	// The write is gated on the stored status, not the loaded copy, so a
	// stale copy cannot re-decide a booking another request already closed.
	res := tx.Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, StatusPending).
		Updates(map[string]interface{}{
			"status":   newStatus,
			"slot_key": slotKey,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking is no longer pending")
	}

	b.Status = newStatus
	b.SlotKey = slotKey
	return nil
}
