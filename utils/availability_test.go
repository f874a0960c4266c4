package utils

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/models"
)

func openBookingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCheckSlotAvailability_FreeSlot(t *testing.T) {
	db := openBookingDB(t)

	available, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Fatalf("expected free slot for provider with no bookings")
	}
}

func TestCheckSlotAvailability_ActiveBookingBlocks(t *testing.T) {
	db := openBookingDB(t)

	booking := models.Booking{
		ProviderEmail: "p@x.com",
		ClientEmail:   "c@x.com",
		BookingDate:   "2025-06-01",
		BookingTime:   "10:00 صباحاً",
		Status:        models.StatusPending,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	available, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Fatalf("expected slot blocked by pending booking")
	}

	// Other slots on the same day stay free.
	available, err = CheckSlotAvailability(db, "p@x.com", "2025-06-01", "11:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Fatalf("expected neighboring slot to stay free")
	}
}

func TestCheckSlotAvailability_Idempotent(t *testing.T) {
	db := openBookingDB(t)

	booking := models.Booking{
		ProviderEmail: "p@x.com",
		ClientEmail:   "c@x.com",
		BookingDate:   "2025-06-01",
		BookingTime:   "10:00 صباحاً",
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}

	first, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results without intervening writes, got %v then %v", first, second)
	}
}

func TestCheckSlotAvailability_CancelledSlotIsFree(t *testing.T) {
	db := openBookingDB(t)

	booking := models.Booking{
		ProviderEmail: "p@x.com",
		ClientEmail:   "c@x.com",
		BookingDate:   "2025-06-01",
		BookingTime:   "10:00 صباحاً",
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := booking.UpdateStatus(db, models.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	available, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Fatalf("expected cancelled slot to be free again")
	}
}

func TestCheckSlotAvailability_FailsClosed(t *testing.T) {
	db := openBookingDB(t)
	if err := db.Migrator().DropTable(&models.Booking{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	available, err := CheckSlotAvailability(db, "p@x.com", "2025-06-01", "10:00 صباحاً")
	if err == nil {
		t.Fatalf("expected query error after dropping table")
	}
	if available {
		t.Fatalf("query failure must report the slot as unavailable")
	}
}
