package models

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(entities...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newBooking() Booking {
	return Booking{
		ProviderEmail: "p@x.com",
		ProviderName:  "Provider",
		ClientEmail:   "c@x.com",
		ClientName:    "Client",
		BookingDate:   "2025-06-01",
		BookingTime:   "10:00 صباحاً",
	}
}

func TestBooking_DefaultsToPendingWithSlotKey(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", booking.Status)
	}
	if booking.SlotKey == nil {
		t.Fatalf("expected slot key to be set on create")
	}
	if *booking.SlotKey != SlotKeyFor("p@x.com", "2025-06-01", "10:00 صباحاً") {
		t.Fatalf("unexpected slot key %q", *booking.SlotKey)
	}
}

func TestBooking_SecondInsertForSameSlotRejected(t *testing.T) {
	db := openTestDB(t, &Booking{})

	first := newBooking()
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := newBooking()
	second.ClientEmail = "other@x.com"
	err := db.Create(&second).Error
	if err == nil {
		t.Fatalf("expected unique slot key to reject the second insert")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
}

func TestBooking_ConfirmPending(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := booking.UpdateStatus(db, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if booking.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %q", booking.Status)
	}

	var stored Booking
	if err := db.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != StatusConfirmed {
		t.Fatalf("expected stored status confirmed, got %q", stored.Status)
	}
	if stored.SlotKey == nil {
		t.Fatalf("confirmed booking must keep its slot key")
	}
}

func TestBooking_CancelReleasesSlot(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := booking.UpdateStatus(db, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var stored Booking
	if err := db.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.SlotKey != nil {
		t.Fatalf("cancelled booking must release its slot key")
	}

	// The slot is free for a new booking now.
	rebooked := newBooking()
	rebooked.ClientEmail = "other@x.com"
	if err := db.Create(&rebooked).Error; err != nil {
		t.Fatalf("expected rebooking after cancellation to succeed: %v", err)
	}
}

func TestBooking_NoTransitionsFromTerminalStates(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := booking.UpdateStatus(db, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if err := booking.UpdateStatus(db, StatusConfirmed); err == nil {
		t.Fatalf("expected confirming a cancelled booking to be rejected")
	}

	other := newBooking()
	other.BookingTime = "11:00 صباحاً"
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := other.UpdateStatus(db, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := other.UpdateStatus(db, StatusCancelled); err == nil {
		t.Fatalf("expected cancelling a confirmed booking to be rejected")
	}
}

func TestBooking_StaleCopyCannotRedecide(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two requests load the same pending booking. One cancels it; the other
	// still holds a pending copy and tries to confirm.
	var stale Booking
	if err := db.First(&stale, booking.ID).Error; err != nil {
		t.Fatalf("load stale copy: %v", err)
	}
	if err := booking.UpdateStatus(db, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if err := stale.UpdateStatus(db, StatusConfirmed); err == nil {
		t.Fatalf("expected stale confirm after cancellation to be rejected")
	}

	var stored Booking
	if err := db.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != StatusCancelled {
		t.Fatalf("expected cancellation to stand, got %q", stored.Status)
	}
	if stored.SlotKey != nil {
		t.Fatalf("released slot must not be re-claimed by a stale confirm")
	}
}

func TestBooking_PendingRejectsUnknownTarget(t *testing.T) {
	db := openTestDB(t, &Booking{})

	booking := newBooking()
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := booking.UpdateStatus(db, StatusPending); err == nil {
		t.Fatalf("expected pending -> pending to be rejected")
	}
}
