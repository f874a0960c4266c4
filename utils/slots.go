package utils

// BookingSlots is the fixed set of hourly labels a booking may use, in
// display order.
var BookingSlots = []string{
	"9:00 صباحاً",
	"10:00 صباحاً",
	"11:00 صباحاً",
	"12:00 ظهراً",
	"1:00 مساءً",
	"2:00 مساءً",
	"3:00 مساءً",
	"4:00 مساءً",
	"5:00 مساءً",
	"6:00 مساءً",
	"7:00 مساءً",
}

var slotHours = map[string]int{
	"9:00 صباحاً":  9,
	"10:00 صباحاً": 10,
	"11:00 صباحاً": 11,
	"12:00 ظهراً":  12,
	"1:00 مساءً":   13,
	"2:00 مساءً":   14,
	"3:00 مساءً":   15,
	"4:00 مساءً":   16,
	"5:00 مساءً":   17,
	"6:00 مساءً":   18,
	"7:00 مساءً":   19,
}

// IsBookingSlot reports whether the label is one of the fixed slots.
func IsBookingSlot(label string) bool {
	_, ok := slotHours[label]
	return ok
}

// SlotHour returns the 24h hour a slot label starts at.
func SlotHour(label string) (int, bool) {
	h, ok := slotHours[label]
	return h, ok
}
