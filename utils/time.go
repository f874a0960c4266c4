package utils

import "time"

const BookingDateLayout = "2006-01-02"

// ToCairo converts UTC time to Egypt local time
func ToCairo(t time.Time) time.Time {
	cairo, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		return t // Fallback to UTC if the zone is not available
	}
	return t.In(cairo)
}

// NormalizeBookingDate canonicalizes a date to YYYY-MM-DD. Timestamps are
// accepted and truncated to their Cairo calendar day; everything else is
// rejected so only one wire format ever reaches storage.
func NormalizeBookingDate(raw string) (string, error) {
	if t, err := time.Parse(BookingDateLayout, raw); err == nil {
		return t.Format(BookingDateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return ToCairo(t).Format(BookingDateLayout), nil
	}
	return "", &ValidationError{Field: "booking_date", Reason: "expected YYYY-MM-DD"}
}
