package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	c := cron.New()
	// Run at the top of every hour to catch bookings starting in the next one
	_, err := c.AddFunc("0 * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders emails clients whose confirmed booking starts in the
// next hour, Cairo time.
func sendBookingReminders() {
	now := utils.ToCairo(time.Now())
	today := now.Format(utils.BookingDateLayout)
	nextHour := now.Hour() + 1

	var bookings []models.Booking
	err := db.DB.
		Where("status = ? AND booking_date = ?", models.StatusConfirmed, today).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		hour, ok := utils.SlotHour(booking.BookingTime)
		if !ok || hour != nextHour {
			continue
		}
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.ClientEmail)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("تذكير بموعدك مع %s", booking.ProviderName)
	body := fmt.Sprintf(`
		<p>مرحباً %s،</p>
		<p>هذا تذكير بموعدك القادم خلال ساعة.</p>
		<ul>
			<li><strong>مقدم الخدمة:</strong> %s</li>
			<li><strong>التاريخ:</strong> %s</li>
			<li><strong>الوقت:</strong> %s</li>
		</ul>
		<p>يرجى الحضور في الموعد. إذا احتجت للإلغاء تواصل مع مقدم الخدمة.</p>
	`, booking.ClientName, booking.ProviderName, booking.BookingDate, booking.BookingTime)

	return utils.SendEmail(booking.ClientEmail, subject, body)
}
