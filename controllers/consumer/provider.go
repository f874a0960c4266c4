package consumer

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/redis"
	"github.com/khadamaty/khadamaty-api/utils"
)

// rankingCacheKey caches the unfiltered provider ranking for the home page.
const rankingCacheKey = "providers:ranking"

const rankingCacheTTL = 5 * time.Minute

// ListProviders returns provider profiles filtered by category, governorate
// and profession, ranked by their recomputed average rating.
func ListProviders(c *fiber.Ctx) error {
	category := c.Query("category")
	governorate := c.Query("governorate")
	profession := c.Query("profession")

	unfiltered := category == "" && governorate == "" && profession == ""

	// Serve the home-page ranking from cache when possible.
	if unfiltered && redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, rankingCacheKey).Result(); err == nil {
			var profiles []models.ProviderProfile
			if json.Unmarshal([]byte(cached), &profiles) == nil {
				return c.JSON(profiles)
			}
		}
	}

	query := db.DB.Model(&models.ProviderProfile{}).Preload("User")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if profession != "" {
		query = query.Where("profession = ?", profession)
	}
	if governorate != "" {
		query = query.Joins("JOIN users ON users.id = provider_profiles.user_id").
			Where("users.governorate = ?", governorate)
	}

	var profiles []models.ProviderProfile
	if err := query.Order("average_rating DESC, ratings_count DESC").Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range profiles {
		profiles[i] = profiles[i].PublicView()
	}

	if unfiltered && redis.Client != nil {
		if payload, err := json.Marshal(profiles); err == nil {
			redis.Client.Set(redis.Ctx, rankingCacheKey, payload, rankingCacheTTL)
		}
	}

	return c.JSON(profiles)
}

// InvalidateProviderRanking drops the cached ranking after a review write.
func InvalidateProviderRanking() {
	if redis.Client != nil {
		redis.Client.Del(redis.Ctx, rankingCacheKey)
	}
}

// GetProvider returns a single provider profile by email.
func GetProvider(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	var profile models.ProviderProfile
	if err := db.DB.Preload("User").Where("email = ?", email).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}

	// The owner sees the full record, everyone else the public view.
	viewer, _ := c.Locals("userEmail").(string)
	if viewer != profile.Email {
		profile = profile.PublicView()
	}

	return c.JSON(profile)
}

// GetProviderWorks returns the provider's portfolio, newest first.
func GetProviderWorks(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	var works []models.Work
	if err := db.DB.Where("provider_email = ?", email).
		Order("created_at DESC").
		Find(&works).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch works",
			Error:   err.Error(),
		})
	}

	return c.JSON(works)
}

// GetProviderAvailability returns every slot label for the requested date
// with its availability. Query errors mark the day unavailable rather than
// guessing.
func GetProviderAvailability(c *fiber.Ctx) error {
	email := utils.CanonicalEmail(c.Params("email"))

	date, err := utils.NormalizeBookingDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date",
			Error:   err.Error(),
		})
	}

	var profile models.ProviderProfile
	if err := db.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}

	var taken []models.Booking
	queryErr := db.DB.
		Where("provider_email = ? AND booking_date = ? AND status IN ?",
			email, date,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&taken).Error

	takenSlots := make(map[string]bool, len(taken))
	for _, b := range taken {
		takenSlots[b.BookingTime] = true
	}

	type slotStatus struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	}
	slots := make([]slotStatus, 0, len(utils.BookingSlots))
	for _, label := range utils.BookingSlots {
		available := !takenSlots[label]
		if queryErr != nil {
			// Fail closed: never advertise a slot we could not verify.
			available = false
		}
		slots = append(slots, slotStatus{Time: label, Available: available})
	}

	return c.JSON(fiber.Map{
		"provider": email,
		"date":     date,
		"slots":    slots,
	})
}
