package models

import (
	"fmt"
	"math"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ProviderEmail    string `json:"provider_email" gorm:"index;not null"`
	ProviderName     string `json:"provider_name"`
	ProviderCategory string `json:"provider_category"`
	ClientEmail      string `json:"client_email" gorm:"index;not null"`
	ClientName       string `json:"client_name"`
	Rating           int    `json:"rating" gorm:"not null"`
	Comment          string `json:"comment"`
	// PairKey holds provider|client while the review is live. The unique
	// index on it is what enforces one review per client per provider; two
	// concurrent submissions cannot both insert. Cleared on delete so a
	// moderated-away review makes room for a new one.
	PairKey *string `json:"-" gorm:"uniqueIndex"`
}

// ReviewPairKeyFor builds the uniqueness key for a (provider, client) pair.
func ReviewPairKeyFor(providerEmail, clientEmail string) string {
	return fmt.Sprintf("%s|%s", providerEmail, clientEmail)
}

// BeforeCreate hook keeps the rating inside the star range even if a caller
// skipped validation, and stamps the pair key.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 {
		r.Rating = 1
	} else if r.Rating > 5 {
		r.Rating = 5
	}
	if r.PairKey == nil {
		key := ReviewPairKeyFor(r.ProviderEmail, r.ClientEmail)
		r.PairKey = &key
	}
	return nil
}

// AfterDelete releases the pair key on the soft-deleted row.
func (r *Review) AfterDelete(tx *gorm.DB) error {
	return tx.Unscoped().Model(&Review{}).
		Where("id = ?", r.ID).
		Update("pair_key", nil).Error
}

// HasExistingReview checks if this client already reviewed the provider.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("client_email = ? AND provider_email = ? AND deleted_at IS NULL",
			r.ClientEmail, r.ProviderEmail).
		Count(&count).Error

	return count > 0, err
}

// RatingSummary is the aggregate recomputed from a provider's review set.
type RatingSummary struct {
	Count   int64   `json:"count"`
	Total   int64   `json:"total"`
	Average float64 `json:"average"`
}

// ComputeRatingSummary folds the provider's reviews into count, total and a
// one-decimal average. Zero reviews yields 0/0/0.
func ComputeRatingSummary(tx *gorm.DB, providerEmail string) (RatingSummary, error) {
	var agg struct {
		Count int64
		Total int64
	}
	err := tx.Model(&Review{}).
		Select("COUNT(*) as count, COALESCE(SUM(rating), 0) as total").
		Where("provider_email = ?", providerEmail).
		Scan(&agg).Error
	if err != nil {
		return RatingSummary{}, err
	}

	summary := RatingSummary{Count: agg.Count, Total: agg.Total}
	if agg.Count > 0 {
		summary.Average = math.Round(float64(agg.Total)/float64(agg.Count)*10) / 10
	}
	return summary, nil
}

// RefreshProviderRating recomputes the aggregate from the review set and
// writes it onto the provider profile. The profile counters are only ever a
// cache of this recompute; nothing increments them independently.
func RefreshProviderRating(tx *gorm.DB, providerEmail string) (RatingSummary, error) {
	summary, err := ComputeRatingSummary(tx, providerEmail)
	if err != nil {
		return RatingSummary{}, err
	}

	err = tx.Model(&ProviderProfile{}).
		Where("email = ?", providerEmail).
		Updates(map[string]interface{}{
			"ratings_count":  summary.Count,
			"ratings_total":  summary.Total,
			"average_rating": summary.Average,
		}).Error
	if err != nil {
		return RatingSummary{}, err
	}
	return summary, nil
}
