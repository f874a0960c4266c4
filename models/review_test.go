package models

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func seedReviews(t *testing.T, db *gorm.DB, providerEmail string, ratings []int) []Review {
	t.Helper()
	reviews := make([]Review, 0, len(ratings))
	for i, rating := range ratings {
		review := Review{
			ProviderEmail: providerEmail,
			ClientEmail:   fmt.Sprintf("c%d@x.com", i+1),
			Rating:        rating,
		}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("create review: %v", err)
		}
		reviews = append(reviews, review)
	}
	return reviews
}

func TestComputeRatingSummary_Examples(t *testing.T) {
	db := openTestDB(t, &Review{}, &ProviderProfile{})

	seedReviews(t, db, "p@x.com", []int{5, 3, 4})

	summary, err := ComputeRatingSummary(db, "p@x.com")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.Count != 3 {
		t.Fatalf("expected count 3, got %d", summary.Count)
	}
	if summary.Average != 4.0 {
		t.Fatalf("expected average 4.0, got %v", summary.Average)
	}
}

func TestComputeRatingSummary_NoReviews(t *testing.T) {
	db := openTestDB(t, &Review{}, &ProviderProfile{})

	summary, err := ComputeRatingSummary(db, "nobody@x.com")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.Count != 0 || summary.Average != 0 {
		t.Fatalf("expected 0/0 for zero reviews, got %d/%v", summary.Count, summary.Average)
	}
}

func TestComputeRatingSummary_RoundsToOneDecimal(t *testing.T) {
	db := openTestDB(t, &Review{}, &ProviderProfile{})

	seedReviews(t, db, "p@x.com", []int{5, 4, 4})

	summary, err := ComputeRatingSummary(db, "p@x.com")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.Average != 4.3 {
		t.Fatalf("expected 13/3 rounded to 4.3, got %v", summary.Average)
	}
}

func TestRefreshProviderRating_UpdatesProfileCache(t *testing.T) {
	db := openTestDB(t, &Review{}, &ProviderProfile{}, &User{})

	profile := ProviderProfile{Email: "p@x.com", Category: "خدمات فنية", Profession: "سباك"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}

	seedReviews(t, db, "p@x.com", []int{5, 3, 4})

	summary, err := RefreshProviderRating(db, "p@x.com")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if summary.Average != 4.0 || summary.Count != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	var stored ProviderProfile
	if err := db.Where("email = ?", "p@x.com").First(&stored).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if stored.RatingsCount != 3 || stored.RatingsTotal != 12 || stored.AverageRating != 4.0 {
		t.Fatalf("profile cache not refreshed: %+v", stored)
	}
}

func TestRefreshProviderRating_NoDriftAfterDelete(t *testing.T) {
	db := openTestDB(t, &Review{}, &ProviderProfile{}, &User{})

	profile := ProviderProfile{Email: "p@x.com", Category: "خدمات فنية", Profession: "سباك"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}

	reviews := seedReviews(t, db, "p@x.com", []int{5, 3, 4})
	if _, err := RefreshProviderRating(db, "p@x.com"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Deleting a review and recomputing leaves the cache exactly consistent
	// with the remaining set.
	if err := db.Delete(&reviews[2]).Error; err != nil {
		t.Fatalf("delete review: %v", err)
	}
	summary, err := RefreshProviderRating(db, "p@x.com")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if summary.Count != 2 || summary.Total != 8 || summary.Average != 4.0 {
		t.Fatalf("unexpected summary after delete: %+v", summary)
	}

	var stored ProviderProfile
	if err := db.Where("email = ?", "p@x.com").First(&stored).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if stored.RatingsCount != 2 || stored.RatingsTotal != 8 {
		t.Fatalf("profile cache drifted: %+v", stored)
	}
}

func TestReview_BeforeCreateClampsRating(t *testing.T) {
	db := openTestDB(t, &Review{})

	review := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 9}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.Rating != 5 {
		t.Fatalf("expected clamp to 5, got %d", review.Rating)
	}
}

func TestReview_DuplicatePairRejected(t *testing.T) {
	db := openTestDB(t, &Review{})

	first := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 4}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}

	// A second submission for the same pair hits the unique index even when
	// it never ran the existence check, so racing inserts cannot both land.
	second := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 1}
	err := db.Create(&second).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}

	other := Review{ProviderEmail: "p@x.com", ClientEmail: "someone@x.com", Rating: 5}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("different client must be allowed to review: %v", err)
	}
}

func TestReview_DeleteReleasesPairKey(t *testing.T) {
	db := openTestDB(t, &Review{})

	review := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 2}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if err := db.Delete(&review).Error; err != nil {
		t.Fatalf("delete review: %v", err)
	}

	// Once moderation removed the old review the client may submit again.
	fresh := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 5}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("re-review after delete: %v", err)
	}
}

func TestReview_HasExistingReview(t *testing.T) {
	db := openTestDB(t, &Review{})

	review := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 4}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}

	dup := Review{ProviderEmail: "p@x.com", ClientEmail: "c@x.com", Rating: 2}
	exists, err := dup.HasExistingReview(db)
	if err != nil {
		t.Fatalf("check existing: %v", err)
	}
	if !exists {
		t.Fatalf("expected existing review to be detected")
	}

	other := Review{ProviderEmail: "p@x.com", ClientEmail: "someone@x.com", Rating: 2}
	exists, err = other.HasExistingReview(db)
	if err != nil {
		t.Fatalf("check existing: %v", err)
	}
	if exists {
		t.Fatalf("different client must be allowed to review")
	}
}
