package models

import (
	"gorm.io/gorm"
)

// ProviderProfile extends a provider user with the fields shown on the
// public listing: category, profession, portfolio aggregates and contact info.
type ProviderProfile struct {
	gorm.Model
	UserID          uint    `json:"user_id"`
	User            User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Email           string  `json:"email" gorm:"uniqueIndex;not null"`
	Category        string  `json:"category"`
	Profession      string  `json:"profession"`
	SubscriptionFee string  `json:"subscription_fee"`
	Bio             string  `json:"bio"`
	ShowContact     bool    `json:"show_contact" gorm:"default:true"`
	Address         string  `json:"address"`
	RatingsCount    int64   `json:"ratings_count"`
	RatingsTotal    int64   `json:"ratings_total"`
	AverageRating   float64 `json:"average_rating" gorm:"type:decimal(2,1);default:0"`
}

// PublicView strips contact details when the provider opted out of
// showing them.
func (p ProviderProfile) PublicView() ProviderProfile {
	if !p.ShowContact {
		p.Address = ""
		p.User.Phone = ""
	}
	p.User.Password = ""
	return p
}
