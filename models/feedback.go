package models

import (
	"gorm.io/gorm"
)

type FeedbackType string

const (
	FeedbackComplaint  FeedbackType = "complaint"
	FeedbackSuggestion FeedbackType = "suggestion"
)

type FeedbackStatus string

const (
	FeedbackNew        FeedbackStatus = "new"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackResolved   FeedbackStatus = "resolved"
	FeedbackRejected   FeedbackStatus = "rejected"
)

// Feedback is a complaint or suggestion submitted by any user and triaged
// by the admin.
type Feedback struct {
	gorm.Model
	AuthorEmail   string         `json:"author_email" gorm:"index;not null"`
	AuthorName    string         `json:"author_name"`
	Type          FeedbackType   `json:"type" gorm:"type:varchar(16);not null"`
	Subject       string         `json:"subject"`
	Body          string         `json:"body" gorm:"type:text"`
	Status        FeedbackStatus `json:"status" gorm:"type:varchar(16);default:'new'"`
	AdminResponse string         `json:"admin_response"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.Status == "" {
		f.Status = FeedbackNew
	}
	return nil
}

// IsValidFeedbackStatus guards admin status updates.
func IsValidFeedbackStatus(s FeedbackStatus) bool {
	switch s {
	case FeedbackNew, FeedbackInProgress, FeedbackResolved, FeedbackRejected:
		return true
	}
	return false
}
