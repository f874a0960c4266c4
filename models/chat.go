package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatThread is one conversation between two users. Its primary key is the
// deterministic identity derived from the two participant emails, so both
// sides always resolve to the same row.
type ChatThread struct {
	ID string `json:"id" gorm:"primaryKey"`
	// Participants in lexicographic order, matching the thread id.
	ParticipantAEmail string    `json:"participant_a_email" gorm:"index;not null"`
	ParticipantAName  string    `json:"participant_a_name"`
	ParticipantBEmail string    `json:"participant_b_email" gorm:"index;not null"`
	ParticipantBName  string    `json:"participant_b_name"`
	LastMessage       string    `json:"last_message"`
	LastMessageAt     time.Time `json:"last_message_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasParticipant reports whether the email belongs to this thread.
func (t *ChatThread) HasParticipant(email string) bool {
	return t.ParticipantAEmail == email || t.ParticipantBEmail == email
}

// PeerOf returns the other participant's email.
func (t *ChatThread) PeerOf(email string) string {
	if t.ParticipantAEmail == email {
		return t.ParticipantBEmail
	}
	return t.ParticipantAEmail
}

type ChatMessage struct {
	gorm.Model
	ThreadID      string     `json:"thread_id" gorm:"index;not null"`
	SenderEmail   string     `json:"sender_email" gorm:"not null"`
	ReceiverEmail string     `json:"receiver_email" gorm:"not null"`
	Body          string     `json:"body" gorm:"type:text;not null"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
}
