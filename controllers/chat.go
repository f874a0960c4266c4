package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
	"github.com/khadamaty/khadamaty-api/utils"
)

// OpenThread resolves (or creates) the conversation between the caller and a
// peer. Both participants derive the same thread id regardless of who opens
// it first.
func OpenThread(c *fiber.Ctx) error {
	type OpenInput struct {
		PeerEmail string `json:"peer_email"`
	}

	input := new(OpenInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	selfEmail, _ := c.Locals("userEmail").(string)

	threadID, err := utils.ChatThreadID(selfEmail, input.PeerEmail)
	if err != nil {
		// Malformed participant identity is fatal to the operation.
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot resolve conversation",
			Error:   err.Error(),
		})
	}

	peerEmail := utils.CanonicalEmail(input.PeerEmail)

	var peer models.User
	if err := db.DB.Where("email = ?", peerEmail).First(&peer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Peer not found",
			Error:   (&utils.NotFoundError{Resource: "user"}).Error(),
		})
	}
	var self models.User
	if err := db.DB.Where("email = ?", selfEmail).First(&self).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Account not found",
			Error:   err.Error(),
		})
	}

	var thread models.ChatThread
	err = db.DB.Where("id = ?", threadID).First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Store the participants in the same order as the id.
		a, b := self, peer
		if b.Email < a.Email {
			a, b = b, a
		}
		thread = models.ChatThread{
			ID:                threadID,
			ParticipantAEmail: a.Email,
			ParticipantAName:  a.Name,
			ParticipantBEmail: b.Email,
			ParticipantBName:  b.Name,
		}
		if err := db.DB.Create(&thread).Error; err != nil {
			// A concurrent open may have created it first.
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
					Message: "Failed to open conversation",
					Error:   err.Error(),
				})
			}
			db.DB.Where("id = ?", threadID).First(&thread)
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to open conversation",
			Error:   err.Error(),
		})
	}

	return c.JSON(thread)
}

// ListThreads returns the caller's conversations with unread counts, most
// recently active first.
func ListThreads(c *fiber.Ctx) error {
	selfEmail, _ := c.Locals("userEmail").(string)

	var threads []models.ChatThread
	if err := db.DB.
		Where("participant_a_email = ? OR participant_b_email = ?", selfEmail, selfEmail).
		Order("last_message_at DESC").
		Find(&threads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch conversations",
			Error:   err.Error(),
		})
	}

	type threadView struct {
		models.ChatThread
		UnreadCount int64 `json:"unread_count"`
	}

	views := make([]threadView, 0, len(threads))
	for _, t := range threads {
		var unread int64
		db.DB.Model(&models.ChatMessage{}).
			Where("thread_id = ? AND receiver_email = ? AND read_at IS NULL", t.ID, selfEmail).
			Count(&unread)
		views = append(views, threadView{ChatThread: t, UnreadCount: unread})
	}

	return c.JSON(views)
}

// GetMessages returns a thread's messages in send order. Only participants
// may read them.
func GetMessages(c *fiber.Ctx) error {
	selfEmail, _ := c.Locals("userEmail").(string)
	threadID := c.Params("id")

	thread, errResp := loadThreadFor(c, threadID, selfEmail)
	if thread == nil {
		return errResp
	}

	var messages []models.ChatMessage
	if err := db.DB.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}

	return c.JSON(messages)
}

// SendMessage appends a message to a thread and refreshes the denormalized
// thread metadata in the same transaction.
func SendMessage(c *fiber.Ctx) error {
	type MessageInput struct {
		Body string `json:"body"`
	}

	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Message body is required",
		})
	}

	selfEmail, _ := c.Locals("userEmail").(string)
	threadID := c.Params("id")

	thread, errResp := loadThreadFor(c, threadID, selfEmail)
	if thread == nil {
		return errResp
	}

	message := models.ChatMessage{
		ThreadID:      thread.ID,
		SenderEmail:   selfEmail,
		ReceiverEmail: thread.PeerOf(selfEmail),
		Body:          input.Body,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(thread).Updates(map[string]interface{}{
			"last_message":    message.Body,
			"last_message_at": time.Now(),
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to send message",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkThreadRead marks every message addressed to the caller in this thread
// as read.
func MarkThreadRead(c *fiber.Ctx) error {
	selfEmail, _ := c.Locals("userEmail").(string)
	threadID := c.Params("id")

	thread, errResp := loadThreadFor(c, threadID, selfEmail)
	if thread == nil {
		return errResp
	}

	now := time.Now()
	if err := db.DB.Model(&models.ChatMessage{}).
		Where("thread_id = ? AND receiver_email = ? AND read_at IS NULL", threadID, selfEmail).
		Update("read_at", &now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to mark messages read",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// loadThreadFor fetches a thread and enforces membership. On failure it
// returns a nil thread and the response already written to the context.
func loadThreadFor(c *fiber.Ctx, threadID, selfEmail string) (*models.ChatThread, error) {
	var thread models.ChatThread
	if err := db.DB.Where("id = ?", threadID).First(&thread).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Conversation not found",
			Error:   err.Error(),
		})
	}
	if !thread.HasParticipant(selfEmail) {
		return nil, c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You are not part of this conversation",
		})
	}
	return &thread, nil
}
