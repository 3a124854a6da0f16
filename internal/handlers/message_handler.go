package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
)

type SendMessageRequest struct {
	SenderID   uuid.UUID `json:"sender_id" binding:"required"`
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	Content    string    `json:"content" binding:"required"`
}

type InboxMessageView struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
}

type ChatMessageView struct {
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	IsMe       bool   `json:"is_me"`
}

func SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Message content cannot be empty.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	message := models.Message{
		ID:         uuid.New(),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := gormDB.Create(&message).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to send message.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message sent successfully",
		"message_id": message.ID,
	})
}

func GetInbox(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	var messages []models.Message
	err = gormDB.Preload("Sender").Where("receiver_id = ?", userID).
		Order("created_at DESC").Find(&messages).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving messages.")
		return
	}

	result := make([]InboxMessageView, 0, len(messages))
	for _, msg := range messages {
		result = append(result, InboxMessageView{
			ID:         msg.ID,
			Content:    msg.Content,
			Timestamp:  msg.CreatedAt,
			SenderID:   msg.SenderID,
			SenderName: msg.Sender.FullName,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(result),
		"messages": result,
	})
}

// GetChatHistory returns the full conversation between two users in
// chronological order; is_me flags are relative to the first user.
func GetChatHistory(c *gin.Context) {
	userOneID, err := uuid.Parse(c.Param("user_one_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}
	userTwoID, err := uuid.Parse(c.Param("user_two_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var messages []models.Message
	err = gormDB.Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userOneID, userTwoID, userTwoID, userOneID).
		Order("created_at ASC").Find(&messages).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving chat history.")
		return
	}

	history := make([]ChatMessageView, 0, len(messages))
	for _, msg := range messages {
		history = append(history, ChatMessageView{
			SenderName: msg.Sender.FullName,
			Content:    msg.Content,
			IsMe:       msg.SenderID == userOneID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_history": history,
	})
}
