package models

import "time"

// DeletedMessagePlaceholder replaces the content of soft-deleted
// messages in every response.
const DeletedMessagePlaceholder = "This message was deleted"

type Message struct {
	MessageID  uint      `gorm:"primaryKey;column:message_id" json:"message_id"`
	SenderID   uint      `gorm:"column:sender_id" json:"sender_id"`
	ReceiverID uint      `gorm:"column:receiver_id" json:"receiver_id"`
	Content    string    `gorm:"column:content" json:"content"`
	SentAt     time.Time `gorm:"column:sent_at" json:"sent_at"`
	IsRead     bool      `gorm:"column:is_read;default:false" json:"is_read"`

	IsEdited  bool       `gorm:"column:is_edited;default:false" json:"is_edited"`
	EditedAt  *time.Time `gorm:"column:edited_at" json:"edited_at,omitempty"`
	IsDeleted bool       `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// DisplayContent hides the original text of deleted messages.
func (m *Message) DisplayContent() string {
	if m.IsDeleted {
		return DeletedMessagePlaceholder
	}
	return m.Content
}

// ===== Request/Response DTOs =====

type MessageSendRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageEditRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	MessageID  uint       `json:"message_id"`
	SenderID   uint       `json:"sender_id"`
	ReceiverID uint       `json:"receiver_id"`
	Content    string     `json:"content"`
	SentAt     time.Time  `json:"sent_at"`
	IsRead     bool       `json:"is_read"`
	IsEdited   bool       `json:"is_edited"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	IsDeleted  bool       `json:"is_deleted"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		MessageID:  m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.DisplayContent(),
		SentAt:     m.SentAt,
		IsRead:     m.IsRead,
		IsEdited:   m.IsEdited,
		EditedAt:   m.EditedAt,
		IsDeleted:  m.IsDeleted,
	}
}

// ConversationSummary is one row in the inbox listing: the latest
// message exchanged with a partner plus that conversation's unread count.
type ConversationSummary struct {
	PartnerID   uint            `json:"partner_id"`
	DisplayName string          `json:"display_name"`
	LastMessage MessageResponse `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}
