package rest

import (
	"github.com/s21platform/conversation-service/internal/model"
)

type CreateConversationRequest struct {
	PartnerIDs []int64 `json:"partner_ids"`
}

type SetTitleRequest struct {
	Title string `json:"title"`
}

type SendMessageRequest struct {
	Content     string            `json:"content"`
	ContentType model.ContentType `json:"content_type"`
}

type ConversationListResponse struct {
	Conversations model.ConversationList `json:"conversations"`
}

// ConversationMessagesResponse always carries the messages key, even when the history is empty.
type ConversationMessagesResponse struct {
	*model.Conversation
	Messages model.MessageList `json:"messages"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type HasUnreadResponse struct {
	HasUnread bool `json:"has_unread"`
}

type ConnectTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type Error struct {
	Error string `json:"error"`
}
