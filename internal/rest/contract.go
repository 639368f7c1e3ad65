//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/s21platform/conversation-service/internal/model"
)

type ChatService interface {
	CreateConversation(ctx context.Context, creatorID int64, partnerIDs []int64) (*model.Conversation, error)
	GetConversationList(ctx context.Context, userID int64) (model.ConversationList, error)
	SetConversationTitle(ctx context.Context, userID, conversationID int64, title string) (*model.Conversation, error)

	SendMessage(ctx context.Context, userID, conversationID int64, content string, contentType model.ContentType) (*model.Message, error)
	GetMessages(ctx context.Context, userID, conversationID, sinceMessageID int64) (*model.Conversation, error)

	MarkMessageAsRead(ctx context.Context, userID, messageID int64) error
	MarkConversationAsRead(ctx context.Context, userID, conversationID int64) error
	GetUnreadMessagesCount(ctx context.Context, userID int64) (int64, error)
	HasUnreadMessages(ctx context.Context, userID int64) (bool, error)
}

type JWTGenerator interface {
	GenerateConnectToken(userID int64) (string, int64, error)
}
