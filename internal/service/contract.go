//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package service

import (
	"context"
	"time"

	"github.com/s21platform/conversation-service/internal/model"
)

// DBRepo is the Entity Store. Lookups of absent rows return an error wrapping model.ErrNotFound.
type DBRepo interface {
	CountUsers(ctx context.Context, userIDs []int64) (int, error)

	CreateConversation(ctx context.Context, participantIDs []int64, directKey *string) (*model.Conversation, error)
	GetConversation(ctx context.Context, conversationID int64) (*model.Conversation, error)
	HasDirectConversation(ctx context.Context, userID, partnerID int64) (bool, error)
	GetUserConversations(ctx context.Context, userID int64) (model.ConversationList, error)
	SetConversationTitle(ctx context.Context, conversationID int64, title *string) error

	SaveMessage(ctx context.Context, message *model.Message) error
	AdvanceLastMessage(ctx context.Context, conversationID, messageID int64, at time.Time) (bool, error)
	GetMessage(ctx context.Context, messageID int64) (*model.Message, error)
	GetConversationMessages(ctx context.Context, conversationID, sinceMessageID int64) (model.MessageList, error)

	AddMessageReader(ctx context.Context, messageID, userID int64) (bool, error)
	MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error)
	CountUnreadMessages(ctx context.Context, userID int64) (int64, error)
	HasUnreadLastMessage(ctx context.Context, userID int64) (bool, error)

	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}

type Validator interface {
	ValidateCreateConversation(creatorID int64, partnerIDs []int64) error
	ValidateSendMessage(content string, contentType model.ContentType) error
}

// Notifier must not block and never reports delivery failures.
type Notifier interface {
	PushMessageEvent(recipientIDs []int64, conversationID int64)
	PushConversationEvent(recipientIDs []int64, conversationID int64)
}
