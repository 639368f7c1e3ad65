package service

import (
	"context"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

// SendMessage appends a message and advances the conversation's last-message pointer.
// The pointer only moves forward in message id order, so racing sends can't leave it on an older message.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID int64, content string, contentType model.ContentType) (*model.Message, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("SendMessage")

	if err := s.validator.ValidateSendMessage(content, contentType); err != nil {
		return nil, err
	}

	var (
		message      *model.Message
		conversation *model.Conversation
	)
	err := s.repository.WithTx(ctx, func(ctx context.Context) error {
		found, err := s.repository.CountUsers(ctx, []int64{userID})
		if err != nil {
			logger.Error(fmt.Sprintf("failed to check user: %v", err))
			return fmt.Errorf("failed to check user: %w", err)
		}
		if found != 1 {
			return fmt.Errorf("%w: could not find user %d", model.ErrNotFound, userID)
		}

		conversation, err = s.repository.GetConversation(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("failed to get conversation: %w", err)
		}

		author, ok := participant(conversation, userID)
		if !ok {
			logger.Warn(fmt.Sprintf("user %d is not a member of conversation %d", userID, conversationID))
			return fmt.Errorf("%w: user %d is not a participant", model.ErrForbidden, userID)
		}

		now := s.now()
		message = &model.Message{
			ConversationID: conversationID,
			Author:         author,
			Content:        content,
			ContentType:    contentType,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.repository.SaveMessage(ctx, message); err != nil {
			logger.Error(fmt.Sprintf("failed to save message: %v", err))
			return fmt.Errorf("failed to save message: %w", err)
		}

		advanced, err := s.repository.AdvanceLastMessage(ctx, conversationID, message.ID, message.CreatedAt)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to update last message: %v", err))
			return fmt.Errorf("failed to update last message: %w", err)
		}
		if !advanced {
			logger.Info(fmt.Sprintf("last message of conversation %d is already newer than %d", conversationID, message.ID))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PushMessageEvent(conversation.ParticipantIDsExcept(userID), conversationID)

	return message, nil
}

// GetMessages returns the conversation with its messages. A positive sinceMessageID
// limits the result to messages created after that one.
func (s *Service) GetMessages(ctx context.Context, userID, conversationID, sinceMessageID int64) (*model.Conversation, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetMessages")

	conversation, err := s.repository.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if !conversation.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user %d is not a participant", model.ErrForbidden, userID)
	}

	messages, err := s.repository.GetConversationMessages(ctx, conversationID, sinceMessageID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to fetch messages: %v", err))
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if messages == nil {
		messages = model.MessageList{}
	}
	conversation.Messages = messages

	return conversation, nil
}

func participant(conversation *model.Conversation, userID int64) (model.User, bool) {
	for _, p := range conversation.Participants {
		if p.ID == userID {
			return p, true
		}
	}
	return model.User{}, false
}
