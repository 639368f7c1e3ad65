package service

import (
	"context"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

// MarkMessageAsRead adds the user to the message's readers. Authors and repeated calls are no-ops.
func (s *Service) MarkMessageAsRead(ctx context.Context, userID, messageID int64) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("MarkMessageAsRead")

	message, err := s.repository.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}

	conversation, err := s.repository.GetConversation(ctx, message.ConversationID)
	if err != nil {
		return fmt.Errorf("failed to get conversation: %w", err)
	}

	if !conversation.HasParticipant(userID) {
		return fmt.Errorf("%w: user %d is not a participant", model.ErrForbidden, userID)
	}

	if message.Author.ID == userID {
		return nil
	}

	added, err := s.repository.AddMessageReader(ctx, messageID, userID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to mark message as read: %v", err))
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	if !added {
		return nil
	}

	s.notifier.PushConversationEvent(conversation.ParticipantIDsExcept(userID), conversation.ID)

	return nil
}

// MarkConversationAsRead marks every message of the conversation not authored by the user as read.
// Peers get one conversation event, and only if something changed.
func (s *Service) MarkConversationAsRead(ctx context.Context, userID, conversationID int64) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("MarkConversationAsRead")

	conversation, err := s.repository.GetConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to get conversation: %w", err)
	}

	if !conversation.HasParticipant(userID) {
		return fmt.Errorf("%w: user %d is not a participant", model.ErrForbidden, userID)
	}

	var marked int64
	err = s.repository.WithTx(ctx, func(ctx context.Context) error {
		marked, err = s.repository.MarkConversationRead(ctx, conversationID, userID)
		return err
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to mark conversation as read: %v", err))
		return fmt.Errorf("failed to mark conversation as read: %w", err)
	}
	if marked == 0 {
		return nil
	}

	s.notifier.PushConversationEvent(conversation.ParticipantIDsExcept(userID), conversationID)

	return nil
}

// GetUnreadMessagesCount counts messages from others the user has not read, across all conversations.
func (s *Service) GetUnreadMessagesCount(ctx context.Context, userID int64) (int64, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetUnreadMessagesCount")

	count, err := s.repository.CountUnreadMessages(ctx, userID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to count unread messages: %v", err))
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// HasUnreadMessages only looks at the newest message of each conversation. An older unread
// message behind a read last message is not reported; GetUnreadMessagesCount is exact.
func (s *Service) HasUnreadMessages(ctx context.Context, userID int64) (bool, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("HasUnreadMessages")

	unread, err := s.repository.HasUnreadLastMessage(ctx, userID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to check unread messages: %v", err))
		return false, fmt.Errorf("failed to check unread messages: %w", err)
	}

	return unread, nil
}
