package service

import (
	"context"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

// CreateConversation opens a conversation between the creator and the given partners.
// Peers are not notified until the first message arrives.
func (s *Service) CreateConversation(ctx context.Context, creatorID int64, partnerIDs []int64) (*model.Conversation, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("CreateConversation")

	partners := uniqueIDs(partnerIDs)
	if err := s.validator.ValidateCreateConversation(creatorID, partners); err != nil {
		return nil, err
	}

	participantIDs := append([]int64{creatorID}, partners...)

	var conversation *model.Conversation
	err := s.repository.WithTx(ctx, func(ctx context.Context) error {
		found, err := s.repository.CountUsers(ctx, participantIDs)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to check users: %v", err))
			return fmt.Errorf("failed to check users: %w", err)
		}
		if found != len(participantIDs) {
			return fmt.Errorf("%w: user not found", model.ErrNotFound)
		}

		var directKey *string
		if len(partners) == 1 {
			exists, err := s.repository.HasDirectConversation(ctx, creatorID, partners[0])
			if err != nil {
				logger.Error(fmt.Sprintf("failed to look up direct conversation: %v", err))
				return fmt.Errorf("failed to look up direct conversation: %w", err)
			}
			if exists {
				return fmt.Errorf("%w: single conversation with that user already exists", model.ErrConflict)
			}

			key := model.DirectKey(creatorID, partners[0])
			directKey = &key
		}

		conversation, err = s.repository.CreateConversation(ctx, participantIDs, directKey)
		if err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("conversation %d created by user %d", conversation.ID, creatorID))

	return conversation, nil
}

// GetConversationList returns the user's conversations, most recently active first.
func (s *Service) GetConversationList(ctx context.Context, userID int64) (model.ConversationList, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetConversationList")

	conversations, err := s.repository.GetUserConversations(ctx, userID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get conversations: %v", err))
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	return conversations, nil
}

// SetConversationTitle names a group conversation. The title is stored as given.
func (s *Service) SetConversationTitle(ctx context.Context, userID, conversationID int64, title string) (*model.Conversation, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("SetConversationTitle")

	conversation, err := s.repository.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if !conversation.IsGroup() {
		return nil, fmt.Errorf("%w: cannot set title for non-group conversations", model.ErrInvalidInput)
	}

	if !conversation.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user %d is not a participant", model.ErrForbidden, userID)
	}

	if err := s.repository.SetConversationTitle(ctx, conversationID, &title); err != nil {
		logger.Error(fmt.Sprintf("failed to set conversation title: %v", err))
		return nil, fmt.Errorf("failed to set conversation title: %w", err)
	}
	conversation.Title = &title

	s.notifier.PushConversationEvent(conversation.ParticipantIDsExcept(userID), conversationID)

	return conversation, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
