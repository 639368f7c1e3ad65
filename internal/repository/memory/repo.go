// Package memory is an Entity Store kept in process memory. It serves tests and single-node
// local runs; nothing survives a restart and WithTx gives no rollback.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/s21platform/conversation-service/internal/model"
)

type conversationRow struct {
	id            int64
	title         *string
	directKey     *string
	lastMessageID int64
	createdAt     time.Time
	updatedAt     time.Time
	participants  []int64
}

type messageRow struct {
	id             int64
	conversationID int64
	authorID       int64
	content        string
	contentType    model.ContentType
	createdAt      time.Time
	updatedAt      time.Time
	readers        []int64
}

type Repository struct {
	mu sync.RWMutex

	users             map[int64]model.User
	conversations     map[int64]*conversationRow
	userConversations map[int64][]int64
	directKeys        map[string]int64
	messages          map[int64]*messageRow
	convMessages      map[int64][]int64

	lastConversationID int64
	lastMessageID      int64
	now                func() time.Time
}

func New() *Repository {
	return &Repository{
		users:             make(map[int64]model.User),
		conversations:     make(map[int64]*conversationRow),
		userConversations: make(map[int64][]int64),
		directKeys:        make(map[string]int64),
		messages:          make(map[int64]*messageRow),
		convMessages:      make(map[int64][]int64),
		now:               time.Now,
	}
}

func (r *Repository) Close() {}

func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	return cb(ctx)
}

func (r *Repository) UpsertUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return nil
}

func (r *Repository) CountUsers(_ context.Context, userIDs []int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := r.users[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen), nil
}

func (r *Repository) CreateConversation(_ context.Context, participantIDs []int64, directKey *string) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if directKey != nil {
		if _, ok := r.directKeys[*directKey]; ok {
			return nil, fmt.Errorf("%w: direct conversation %s already exists", model.ErrConflict, *directKey)
		}
	}

	r.lastConversationID++
	now := r.now()
	row := &conversationRow{
		id:           r.lastConversationID,
		directKey:    directKey,
		createdAt:    now,
		updatedAt:    now,
		participants: append([]int64(nil), participantIDs...),
	}
	r.conversations[row.id] = row
	if directKey != nil {
		r.directKeys[*directKey] = row.id
	}
	for _, id := range participantIDs {
		r.userConversations[id] = append(r.userConversations[id], row.id)
	}

	return r.conversationLocked(row), nil
}

func (r *Repository) GetConversation(_ context.Context, conversationID int64) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("%w: conversation %d", model.ErrNotFound, conversationID)
	}
	return r.conversationLocked(row), nil
}

func (r *Repository) HasDirectConversation(_ context.Context, userID, partnerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.userConversations[userID] {
		p := r.conversations[id].participants
		if len(p) == 2 && (p[0] == partnerID || p[1] == partnerID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) GetUserConversations(_ context.Context, userID int64) (model.ConversationList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(model.ConversationList, 0, len(r.userConversations[userID]))
	for _, id := range r.userConversations[userID] {
		result = append(result, *r.conversationLocked(r.conversations[id]))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *Repository) SetConversationTitle(_ context.Context, conversationID int64, title *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.conversations[conversationID]
	if !ok {
		return fmt.Errorf("%w: conversation %d", model.ErrNotFound, conversationID)
	}
	if title != nil {
		t := *title
		title = &t
	}
	row.title = title
	return nil
}

func (r *Repository) SaveMessage(_ context.Context, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[message.ConversationID]; !ok {
		return fmt.Errorf("%w: conversation %d", model.ErrNotFound, message.ConversationID)
	}

	r.lastMessageID++
	message.ID = r.lastMessageID
	r.messages[message.ID] = &messageRow{
		id:             message.ID,
		conversationID: message.ConversationID,
		authorID:       message.Author.ID,
		content:        message.Content,
		contentType:    message.ContentType,
		createdAt:      message.CreatedAt,
		updatedAt:      message.UpdatedAt,
	}
	r.convMessages[message.ConversationID] = append(r.convMessages[message.ConversationID], message.ID)

	return nil
}

func (r *Repository) AdvanceLastMessage(_ context.Context, conversationID, messageID int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.conversations[conversationID]
	if !ok {
		return false, fmt.Errorf("%w: conversation %d", model.ErrNotFound, conversationID)
	}
	if row.lastMessageID >= messageID {
		return false, nil
	}

	row.lastMessageID = messageID
	if at.After(row.updatedAt) {
		row.updatedAt = at
	}
	return true, nil
}

func (r *Repository) GetMessage(_ context.Context, messageID int64) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.messages[messageID]
	if !ok {
		return nil, fmt.Errorf("%w: message %d", model.ErrNotFound, messageID)
	}
	msg := r.messageLocked(row)
	return &msg, nil
}

func (r *Repository) GetConversationMessages(_ context.Context, conversationID, sinceMessageID int64) (model.MessageList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.convMessages[conversationID]
	messages := make(model.MessageList, 0, len(ids))
	for _, id := range ids {
		if id <= sinceMessageID {
			continue
		}
		messages = append(messages, r.messageLocked(r.messages[id]))
	}
	return messages, nil
}

func (r *Repository) AddMessageReader(_ context.Context, messageID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.messages[messageID]
	if !ok {
		return false, fmt.Errorf("%w: message %d", model.ErrNotFound, messageID)
	}
	return addReaderLocked(row, userID), nil
}

func (r *Repository) MarkConversationRead(_ context.Context, conversationID, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var marked int64
	for _, id := range r.convMessages[conversationID] {
		row := r.messages[id]
		if row.authorID == userID {
			continue
		}
		if addReaderLocked(row, userID) {
			marked++
		}
	}
	return marked, nil
}

func (r *Repository) CountUnreadMessages(_ context.Context, userID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, convID := range r.userConversations[userID] {
		for _, id := range r.convMessages[convID] {
			row := r.messages[id]
			if row.authorID != userID && !hasReader(row, userID) {
				count++
			}
		}
	}
	return count, nil
}

func (r *Repository) HasUnreadLastMessage(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, convID := range r.userConversations[userID] {
		last, ok := r.messages[r.conversations[convID].lastMessageID]
		if !ok {
			continue
		}
		if last.authorID != userID && !hasReader(last, userID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) conversationLocked(row *conversationRow) *model.Conversation {
	c := &model.Conversation{
		ID:           row.id,
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
		Participants: make([]model.User, 0, len(row.participants)),
	}
	if row.title != nil {
		title := *row.title
		c.Title = &title
	}
	for _, id := range row.participants {
		c.Participants = append(c.Participants, r.userLocked(id))
	}
	if last, ok := r.messages[row.lastMessageID]; ok {
		msg := r.messageLocked(last)
		c.LastMessage = &msg
	}
	return c
}

func (r *Repository) messageLocked(row *messageRow) model.Message {
	msg := model.Message{
		ID:             row.id,
		ConversationID: row.conversationID,
		Author:         r.userLocked(row.authorID),
		Content:        row.content,
		ContentType:    row.contentType,
		CreatedAt:      row.createdAt,
		UpdatedAt:      row.updatedAt,
		ReadBy:         make([]model.User, 0, len(row.readers)),
	}
	for _, id := range row.readers {
		msg.ReadBy = append(msg.ReadBy, r.userLocked(id))
	}
	return msg
}

func (r *Repository) userLocked(id int64) model.User {
	if u, ok := r.users[id]; ok {
		return u
	}
	return model.User{ID: id}
}

func addReaderLocked(row *messageRow, userID int64) bool {
	if hasReader(row, userID) {
		return false
	}
	row.readers = append(row.readers, userID)
	return true
}

func hasReader(row *messageRow, userID int64) bool {
	for _, id := range row.readers {
		if id == userID {
			return true
		}
	}
	return false
}
