package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

const uniqueViolation = "23505"

type Repository struct {
	connection *sqlx.DB
}

type conversationRow struct {
	ID            int64     `db:"id"`
	Title         *string   `db:"title"`
	LastMessageID *int64    `db:"last_message_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type messageRow struct {
	ID              int64     `db:"id"`
	ConversationID  int64     `db:"conversation_id"`
	Content         string    `db:"content"`
	ContentType     string    `db:"content_type"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	AuthorID        int64     `db:"author_id"`
	AuthorNickname  string    `db:"author_nickname"`
	AuthorAvatarURL string    `db:"author_avatar_url"`
}

type memberRow struct {
	OwnerID   int64  `db:"owner_id"`
	ID        int64  `db:"id"`
	Nickname  string `db:"nickname"`
	AvatarURL string `db:"avatar_url"`
}

func New(cfg *config.Config) *Repository {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	conn, err := sqlx.Connect("postgres", conStr)
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	query, args, err := sq.Insert("users").
		Columns("id", "nickname", "avatar_url").
		Values(user.ID, user.Nickname, user.AvatarURL).
		Suffix("ON CONFLICT (id) DO UPDATE SET nickname = EXCLUDED.nickname, avatar_url = EXCLUDED.avatar_url").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) CountUsers(ctx context.Context, userIDs []int64) (int, error) {
	query, args, err := sq.Select("COUNT(DISTINCT id)").
		From("users").
		Where(sq.Eq{"id": userIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var count int
	err = r.Chk(ctx).GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}

	return count, nil
}

func (r *Repository) CreateConversation(ctx context.Context, participantIDs []int64, directKey *string) (*model.Conversation, error) {
	query, args, err := sq.Insert("conversations").
		Columns("direct_key").
		Values(directKey).
		Suffix("RETURNING id, title, last_message_id, created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var row conversationRow
	err = r.Chk(ctx).GetContext(ctx, &row, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: single conversation with that user already exists", model.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert conversation: %v", err)
	}

	members := sq.Insert("conversation_participants").
		Columns("conversation_id", "user_id", "position").
		PlaceholderFormat(sq.Dollar)

	for i, userID := range participantIDs {
		members = members.Values(row.ID, userID, i)
	}

	query, args, err = members.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to add conversation participants: %v", err)
	}

	conversations, err := r.hydrate(ctx, []conversationRow{row})
	if err != nil {
		return nil, err
	}

	return &conversations[0], nil
}

func (r *Repository) GetConversation(ctx context.Context, conversationID int64) (*model.Conversation, error) {
	query, args, err := selectConversations().
		Where(sq.Eq{"c.id": conversationID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var row conversationRow
	err = r.Chk(ctx).GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no conversation found", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %v", err)
	}

	conversations, err := r.hydrate(ctx, []conversationRow{row})
	if err != nil {
		return nil, err
	}

	return &conversations[0], nil
}

// HasDirectConversation only walks the conversations userID takes part in.
func (r *Repository) HasDirectConversation(ctx context.Context, userID, partnerID int64) (bool, error) {
	query, args, err := sq.Select("COUNT(*) > 0").
		From("conversation_participants cp").
		Join("conversation_participants other ON other.conversation_id = cp.conversation_id AND other.user_id = ?", partnerID).
		Where(sq.Eq{"cp.user_id": userID}).
		Where("(SELECT COUNT(*) FROM conversation_participants x WHERE x.conversation_id = cp.conversation_id) = 2").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	var exists bool
	err = r.Chk(ctx).GetContext(ctx, &exists, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check direct conversation: %v", err)
	}

	return exists, nil
}

func (r *Repository) GetUserConversations(ctx context.Context, userID int64) (model.ConversationList, error) {
	query, args, err := selectConversations().
		Join("conversation_participants cp ON cp.conversation_id = c.id").
		Where(sq.Eq{"cp.user_id": userID}).
		OrderBy("c.updated_at DESC", "c.id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var rows []conversationRow
	err = r.Chk(ctx).SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %v", err)
	}

	return r.hydrate(ctx, rows)
}

func (r *Repository) SetConversationTitle(ctx context.Context, conversationID int64, title *string) error {
	query, args, err := sq.Update("conversations").
		Set("title", title).
		Where(sq.Eq{"id": conversationID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set title: %v", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: no conversation found", model.ErrNotFound)
	}

	return nil
}

func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) error {
	query, args, err := sq.Insert("messages").
		Columns("conversation_id", "author_id", "content", "content_type", "created_at", "updated_at").
		Values(message.ConversationID, message.Author.ID, message.Content, string(message.ContentType), message.CreatedAt, message.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	err = r.Chk(ctx).GetContext(ctx, &message.ID, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

// AdvanceLastMessage moves the pointer only forward: a message older than the current one is ignored.
func (r *Repository) AdvanceLastMessage(ctx context.Context, conversationID, messageID int64, at time.Time) (bool, error) {
	query, args, err := sq.Update("conversations").
		Set("last_message_id", messageID).
		Set("updated_at", sq.Expr("GREATEST(updated_at, ?)", at)).
		Where(sq.Eq{"id": conversationID}).
		Where(sq.Or{
			sq.Eq{"last_message_id": nil},
			sq.Lt{"last_message_id": messageID},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to advance last message: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %v", err)
	}

	return affected > 0, nil
}

func (r *Repository) GetMessage(ctx context.Context, messageID int64) (*model.Message, error) {
	messages, err := r.selectMessages(ctx, sq.Eq{"m.id": messageID})
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: no message found", model.ErrNotFound)
	}

	return &messages[0], nil
}

func (r *Repository) GetConversationMessages(ctx context.Context, conversationID, sinceMessageID int64) (model.MessageList, error) {
	where := sq.And{sq.Eq{"m.conversation_id": conversationID}}
	if sinceMessageID > 0 {
		where = append(where, sq.Gt{"m.id": sinceMessageID})
	}

	return r.selectMessages(ctx, where)
}

func (r *Repository) AddMessageReader(ctx context.Context, messageID, userID int64) (bool, error) {
	query, args, err := sq.Insert("message_reads").
		Columns("message_id", "user_id").
		Values(messageID, userID).
		Suffix("ON CONFLICT (message_id, user_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to add message reader: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %v", err)
	}

	return affected > 0, nil
}

func (r *Repository) MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	unread := sq.Select("m.id").
		Column("?::bigint", userID).
		From("messages m").
		Where(sq.Eq{"m.conversation_id": conversationID}).
		Where(sq.NotEq{"m.author_id": userID})

	query, args, err := sq.Insert("message_reads").
		Columns("message_id", "user_id").
		Select(unread).
		Suffix("ON CONFLICT (message_id, user_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation as read: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %v", err)
	}

	return affected, nil
}

func (r *Repository) CountUnreadMessages(ctx context.Context, userID int64) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("messages m").
		Join("conversation_participants cp ON cp.conversation_id = m.conversation_id AND cp.user_id = ?", userID).
		Where(sq.NotEq{"m.author_id": userID}).
		Where("NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = m.id AND mr.user_id = ?)", userID).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var count int64
	err = r.Chk(ctx).GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}

	return count, nil
}

func (r *Repository) HasUnreadLastMessage(ctx context.Context, userID int64) (bool, error) {
	query, args, err := sq.Select("COUNT(*) > 0").
		From("conversations c").
		Join("conversation_participants cp ON cp.conversation_id = c.id AND cp.user_id = ?", userID).
		Join("messages m ON m.id = c.last_message_id").
		Where(sq.NotEq{"m.author_id": userID}).
		Where("NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = m.id AND mr.user_id = ?)", userID).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	var unread bool
	err = r.Chk(ctx).GetContext(ctx, &unread, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check unread messages: %v", err)
	}

	return unread, nil
}

// ----------------------------- helpers -----------------------------

func selectConversations() sq.SelectBuilder {
	return sq.Select(
		"c.id",
		"c.title",
		"c.last_message_id",
		"c.created_at",
		"c.updated_at",
	).
		From("conversations c")
}

// hydrate attaches participants and the last message to conversation rows, keeping row order.
func (r *Repository) hydrate(ctx context.Context, rows []conversationRow) (model.ConversationList, error) {
	conversations := make(model.ConversationList, len(rows))
	if len(rows) == 0 {
		return conversations, nil
	}

	ids := make([]int64, 0, len(rows))
	lastIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		if row.LastMessageID != nil {
			lastIDs = append(lastIDs, *row.LastMessageID)
		}
	}

	participants, err := r.selectMembers(ctx, sq.Select("cp.conversation_id AS owner_id", "u.id", "u.nickname", "u.avatar_url").
		From("conversation_participants cp").
		Join("users u ON u.id = cp.user_id").
		Where(sq.Eq{"cp.conversation_id": ids}).
		OrderBy("cp.conversation_id", "cp.position"))
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %v", err)
	}

	lastMessages := make(map[int64]model.Message, len(lastIDs))
	if len(lastIDs) > 0 {
		messages, err := r.selectMessages(ctx, sq.Eq{"m.id": lastIDs})
		if err != nil {
			return nil, err
		}
		for _, msg := range messages {
			lastMessages[msg.ID] = msg
		}
	}

	for i, row := range rows {
		conversations[i] = model.Conversation{
			ID:           row.ID,
			Title:        row.Title,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
			Participants: participants[row.ID],
		}
		if row.LastMessageID != nil {
			if msg, ok := lastMessages[*row.LastMessageID]; ok {
				conversations[i].LastMessage = &msg
			}
		}
	}

	return conversations, nil
}

func (r *Repository) selectMessages(ctx context.Context, where sq.Sqlizer) (model.MessageList, error) {
	query, args, err := sq.Select(
		"m.id",
		"m.conversation_id",
		"m.content",
		"m.content_type",
		"m.created_at",
		"m.updated_at",
		"u.id AS author_id",
		"u.nickname AS author_nickname",
		"u.avatar_url AS author_avatar_url",
	).
		From("messages m").
		Join("users u ON u.id = m.author_id").
		Where(where).
		OrderBy("m.id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var rows []messageRow
	err = r.Chk(ctx).SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %v", err)
	}

	messages := make(model.MessageList, len(rows))
	if len(rows) == 0 {
		return messages, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	readers, err := r.selectMembers(ctx, sq.Select("mr.message_id AS owner_id", "u.id", "u.nickname", "u.avatar_url").
		From("message_reads mr").
		Join("users u ON u.id = mr.user_id").
		Where(sq.Eq{"mr.message_id": ids}).
		OrderBy("mr.message_id", "mr.read_at", "u.id"))
	if err != nil {
		return nil, fmt.Errorf("failed to get message readers: %v", err)
	}

	for i, row := range rows {
		readBy := readers[row.ID]
		if readBy == nil {
			readBy = []model.User{}
		}
		messages[i] = model.Message{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			Author: model.User{
				ID:        row.AuthorID,
				Nickname:  row.AuthorNickname,
				AvatarURL: row.AuthorAvatarURL,
			},
			Content:     row.Content,
			ContentType: model.ContentType(row.ContentType),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
			ReadBy:      readBy,
		}
	}

	return messages, nil
}

// selectMembers groups users by the owning conversation or message id.
func (r *Repository) selectMembers(ctx context.Context, builder sq.SelectBuilder) (map[int64][]model.User, error) {
	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var rows []memberRow
	err = r.Chk(ctx).SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]model.User)
	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], model.User{
			ID:        row.ID,
			Nickname:  row.Nickname,
			AvatarURL: row.AvatarURL,
		})
	}

	return result, nil
}
