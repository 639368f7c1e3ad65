package model

import (
	"time"
)

type ContentType string

const (
	ContentTypeText     ContentType = "TEXT"
	ContentTypeImageURL ContentType = "IMAGE_URL"
	ContentTypeAudioURL ContentType = "AUDIO_URL"
)

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeText, ContentTypeImageURL, ContentTypeAudioURL:
		return true
	}
	return false
}

// IsURL reports whether content of this type must carry a link.
func (c ContentType) IsURL() bool {
	return c == ContentTypeImageURL || c == ContentTypeAudioURL
}

type MessageList []Message

// Message ids grow strictly with creation order, so they double as the history cursor.
type Message struct {
	ID             int64       `db:"id" json:"id"`
	ConversationID int64       `db:"conversation_id" json:"conversation_id"`
	Author         User        `db:"-" json:"author"`
	Content        string      `db:"content" json:"content"`
	ContentType    ContentType `db:"content_type" json:"content_type"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
	ReadBy         []User      `db:"-" json:"read_by"`
}

// IsReadBy is true for the author and for every user in ReadBy.
func (m *Message) IsReadBy(userID int64) bool {
	if m.Author.ID == userID {
		return true
	}
	for _, u := range m.ReadBy {
		if u.ID == userID {
			return true
		}
	}
	return false
}
