package model

import (
	"fmt"
	"time"
)

const minGroupParticipants = 3

type ConversationList []Conversation

type Conversation struct {
	ID           int64     `db:"id" json:"id"`
	Title        *string   `db:"title" json:"title,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Participants []User    `db:"-" json:"participants"`
	Messages     []Message `db:"-" json:"messages,omitempty"`
	LastMessage  *Message  `db:"-" json:"last_message,omitempty"`
}

func (c *Conversation) HasParticipant(userID int64) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

func (c *Conversation) IsGroup() bool {
	return len(c.Participants) >= minGroupParticipants
}

// ParticipantIDsExcept lists every participant id except the given one, in participant order.
func (c *Conversation) ParticipantIDsExcept(userID int64) []int64 {
	ids := make([]int64, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p.ID != userID {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// DirectKey identifies the unordered pair of a two-person conversation.
func DirectKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}
