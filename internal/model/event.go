package model

import "github.com/golang-jwt/jwt/v5"

type EventKind string

const (
	EventKindMessage      EventKind = "message"
	EventKindConversation EventKind = "conversation"
)

// Event is the push payload. It only points at the conversation; clients refetch state themselves.
type Event struct {
	Kind           EventKind `json:"kind"`
	ConversationID int64     `json:"conversation_id"`
}

// Delivery is an event addressed to a set of users.
type Delivery struct {
	Recipients []int64 `json:"recipients"`
	Event      Event   `json:"event"`
}

type CentrifugoEvent struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type CentrifugoBroadcastParams struct {
	Channels []string `json:"channels"`
	Data     Event    `json:"data"`
}

type ConnectClaims struct {
	jwt.RegisteredClaims
}
