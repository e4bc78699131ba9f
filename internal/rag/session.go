package rag

import "github.com/google/uuid"

// Session scopes one conversation: its identity and its history. Sessions
// share the pipeline and the index underneath but never each other's turns.
type Session struct {
	ID      string
	History *History
}

// NewSession creates an empty conversation.
func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		History: &History{},
	}
}
