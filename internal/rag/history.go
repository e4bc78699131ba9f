package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role
	Content string
}

// History is an append-only record of a single conversation. It is not safe
// for concurrent use; a Session is owned by one conversation loop.
type History struct {
	turns []Turn
}

// Add appends a turn.
func (h *History) Add(role Role, content string) {
	h.turns = append(h.turns, Turn{Role: role, Content: content})
}

// Turns returns the recorded turns, oldest first.
func (h *History) Turns() []Turn {
	return h.turns
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Serialize flattens the history to "role: content" lines for prompt
// injection. When the result exceeds maxChars bytes it keeps the most recent
// content, cutting mid-line if necessary; older turns fall away first. The
// cut never bisects a multi-byte rune, so the result is always valid UTF-8.
func (h *History) Serialize(maxChars int) string {
	if len(h.turns) == 0 {
		return ""
	}

	lines := make([]string, 0, len(h.turns))
	for _, t := range h.turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}

	full := strings.Join(lines, "\n")
	if maxChars > 0 && len(full) > maxChars {
		cut := len(full) - maxChars
		for cut < len(full) && !utf8.RuneStart(full[cut]) {
			cut++
		}
		full = full[cut:]
	}
	return full
}
