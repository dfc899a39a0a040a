package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SessionID identifies one browser's view state
type SessionID string

// NewSessionID creates a time-ordered identifier, UUID v7 with a v4 fallback
func NewSessionID() SessionID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return SessionID(id.String())
}

// ParseSessionID accepts only well-formed UUIDs, so cookie values never reach the store unchecked
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid session ID: %w", err)
	}
	return SessionID(id.String()), nil
}

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id SessionID) IsEmpty() bool {
	return id == ""
}
