package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[SessionID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewSessionID()
		require.False(t, id.IsEmpty(), "empty ID at iteration %d", i)
		require.False(t, ids[id], "duplicate ID %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, numIDs)
}

func TestParseSessionID(t *testing.T) {
	id := NewSessionID()

	parsed, err := ParseSessionID("  " + id.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"not a uuid", "session-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionID(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSessionIDString(t *testing.T) {
	id := SessionID("abc")
	assert.Equal(t, "abc", id.String())
	assert.True(t, SessionID("").IsEmpty())
}
