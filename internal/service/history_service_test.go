package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveSessionID(t *testing.T) {
	t.Run("valid UUID passes through unchanged", func(t *testing.T) {
		id := uuid.New()
		resolved := ResolveSessionID(id.String())
		assert.Equal(t, id, resolved)
	})

	t.Run("non-UUID input is deterministic", func(t *testing.T) {
		first := ResolveSessionID("zeolite synthesis notes")
		second := ResolveSessionID("zeolite synthesis notes")
		assert.Equal(t, first, second)
	})

	t.Run("different inputs resolve to different sessions", func(t *testing.T) {
		a := ResolveSessionID("session-a")
		b := ResolveSessionID("session-b")
		assert.NotEqual(t, a, b)
	})

	t.Run("resolved id is a valid UUID", func(t *testing.T) {
		resolved := ResolveSessionID("not-a-uuid")
		parsed, err := uuid.Parse(resolved.String())
		assert.NoError(t, err)
		assert.Equal(t, resolved, parsed)
	})

	t.Run("uppercase UUID string parses to the same session", func(t *testing.T) {
		id := uuid.New()
		resolved := ResolveSessionID(strings.ToUpper(id.String()))
		assert.Equal(t, id, resolved)
	})
}
