package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_TokenAndAuthenticated(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())

	s.SetToken("tok")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok", s.Token())

	s.Clear()
	assert.False(t, s.Authenticated())
}

func TestSession_EdgeTriggeredSubscribers(t *testing.T) {
	s := New()
	fired := 0
	s.OnAuthenticated(func() { fired++ })

	s.SetToken("tok1")
	assert.Equal(t, 1, fired, "fires on unauthenticated->authenticated")

	s.SetToken("tok2")
	assert.Equal(t, 1, fired, "token refresh without logout must not re-fire")

	s.Clear()
	s.SetToken("tok3")
	assert.Equal(t, 2, fired, "fires again after an intervening logout")
}

func TestSession_SetEmptyTokenClears(t *testing.T) {
	s := New()
	fired := 0
	s.OnAuthenticated(func() { fired++ })

	s.SetToken("")
	assert.False(t, s.Authenticated())
	assert.Zero(t, fired)
}
