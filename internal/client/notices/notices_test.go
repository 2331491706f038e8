package notices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PostAndRead(t *testing.T) {
	c := NewCenter(time.Minute)
	c.Successf("Synced %s", "Tomato")
	c.Failuref("sync failed: %s", "down")

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, Success, active[0].Level)
	assert.Equal(t, "Synced Tomato", active[0].Message)
	assert.Equal(t, Failure, active[1].Level)
}

func TestCenter_NoticesExpire(t *testing.T) {
	c := NewCenter(time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Successf("saved locally")
	require.Len(t, c.Active(), 1)

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	assert.Empty(t, c.Active())
}
