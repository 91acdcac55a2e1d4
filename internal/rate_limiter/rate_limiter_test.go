package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowed(t *testing.T) {
	t.Run("blocks once the limit is reached", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, rl.IsAllowed("10.0.0.1"))
		}
		assert.False(t, rl.IsAllowed("10.0.0.1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		assert.True(t, rl.IsAllowed("10.0.0.1"))
		assert.False(t, rl.IsAllowed("10.0.0.1"))
		assert.True(t, rl.IsAllowed("10.0.0.2"))
	})

	t.Run("window expiry frees the key", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		assert.True(t, rl.IsAllowed("10.0.0.1"))
		assert.False(t, rl.IsAllowed("10.0.0.1"))

		time.Sleep(20 * time.Millisecond)
		assert.True(t, rl.IsAllowed("10.0.0.1"))
	})
}

func TestGetRemainingRequests(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.Equal(t, 3, rl.GetRemainingRequests("10.0.0.1"))

	rl.IsAllowed("10.0.0.1")
	rl.IsAllowed("10.0.0.1")
	assert.Equal(t, 1, rl.GetRemainingRequests("10.0.0.1"))
}
