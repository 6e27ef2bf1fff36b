package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiterSharesWWWBucket(t *testing.T) {
	l := NewHostLimiter(0.001, 1)

	assert.True(t, l.Allow("https://www.seek.com.au/go-jobs"))
	assert.False(t, l.Allow("https://seek.com.au/go-jobs?page=2"))
	assert.True(t, l.Allow("https://au.indeed.com/jobs"))
}

func TestHostLimiterWaitHonoursContext(t *testing.T) {
	l := NewHostLimiter(0.001, 1)
	require.True(t, l.Allow("https://www.linkedin.com/jobs"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, l.Wait(ctx, "https://www.linkedin.com/jobs?start=25"))
}

func TestUnlimitedNeverBlocks(t *testing.T) {
	l := Unlimited()
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Wait(context.Background(), "https://au.indeed.com/jobs"))
	}
}

func TestInvalidURLPassesThrough(t *testing.T) {
	l := NewHostLimiter(0.001, 1)
	assert.True(t, l.Allow("://bad"))
	assert.True(t, l.Allow("://bad"))
}
