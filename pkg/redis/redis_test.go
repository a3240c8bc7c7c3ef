package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistKey(t *testing.T) {
	key := blacklistKey("header.payload.signature")

	assert.True(t, strings.HasPrefix(key, "blacklist:"))
	assert.Len(t, key, len("blacklist:")+64)
	assert.Equal(t, key, blacklistKey("header.payload.signature"))
	assert.NotEqual(t, key, blacklistKey("other.payload.signature"))
}

func TestTokenBlacklist_AddSkipsExpiredTokens(t *testing.T) {
	// No client needed: an already expired token is never written.
	b := NewTokenBlacklist(nil)
	assert.NoError(t, b.Add(context.Background(), "token", 0))
	assert.NoError(t, b.Add(context.Background(), "token", -time.Second))
}
