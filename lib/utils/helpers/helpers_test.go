package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`TruncateForLog keeps runes intact`, func(t *testing.T) {
		require.Equal(t, "прив...", TruncateForLog("привет", 4))
		require.Equal(t, "short", TruncateForLog("short", 10))
		require.Equal(t, "any", TruncateForLog("any", 0))
	})

	t.Run(`NormalizeEmail`, func(t *testing.T) {
		require.Equal(t, "john@x.com", NormalizeEmail("  John@X.com "))
	})

	t.Run(`IsValidEmail`, func(t *testing.T) {
		require.True(t, IsValidEmail("john@x.com"))
		require.False(t, IsValidEmail("John Doe <john@x.com>"))
		require.False(t, IsValidEmail("not-an-email"))
	})

	t.Run(`IsContextDone`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		require.False(t, IsContextDone(ctx))
		cancel()
		require.True(t, IsContextDone(ctx))
	})
}
