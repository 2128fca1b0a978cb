package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Run("exact key wins", func(t *testing.T) {
		t.Setenv("SOME_KEY", "plain")
		t.Setenv("USERD_SOME_KEY", "prefixed")
		assert.Equal(t, "plain", Get("SOME_KEY", "fallback"))
	})

	t.Run("prefixed fallback", func(t *testing.T) {
		t.Setenv("USERD_OTHER_KEY", "prefixed")
		assert.Equal(t, "prefixed", Get("OTHER_KEY", "fallback"))
	})

	t.Run("fallback when unset", func(t *testing.T) {
		assert.Equal(t, "fallback", Get("UNSET_KEY_FOR_TEST", "fallback"))
	})

	t.Run("already prefixed key is not doubled", func(t *testing.T) {
		assert.Equal(t, "fallback", Get("USERD_UNSET_KEY_FOR_TEST", "fallback"))
	})
}
