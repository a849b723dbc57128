package llmgw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Run("创建配置错误", func(t *testing.T) {
		underlying := errors.New("unexpected token")
		err := NewConfigError("openai", underlying)

		require.NotNil(t, err)
		assert.True(t, IsConfigError(err))
		assert.False(t, IsPersistenceError(err))
		assert.Equal(t, "openai", err.Key)
		assert.Contains(t, err.Error(), "config_error")
		assert.Contains(t, err.Error(), "openai")
		assert.Contains(t, err.Error(), "unexpected token")
	})

	t.Run("错误链支持", func(t *testing.T) {
		underlying := errors.New("root cause")
		err := NewConfigError("gemini", underlying)

		require.ErrorIs(t, err, underlying)
		assert.Equal(t, underlying, errors.Unwrap(err))
	})
}

func TestPersistenceError(t *testing.T) {
	t.Run("创建持久化错误", func(t *testing.T) {
		err := NewPersistenceError("write", errors.New("disk full"))

		require.NotNil(t, err)
		assert.True(t, IsPersistenceError(err))
		assert.False(t, IsConfigError(err))
		assert.Equal(t, "write", err.Op)
		assert.Contains(t, err.Error(), "persistence_error")
		assert.Contains(t, err.Error(), "failed to write config file")
	})

	t.Run("不同操作的错误", func(t *testing.T) {
		for _, op := range []string{"read", "write", "rename", "mkdir"} {
			err := NewPersistenceError(op, errors.New(op+" error"))
			assert.Equal(t, op, err.Op)
			assert.Contains(t, err.Error(), "failed to "+op)
		}
	})

	t.Run("包装后仍可匹配", func(t *testing.T) {
		err := NewPersistenceError("rename", errors.New("cross-device link"))
		wrapped := errors.Join(errors.New("save failed"), err)

		assert.True(t, IsPersistenceError(wrapped))
	})
}
