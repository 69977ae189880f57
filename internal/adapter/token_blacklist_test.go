package adapter_test

import (
	"context"
	"testing"
	"time"

	"quizly/internal/adapter"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevoke(t *testing.T) {
	t.Run("stores the token id with its remaining ttl", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		mock.ExpectSet("token_blacklist:jti123", "revoked", 600*time.Second).SetVal("OK")

		err := blacklist.Revoke(context.Background(), "jti123", 600)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		// No expectation set: a Redis call would fail the test.
		err := blacklist.Revoke(context.Background(), "jti123", -5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure surfaces", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		mock.ExpectSet("token_blacklist:jti123", "revoked", 600*time.Second).SetErr(assert.AnError)

		err := blacklist.Revoke(context.Background(), "jti123", 600)
		assert.Error(t, err)
	})
}

func TestIsRevoked(t *testing.T) {
	t.Run("revoked token", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		mock.ExpectExists("token_blacklist:jti123").SetVal(1)

		revoked, err := blacklist.IsRevoked(context.Background(), "jti123")

		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		mock.ExpectExists("token_blacklist:other").SetVal(0)

		revoked, err := blacklist.IsRevoked(context.Background(), "other")

		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("redis failure surfaces", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		blacklist := adapter.NewRedisTokenBlacklist(client)

		mock.ExpectExists("token_blacklist:jti123").SetErr(assert.AnError)

		_, err := blacklist.IsRevoked(context.Background(), "jti123")
		assert.Error(t, err)
	})
}
