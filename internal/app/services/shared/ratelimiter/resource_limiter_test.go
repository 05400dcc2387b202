package ratelimiter

import (
	"context"
	"email-attestation-service/internal/pkg/constvars"
	"errors"
	"testing"
	"time"

	sharedRedis "email-attestation-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLimiter(t *testing.T) *ResourceLimiter {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewResourceLimiter(sharedRedis.NewRedisRepository(client), zap.NewNop())
}

func TestResourceLimiter_ApplyResourceLimiter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("allows up to quota then blocks with retry after", func(t *testing.T) {
		limiter := newLimiter(t)
		in := &ApplyResourceLimiterInput{
			ResourceName:      "Alice@Example.com",
			LimiterGroupName:  constvars.RateLimitGroupEmailRequest,
			WindowDurationSec: 600,
			MaxQuota:          3,
			NowUTC:            now,
		}

		for i := 0; i < 3; i++ {
			out, err := limiter.ApplyResourceLimiter(context.Background(), in)
			require.NoError(t, err)
			assert.True(t, out.Allowed, "hit %d", i+1)
		}

		out, err := limiter.ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		// now is 12:00:00, the 600s window started at 12:00:00
		assert.Equal(t, 601, out.RetryAfterSecs)
	})

	t.Run("addresses are counted independently", func(t *testing.T) {
		limiter := newLimiter(t)
		base := ApplyResourceLimiterInput{
			LimiterGroupName:  constvars.RateLimitGroupEmailRequest,
			WindowDurationSec: 600,
			MaxQuota:          1,
			NowUTC:            now,
		}

		alice := base
		alice.ResourceName = "alice@example.com"
		bob := base
		bob.ResourceName = "bob@example.com"

		out, err := limiter.ApplyResourceLimiter(context.Background(), &alice)
		require.NoError(t, err)
		assert.True(t, out.Allowed)

		out, err = limiter.ApplyResourceLimiter(context.Background(), &bob)
		require.NoError(t, err)
		assert.True(t, out.Allowed)

		out, err = limiter.ApplyResourceLimiter(context.Background(), &alice)
		require.NoError(t, err)
		assert.False(t, out.Allowed)
	})

	t.Run("next window resets the counter", func(t *testing.T) {
		limiter := newLimiter(t)
		in := &ApplyResourceLimiterInput{
			ResourceName:      "alice@example.com",
			LimiterGroupName:  constvars.RateLimitGroupEmailRequest,
			WindowDurationSec: 60,
			MaxQuota:          1,
			NowUTC:            now,
		}

		out, err := limiter.ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.Allowed)

		in.NowUTC = now.Add(time.Minute)
		out, err = limiter.ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("zero quota disables the limit", func(t *testing.T) {
		limiter := NewResourceLimiter(new(MockRedisRepository), zap.NewNop())
		out, err := limiter.ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:     "alice@example.com",
			LimiterGroupName: constvars.RateLimitGroupEmailRequest,
		})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("nil input", func(t *testing.T) {
		limiter := NewResourceLimiter(new(MockRedisRepository), zap.NewNop())
		out, err := limiter.ApplyResourceLimiter(context.Background(), nil)
		require.Error(t, err)
		assert.False(t, out.Allowed)
	})

	t.Run("redis failure is reported", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("IncrementWithTTL", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("connection refused")).Once()

		limiter := NewResourceLimiter(repo, zap.NewNop())
		out, err := limiter.ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:     "alice@example.com",
			LimiterGroupName: constvars.RateLimitGroupEmailRequest,
			MaxQuota:         5,
		})
		require.Error(t, err)
		assert.False(t, out.Allowed)
		repo.AssertExpectations(t)
	})
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}
