package timeout_test

import (
	"context"
	"testing"
	"time"

	"github.com/magmast/rzork/pkg/chat"
	"github.com/magmast/rzork/pkg/middlewares/timeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SetsDeadline(t *testing.T) {
	m := &timeout.Middleware{Timeout: time.Minute}

	_, err := m.Run(context.Background(), chat.Request{}, func(ctx context.Context, req chat.Request) (*chat.Response, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		return &chat.Response{}, nil
	})

	require.NoError(t, err)
}

func TestRun_Expires(t *testing.T) {
	m := &timeout.Middleware{Timeout: 10 * time.Millisecond}

	_, err := m.Run(context.Background(), chat.Request{}, func(ctx context.Context, req chat.Request) (*chat.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_ZeroDisables(t *testing.T) {
	m := &timeout.Middleware{}

	_, err := m.Run(context.Background(), chat.Request{}, func(ctx context.Context, req chat.Request) (*chat.Response, error) {
		_, ok := ctx.Deadline()
		assert.False(t, ok)
		return &chat.Response{}, nil
	})

	require.NoError(t, err)
}
