package timeout

import (
	"context"
	"time"

	"github.com/magmast/rzork/pkg/chat"
)

// Middleware bounds the rest of the chain. A zero Timeout disables it.
type Middleware struct {
	Timeout time.Duration
}

func (m *Middleware) Run(ctx context.Context, req chat.Request, next chat.Handler) (*chat.Response, error) {
	if m.Timeout <= 0 {
		return next(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	return next(ctx, req)
}
