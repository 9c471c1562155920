package trace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/magmast/rzork/pkg/chat"
	"github.com/rs/zerolog/log"
)

// Middleware tags each request with an id and logs its outcome. The logger
// carrying the id is attached to the context for the rest of the chain.
type Middleware struct {
}

func (m *Middleware) Run(ctx context.Context, req chat.Request, next chat.Handler) (*chat.Response, error) {
	logger := log.With().
		Str("request_id", uuid.New().String()).
		Str("model", req.Config.Model).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().
		Str("base_url", req.Config.BaseURL).
		Bool("stream", req.OnDelta != nil).
		Msg("sending command")

	start := time.Now()
	res, err := next(ctx, req)
	if err != nil {
		logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("command failed")
		return nil, err
	}

	logger.Debug().
		Dur("duration", time.Since(start)).
		Int("length", len(res.Message.Content)).
		Msg("command succeeded")

	return res, nil
}
