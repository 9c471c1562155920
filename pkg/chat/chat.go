package chat

import (
	"context"
	"errors"

	"github.com/magmast/rzork/pkg/config"
	"github.com/magmast/rzork/pkg/utils"
	"github.com/rs/zerolog"
)

var ErrNoMiddlewares = errors.New("no middlewares")

type Chat struct {
	Middlewares []Middleware
}

// Send sends s as a single user message using cfg.
func (c *Chat) Send(ctx context.Context, cfg config.Config, s string) (*Response, error) {
	return c.run(ctx, newRequest(cfg, s, nil))
}

// Stream is like Send but hands reply fragments to onDelta as they arrive.
func (c *Chat) Stream(ctx context.Context, cfg config.Config, s string, onDelta func(string)) (*Response, error) {
	return c.run(ctx, newRequest(cfg, s, onDelta))
}

func newRequest(cfg config.Config, s string, onDelta func(string)) Request {
	return Request{
		Config: cfg,
		Messages: []Message{
			{
				Role:    RoleUser,
				Content: s,
			},
		},
		OnDelta: onDelta,
	}
}

func (c *Chat) run(ctx context.Context, req Request) (*Response, error) {
	var initRun Handler = func(ctx context.Context, req Request) (*Response, error) {
		return nil, ErrNoMiddlewares
	}

	run := utils.FoldR(c.Middlewares, initRun, func(acc Handler, middleware Middleware) Handler {
		return func(ctx context.Context, req Request) (*Response, error) {
			zerolog.Ctx(ctx).Trace().Type("middleware", middleware).Int("messages", len(req.Messages)).Msg("running middleware")
			return middleware.Run(ctx, req, acc)
		}
	})

	return run(ctx, req)
}
