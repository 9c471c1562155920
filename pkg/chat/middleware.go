package chat

import "context"

type Middleware interface {
	Run(ctx context.Context, req Request, next Handler) (*Response, error)
}

type Handler func(ctx context.Context, req Request) (*Response, error)

// MiddlewareFunc adapts a plain function to Middleware.
type MiddlewareFunc func(ctx context.Context, req Request, next Handler) (*Response, error)

func (f MiddlewareFunc) Run(ctx context.Context, req Request, next Handler) (*Response, error) {
	return f(ctx, req, next)
}
