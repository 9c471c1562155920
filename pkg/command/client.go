package command

import (
	"context"
	"strings"
	"time"

	"github.com/magmast/rzork/pkg/chat"
	"github.com/magmast/rzork/pkg/config"
	"github.com/magmast/rzork/pkg/middlewares"
)

const DefaultTimeout = 30 * time.Second

// Client turns one user command into one model reply. It keeps no state
// between calls besides the shared Store, so calls may run concurrently.
type Client struct {
	Store *config.Store
	Chat  *chat.Chat
}

// New returns a client sending commands through the default middleware chain.
// A zero timeout disables the request deadline.
func New(store *config.Store, timeout time.Duration, opts ...middlewares.OpenAIConfig) *Client {
	return &Client{
		Store: store,
		Chat: &chat.Chat{
			Middlewares: []chat.Middleware{
				middlewares.NewTrace(),
				middlewares.NewTimeout(timeout),
				middlewares.NewOpenAI(opts...),
			},
		},
	}
}

// Process sends command and returns the reply text unmodified. Failures are
// always *Error values.
func (c *Client) Process(ctx context.Context, command string) (string, error) {
	return c.process(ctx, command, nil)
}

// Stream is like Process but passes reply fragments to onDelta as they
// arrive. The returned text is the whole reply.
func (c *Client) Stream(ctx context.Context, command string, onDelta func(string)) (string, error) {
	if onDelta == nil {
		onDelta = func(string) {}
	}
	return c.process(ctx, command, onDelta)
}

// Result is the outcome of an asynchronous command.
type Result struct {
	Text string
	Err  error
}

// Go runs Process on its own goroutine and delivers exactly one Result. The
// channel is buffered, so a caller that stops listening after canceling ctx
// never blocks the worker.
func (c *Client) Go(ctx context.Context, command string) <-chan Result {
	ch := make(chan Result, 1)

	go func() {
		text, err := c.Process(ctx, command)
		ch <- Result{Text: text, Err: err}
	}()

	return ch
}

func (c *Client) process(ctx context.Context, command string, onDelta func(string)) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", &Error{Kind: KindInvalidInput, Message: "command is empty"}
	}

	cfg := c.Store.Get()
	if !cfg.Ready() {
		return "", &Error{Kind: KindNotConfigured, Message: "API key not configured"}
	}

	var (
		res *chat.Response
		err error
	)
	if onDelta != nil {
		res, err = c.Chat.Stream(ctx, cfg, command, onDelta)
	} else {
		res, err = c.Chat.Send(ctx, cfg, command)
	}
	if err != nil {
		return "", classify(ctx, err)
	}

	return res.Message.Content, nil
}
