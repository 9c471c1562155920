package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/magmast/rzork/pkg/chat"
)

// Kind classifies why a command failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNotConfigured
	KindNetwork
	KindAPI
	KindParse
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotConfigured:
		return "NotConfigured"
	case KindNetwork:
		return "NetworkError"
	case KindAPI:
		return "ApiError"
	case KindParse:
		return "ParseError"
	case KindCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a failed command. Message is meant to be shown to the user as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func classify(ctx context.Context, err error) *Error {
	var statusErr *chat.StatusError

	switch {
	case errors.As(err, &statusErr):
		return &Error{Kind: KindAPI, Message: statusErr.Error()}
	case errors.Is(err, chat.ErrMalformedResponse):
		return &Error{Kind: KindParse, Message: chat.ErrMalformedResponse.Error()}
	case errors.Is(ctx.Err(), context.Canceled):
		return &Error{Kind: KindCanceled, Message: "command canceled"}
	default:
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
}
