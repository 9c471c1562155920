package chat

import (
	"errors"
	"fmt"

	"github.com/magmast/rzork/pkg/config"
)

var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Body)
}

type Request struct {
	// Config is the snapshot the request is sent with.
	Config   config.Config
	Messages []Message
	// OnDelta receives reply fragments as they arrive. When nil the reply is
	// requested in one piece.
	OnDelta func(string)
}

type Response struct {
	Request Request
	Message Message
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)
