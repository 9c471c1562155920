package middlewares

import (
	"net/http"
	"time"

	"github.com/magmast/rzork/pkg/chat"
	"github.com/magmast/rzork/pkg/middlewares/openai"
	"github.com/magmast/rzork/pkg/middlewares/timeout"
	"github.com/magmast/rzork/pkg/middlewares/trace"
)

type OpenAIConfig struct {
	Transport http.RoundTripper
}

func NewOpenAI(config ...OpenAIConfig) chat.Middleware {
	m := &openai.Middleware{}
	if len(config) > 0 {
		m.Transport = config[0].Transport
	}
	return m
}

func NewTimeout(d time.Duration) chat.Middleware {
	return &timeout.Middleware{
		Timeout: d,
	}
}

func NewTrace() chat.Middleware {
	return &trace.Middleware{}
}
