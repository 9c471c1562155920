package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/magmast/rzork/pkg/chat"
	"github.com/sashabaranov/go-openai"
)

// maxFailureBody bounds how much of a non-2xx body is kept for the error
// message. Successful bodies are read whole.
const maxFailureBody = 64 << 10

var dataPrefix = []byte("data:")

// endpoint is a single-use RoundTripper that sends every request to a fixed
// URL, whatever path the SDK built, and records what came back.
type endpoint struct {
	url    *url.URL
	next   http.RoundTripper
	stream bool

	status    int
	failure   string
	malformed bool

	// set while a streamed body is read
	events bool
	eof    bool
}

func newEndpoint(raw string, next http.RoundTripper, stream bool) (*endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	if next == nil {
		next = http.DefaultTransport
	}

	return &endpoint{url: u, next: next, stream: stream}, nil
}

func (e *endpoint) client() *http.Client {
	return &http.Client{
		Transport: e,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *endpoint) RoundTrip(r *http.Request) (*http.Response, error) {
	out := r.Clone(r.Context())
	u := *e.url
	out.URL = &u
	out.Host = u.Host

	res, err := e.next.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if success(res.StatusCode) && e.stream {
		e.status = res.StatusCode
		res.Body = &eventBody{ReadCloser: res.Body, e: e}
		return res, nil
	}

	var body io.Reader = res.Body
	if !success(res.StatusCode) {
		body = io.LimitReader(res.Body, maxFailureBody)
	}

	bs, err := io.ReadAll(body)
	res.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	res.Body = io.NopCloser(bytes.NewReader(bs))
	e.status = res.StatusCode

	if success(res.StatusCode) {
		e.malformed = !hasContent(bs)
	} else {
		e.failure = strings.TrimSpace(string(bs))
		if e.failure == "" {
			e.failure = http.StatusText(res.StatusCode)
		}
	}

	return res, nil
}

// check turns what the endpoint observed into the error the caller sees.
// A recorded status always wins over the SDK's own interpretation of it.
func (e *endpoint) check(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = e.url.String()
	}

	switch {
	case e.status == 0:
		return err
	case !success(e.status):
		return &chat.StatusError{Code: e.status, Body: e.failure}
	case e.malformed:
		return chat.ErrMalformedResponse
	case e.stream && e.eof && !e.events:
		return chat.ErrMalformedResponse
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPStatusCode
		if code == 0 {
			code = e.status
		}
		return &chat.StatusError{Code: code, Body: apiErr.Message}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, openai.ErrTooManyEmptyStreamMessages) {
		return chat.ErrMalformedResponse
	}

	return err
}

func success(code int) bool {
	return code >= 200 && code < 300
}

// hasContent reports whether bs carries choices[0].message.content.
func hasContent(bs []byte) bool {
	var body struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(bs, &body); err != nil {
		return false
	}

	return len(body.Choices) > 0 && body.Choices[0].Message.Content != nil
}

// eventBody watches a streamed body for lines starting with "data:" and
// notes when it was read to the end.
type eventBody struct {
	io.ReadCloser
	e    *endpoint
	line []byte
}

func (b *eventBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)

	for _, c := range p[:n] {
		if b.e.events {
			break
		}

		switch {
		case c == '\n':
			b.line = b.line[:0]
		case len(b.line) == 0 && (c == ' ' || c == '\t' || c == '\r'):
		case len(b.line) < len(dataPrefix):
			b.line = append(b.line, c)
			b.e.events = bytes.Equal(b.line, dataPrefix)
		}
	}

	if errors.Is(err, io.EOF) {
		b.e.eof = true
	}

	return n, err
}
