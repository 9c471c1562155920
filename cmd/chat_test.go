package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/magmast/rzork/pkg/command"
	"github.com/magmast/rzork/pkg/config"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		text   string
		action lineAction
	}{
		{"", "", lineSkip},
		{"   \t", "", lineSkip},
		{"exit", "", lineQuit},
		{"  quit ", "", lineQuit},
		{"hello", "hello", lineSend},
		{"  explain exit codes  ", "explain exit codes", lineSend},
	}

	for _, tt := range tests {
		text, action := parseLine(tt.line)
		assert.Equal(t, tt.action, action, "line %q", tt.line)
		assert.Equal(t, tt.text, text, "line %q", tt.line)
	}
}

type scriptedInput struct {
	lines   []string
	errs    []error
	history []string
}

func (s *scriptedInput) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line, err := s.lines[0], s.errs[0]
	s.lines, s.errs = s.lines[1:], s.errs[1:]
	return line, err
}

func (s *scriptedInput) AppendHistory(line string) {
	s.history = append(s.history, line)
}

func lines(ls ...string) *scriptedInput {
	return &scriptedInput{lines: ls, errs: make([]error, len(ls))}
}

type sentLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *sentLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lines
}

func newREPL(t *testing.T, in prompter, apiKey string) (*repl, *bytes.Buffer, *bytes.Buffer, *sentLog) {
	t.Helper()

	sent := new(sentLog)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Messages) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		sent.mu.Lock()
		sent.lines = append(sent.lines, body.Messages[0].Content)
		sent.mu.Unlock()
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, "re: "+body.Messages[0].Content)
	}))
	t.Cleanup(srv.Close)

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	store := config.NewStore(config.Config{APIKey: apiKey, BaseURL: srv.URL})

	return &repl{
		prompt:  in,
		client:  command.New(store, command.DefaultTimeout),
		printer: &printer{w: out},
		errOut:  errOut,
		interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		},
	}, out, errOut, sent
}

func TestREPL_SendsEachLine(t *testing.T) {
	in := lines("hello", "", "  second  ", "exit", "never sent")
	r, out, errOut, sent := newREPL(t, in, "key")

	require.NoError(t, r.run(context.Background()))

	assert.Equal(t, []string{"hello", "second"}, sent.all())
	assert.Equal(t, []string{"hello", "second"}, in.history)
	assert.Equal(t, "re: hello\nre: second\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestREPL_EOFLeaves(t *testing.T) {
	r, out, _, sent := newREPL(t, lines("hi"), "key")

	require.NoError(t, r.run(context.Background()))

	assert.Equal(t, []string{"hi"}, sent.all())
	assert.Equal(t, "re: hi\n\n", out.String())
}

func TestREPL_AbortedPromptContinues(t *testing.T) {
	in := &scriptedInput{
		lines: []string{"", "after abort", "quit"},
		errs:  []error{liner.ErrPromptAborted, nil, nil},
	}
	r, _, _, sent := newREPL(t, in, "key")

	require.NoError(t, r.run(context.Background()))

	assert.Equal(t, []string{"after abort"}, sent.all())
}

func TestREPL_FailureDoesNotStopLoop(t *testing.T) {
	r, out, errOut, sent := newREPL(t, lines("hello", "again", "exit"), "")

	require.NoError(t, r.run(context.Background()))

	assert.Empty(t, sent.all())
	assert.Empty(t, out.String())
	assert.Equal(t, "API key not configured\nAPI key not configured\n", errOut.String())
}

func TestREPL_ReadError(t *testing.T) {
	in := &scriptedInput{lines: []string{""}, errs: []error{assert.AnError}}
	r, _, _, _ := newREPL(t, in, "key")

	err := r.run(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
