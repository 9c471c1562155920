package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/magmast/rzork/internal/state"
	"github.com/magmast/rzork/pkg/command"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send commands interactively",
	Long: `Read commands line by line and print each reply. Every line is sent on
its own; no conversation history is kept. Ctrl+C cancels a pending reply,
"exit", "quit" or Ctrl+D leaves.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.FromContext(cmd.Context())

		l := liner.NewLiner()
		defer l.Close()
		l.SetCtrlCAborts(true)

		cfg := s.Store.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "rzork chat (%s)\n", cfg.Model)
		if !cfg.Ready() {
			fmt.Fprintln(cmd.ErrOrStderr(), "API key not configured, run: rzork config set api_key <key>")
		}

		r := &repl{
			prompt:  l,
			client:  s.Client,
			printer: newPrinter(cmd.OutOrStdout()),
			errOut:  cmd.ErrOrStderr(),
			interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
				return signal.NotifyContext(ctx, os.Interrupt)
			},
		}

		return r.run(cmd.Context())
	},
}

type lineAction int

const (
	lineSkip lineAction = iota
	lineSend
	lineQuit
)

// parseLine decides what to do with one line of input.
func parseLine(line string) (string, lineAction) {
	line = strings.TrimSpace(line)

	switch line {
	case "":
		return "", lineSkip
	case "exit", "quit":
		return "", lineQuit
	}

	return line, lineSend
}

// prompter is the part of *liner.State the loop needs.
type prompter interface {
	Prompt(string) (string, error)
	AppendHistory(string)
}

type repl struct {
	prompt  prompter
	client  *command.Client
	printer *printer
	errOut  io.Writer
	// interrupt derives the context of a single reply, canceled on Ctrl+C.
	interrupt func(context.Context) (context.Context, context.CancelFunc)
}

func (r *repl) run(ctx context.Context) error {
	for {
		line, err := r.prompt.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.printer.w)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		text, action := parseLine(line)
		switch action {
		case lineSkip:
			continue
		case lineQuit:
			return nil
		}
		r.prompt.AppendHistory(text)

		rctx, stop := r.interrupt(ctx)
		err = r.printer.reply(rctx, r.client, text)
		stop()
		if err != nil {
			fmt.Fprintln(r.errOut, err)
		}
	}
}
