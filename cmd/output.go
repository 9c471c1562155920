package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/magmast/rzork/pkg/command"
	"github.com/rs/zerolog/log"
)

const wordWrap = 100

// printer writes replies the way the --stream and --render flags ask for.
type printer struct {
	w      io.Writer
	stream bool
	render bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, stream: stream, render: render}
}

func (p *printer) reply(ctx context.Context, client *command.Client, text string) error {
	if p.stream {
		_, err := client.Stream(ctx, text, func(delta string) {
			fmt.Fprint(p.w, delta)
		})
		fmt.Fprintln(p.w)
		return err
	}

	res, err := client.Process(ctx, text)
	if err != nil {
		return err
	}

	if p.render {
		res = markdown(res)
	}

	_, err = fmt.Fprintln(p.w, res)
	return err
}

// markdown renders s for the terminal, falling back to s itself.
func markdown(s string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer")
		return s
	}

	out, err := r.Render(s)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown")
		return s
	}

	return out
}
