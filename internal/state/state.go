package state

import (
	"context"
	"time"

	"github.com/magmast/rzork/pkg/command"
	"github.com/magmast/rzork/pkg/config"
)

// State is what every subcommand needs, built once before it runs.
type State struct {
	ConfigPath string
	Store      *config.Store
	Client     *command.Client
}

func New(path string, cfg config.Config, timeout time.Duration) *State {
	store := config.NewStore(cfg)

	return &State{
		ConfigPath: path,
		Store:      store,
		Client:     command.New(store, timeout),
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s. The root command installs it
// before any subcommand runs.
func NewContext(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the State carried by ctx, or nil.
func FromContext(ctx context.Context) *State {
	s, _ := ctx.Value(ctxKey{}).(*State)
	return s
}
