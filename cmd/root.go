package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/magmast/rzork/internal/state"
	"github.com/magmast/rzork/pkg/command"
	"github.com/magmast/rzork/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "API key (overrides RZORK_API_KEY and the config file)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model identifier")
	rootCmd.PersistentFlags().StringVarP(&baseUrl, "base-url", "u", "", "Chat completions endpoint URL")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", command.DefaultTimeout, "Request timeout, 0 disables it")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")
	rootCmd.PersistentFlags().BoolVarP(&stream, "stream", "s", false, "Print the reply as it arrives")
	rootCmd.PersistentFlags().BoolVarP(&render, "render", "r", false, "Render the reply as markdown")

	rootCmd.AddCommand(chatCmd, codeCmd, configCmd, versionCmd)
}

var (
	apiKey     string
	model      string
	baseUrl    string
	timeout    time.Duration
	configPath string
	verbose    bool
	stream     bool
	render     bool

	rootCmd = &cobra.Command{
		Use:           "rzork [command]",
		Short:         "Send commands to a hosted chat model",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Msg("failed to load .env file")
			}

			path := configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			s := state.New(path, cfg, timeout)
			s.Store.Update(flagOverrides(cmd))

			cmd.SetContext(state.NewContext(cmd.Context(), s))

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := state.FromContext(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return newPrinter(cmd.OutOrStdout()).reply(ctx, s.Client, strings.Join(args, " "))
		},
	}
)

// flagOverrides collects the endpoint flags given on the command line.
func flagOverrides(cmd *cobra.Command) config.Update {
	var u config.Update

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		u.APIKey = &apiKey
	}
	if flags.Changed("model") {
		u.Model = &model
	}
	if flags.Changed("base-url") {
		u.BaseURL = &baseUrl
	}

	return u
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if verbose {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var cmdErr *command.Error
		if errors.As(err, &cmdErr) {
			fmt.Fprintln(os.Stderr, cmdErr.Message)
			os.Exit(1)
		}

		log.Fatal().Err(err).Msg("failed to execute root command")
	}
}
