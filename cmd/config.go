package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/magmast/rzork/internal/state"
	"github.com/magmast/rzork/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd, configResetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.FromContext(cmd.Context())
		return printConfig(cmd.OutOrStdout(), s.ConfigPath, s.Store.Get())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set and save a configuration value",
	Long:  fmt.Sprintf("Set and save a configuration value. Keys: %s.", strings.Join(config.Keys, ", ")),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.FromContext(cmd.Context())

		var u config.Update
		if err := config.Set(&u, args[0], args[1]); err != nil {
			return err
		}

		saved, err := config.LoadFile(s.ConfigPath)
		if err != nil {
			return err
		}
		if err := config.Save(s.ConfigPath, u.Apply(saved)); err != nil {
			return err
		}
		s.Store.Update(u)

		fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
		return printConfig(cmd.OutOrStdout(), s.ConfigPath, s.Store.Get())
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore and save the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := state.FromContext(cmd.Context())

		if err := config.Save(s.ConfigPath, config.Default()); err != nil {
			return err
		}

		empty := ""
		s.Store.Update(config.Update{APIKey: &empty, Model: &empty, BaseURL: &empty})

		fmt.Fprintln(cmd.OutOrStdout(), "configuration reset to defaults")
		return printConfig(cmd.OutOrStdout(), s.ConfigPath, s.Store.Get())
	},
}

func printConfig(w io.Writer, path string, cfg config.Config) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Setting", "Value").
		Row("api_key", config.Mask(cfg.APIKey)).
		Row("model", cfg.Model).
		Row("base_url", cfg.BaseURL)

	_, err := fmt.Fprintf(w, "%s\n%s\n", path, t.Render())
	return err
}
