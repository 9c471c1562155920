package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/magmast/rzork/internal/state"
	"github.com/spf13/cobra"
)

func init() {
	codeFixCmd.Flags().BoolVarP(&applyFix, "apply", "a", false, "Write the corrected code back to the file")

	codeCmd.AddCommand(codeAnalyzeCmd, codeFixCmd, codeReviewCmd)
}

var (
	applyFix bool

	// ErrNoCodeBlock is returned by code fix --apply when the reply has no
	// fenced code block to write back.
	ErrNoCodeBlock = errors.New("reply contains no code block")

	codeCmd = &cobra.Command{
		Use:   "code",
		Short: "Analyze, fix or review a source file",
	}

	codeAnalyzeCmd = &cobra.Command{
		Use:   "analyze <file>",
		Short: "Point out bugs and weak spots in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return askAboutFile(cmd, args[0], `Analyze the file below and list the problems you find:
bugs, code quality issues, security concerns, performance improvements
and violations of common practice. Use one section per category.`)
		},
	}

	codeFixCmd = &cobra.Command{
		Use:   "fix <file>",
		Short: "Ask for a corrected version of a file",
		Long: `Ask for a corrected version of a file. With --apply the first fenced
code block of the reply replaces the file contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			instr := `Fix the issues in the file below. Explain briefly what you changed,
then return the complete corrected file in a single fenced code block.`

			if !applyFix {
				return askAboutFile(cmd, path, instr)
			}

			prompt, err := filePrompt(path, instr)
			if err != nil {
				return err
			}

			s := state.FromContext(cmd.Context())
			res, err := s.Client.Process(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)

			code, ok := codeBlock(res)
			if !ok {
				return ErrNoCodeBlock
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(code), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied fix to %s\n", path)
			return nil
		},
	}

	codeReviewCmd = &cobra.Command{
		Use:   "review <file>",
		Short: "Review a file like a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return askAboutFile(cmd, args[0], `Review the file below as you would a pull request. Cover readability,
design, performance, security and maintainability, suggest improvements
and finish with an overall rating from 1 to 10.`)
		},
	}
)

func askAboutFile(cmd *cobra.Command, path, instr string) error {
	prompt, err := filePrompt(path, instr)
	if err != nil {
		return err
	}

	s := state.FromContext(cmd.Context())
	return newPrinter(cmd.OutOrStdout()).reply(cmd.Context(), s.Client, prompt)
}

// filePrompt builds a single user message holding instr and the file.
func filePrompt(path, instr string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return fmt.Sprintf("%s\n\nFile: %s\n```\n%s\n```", instr, path, content), nil
}

// codeBlock returns the text between the first fence line and the last fence.
func codeBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}

	nl := strings.IndexByte(s[start:], '\n')
	if nl == -1 {
		return "", false
	}
	start += nl + 1

	end := strings.LastIndex(s, "```")
	if end < start {
		return "", false
	}

	return s[start:end], true
}
