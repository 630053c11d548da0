package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/stringvault/internal/analysis"
)

// NewAnalyzeCommand creates the analyze command.
// It needs no store and never reads the config.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Print the properties of a string without storing it",
		Long: `Print the derived properties of a string without storing it.

The text is trimmed before analysis, exactly as add would store it.

Example:
  stringvault analyze racecar
  stringvault analyze "A man a plan" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			return f.Success(analysisOutput{
				Value:      analysis.Normalize(args[0]),
				Properties: analysis.Analyze(args[0]),
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Analyze and store a string",
		Long: `Analyze a string and store it under the SHA-256 of its trimmed value.

Exit codes:
  0 - Stored
  1 - The string is already stored
  2 - Empty value or command error

Example:
  stringvault add racecar
  stringvault add "hello world" --db ./vault.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app, f *OutputFormatter) error {
				rec, err := a.svc.Create(cmd.Context(), args[0])
				if err != nil {
					return reportError(f, err)
				}
				return f.Success(recordOutput(rec))
			})
		},
	}
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <text>",
		Short: "Show a stored string",
		Long: `Show a stored string and its properties.

The lookup is by identity, so surrounding whitespace is ignored.

Example:
  stringvault get racecar`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app, f *OutputFormatter) error {
				rec, err := a.svc.Get(cmd.Context(), args[0])
				if err != nil {
					return reportError(f, err)
				}
				return f.Success(recordOutput(rec))
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <text>",
		Short: "Delete a stored string",
		Long: `Delete a stored string.

Example:
  stringvault delete racecar`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app, f *OutputFormatter) error {
				if err := a.svc.Delete(cmd.Context(), args[0]); err != nil {
					return reportError(f, err)
				}
				return f.Success(deletedOutput{
					ID:    analysis.IdentityOf(args[0]),
					Value: analysis.Normalize(args[0]),
				})
			})
		},
	}
}

// withApp opens the store for a one-shot command and closes it afterwards.
func withApp(rootOpts *RootOptions, cmd *cobra.Command, fn func(a *app, f *OutputFormatter) error) error {
	f := rootOpts.formatter(cmd)
	a, err := rootOpts.openApp(cmd, f, true)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, f)
}
