package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/nlquery"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Palindrome bool
	MinLength  int
	MaxLength  int
	WordCount  int
	Contains   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored strings matching filters",
		Long: `List stored strings in insertion order.

Only the flags given on the command line become filters; all of them must
match.

Example:
  stringvault list
  stringvault list --palindrome --min-length 5
  stringvault list --word-count 1 --contains z --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := opts.filterSet(cmd)
			return withApp(rootOpts, cmd, func(a *app, f *OutputFormatter) error {
				res, err := a.svc.List(cmd.Context(), set)
				if err != nil {
					return reportError(f, err)
				}
				return f.Success(listOutput(res))
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Palindrome, "palindrome", false, "is_palindrome filter (use --palindrome=false for non-palindromes)")
	cmd.Flags().IntVar(&opts.MinLength, "min-length", 0, "minimum length in characters")
	cmd.Flags().IntVar(&opts.MaxLength, "max-length", 0, "maximum length in characters")
	cmd.Flags().IntVar(&opts.WordCount, "word-count", 0, "exact word count")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "single character the string must contain")

	return cmd
}

// filterSet builds the set from the flags that were explicitly given.
func (o *ListOptions) filterSet(cmd *cobra.Command) filter.Set {
	var set filter.Set
	flags := cmd.Flags()
	if flags.Changed("palindrome") {
		set = set.WithPalindrome(o.Palindrome)
	}
	if flags.Changed("min-length") {
		set = set.WithMinLength(o.MinLength)
	}
	if flags.Changed("max-length") {
		set = set.WithMaxLength(o.MaxLength)
	}
	if flags.Changed("word-count") {
		set = set.WithWordCount(o.WordCount)
	}
	if flags.Changed("contains") {
		set = set.WithContainsCharacter(o.Contains)
	}
	return set
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "List stored strings matching a natural-language query",
		Long: `Translate a natural-language query into filters and list the matches.

Run "stringvault rules" to see the phrases that are understood.

Exit codes:
  0 - Query understood (even with no matches)
  1 - No phrase in the query was understood

Example:
  stringvault query "single word palindromic strings"
  stringvault query "strings longer than 10 characters containing the letter z"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app, f *OutputFormatter) error {
				res, err := a.svc.Query(cmd.Context(), args[0])
				if err != nil {
					return reportError(f, err)
				}
				return f.Success(queryOutput(res))
			})
		},
	}
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the natural-language query rules",
		Long: `List the phrases the query translator understands, in evaluation order.

Matching is case-insensitive. Every rule whose phrase is present contributes
its filter; a later rule overrides an earlier one on the same field.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(newRulesOutput(nlquery.Rules()))
		},
	}
}
