package cmd

import (
	"github.com/kaa-lang/kaa/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive prompt",
	Long: `Start an interactive prompt.  The value of the last expression is bound
to ^.  Errors are reported and the session continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

func runRepl(cmd *cobra.Command) error {
	_, ns, err := newSession(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return repl.RunRepl(replPrompt, ns,
		repl.WithStdout(cmd.OutOrStdout()),
		repl.WithStderr(cmd.ErrOrStderr()))
}

func init() {
	rootCmd.AddCommand(replCmd)

	rootCmd.PersistentFlags().StringVar(&replPrompt, "prompt", "kaa> ",
		"Prompt shown by the interactive prompt")
}
