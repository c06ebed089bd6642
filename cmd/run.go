package cmd

import (
	"bytes"
	"fmt"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.  Every file or
expression is evaluated in the same session, in order.  The first unhandled
error stops evaluation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ns, err := newSession(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		ev := lisp.NewEvaluator(ns, nil)
		for i, arg := range args {
			name := arg
			var src []byte
			if runExpression {
				name = fmt.Sprintf("expr%d", i+1)
				src = []byte(arg)
			} else {
				src, err = readSource(cmd, arg)
				if err != nil {
					return err
				}
			}
			forms, err := s.Reader.Read(name, bytes.NewReader(src))
			if err != nil {
				return err
			}
			for _, form := range forms {
				v, err := ev.Evaluate(form)
				if err != nil {
					reportStack(cmd.ErrOrStderr(), err)
					return err
				}
				if runPrint {
					fmt.Fprintln(cmd.OutOrStdout(), lisp.Format(v))
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
