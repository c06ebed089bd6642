package cmd

import (
	"bytes"
	"fmt"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/parser"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var readGo bool

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read [flags] FILE",
	Short: "Print the forms read from a file",
	Long: `Read a source file, or stdin when FILE is -, and print each form it
contains without evaluating anything.  With --go the Go representation of each
form is dumped instead, including source locations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		forms, err := parser.NewReader().Read(args[0], bytes.NewReader(src))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, form := range forms {
			if readGo {
				_, _ = pretty.Fprintf(w, "%# v\n", form)
				continue
			}
			fmt.Fprintln(w, lisp.Format(form))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolVarP(&readGo, "go", "g", false,
		"Dump the Go representation of each form")
}
