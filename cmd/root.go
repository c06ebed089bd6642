// Package cmd implements the kaa command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/lisp/lisplib"
	"github.com/kaa-lang/kaa/parser"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Version is reported by kaa --version.
var Version = "v0.1.0"

var (
	rootDebug      bool
	rootSearchPath []string
	rootNamespace  string
	rootMaxDepth   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kaa",
	Short: "A small lisp with namespaces and macros",
	Long: `kaa evaluates lisp source files, runs lisp test files, and provides an
interactive prompt.  Without a subcommand kaa starts the prompt.`,
	Example: `  # Run a program
  kaa run main.lisp

  # Evaluate expressions and print their values
  kaa run -p -e '(+ 1 2)'

  # Run test files
  kaa test lib/*_test.lisp`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if rootDebug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// Execute runs the root command with styled help and error output.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(Version),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootDebug, "debug", "d", false,
		"Enable debug logging")
	flags.StringSliceVarP(&rootSearchPath, "search-path", "I", nil,
		"Directories searched for imported namespaces")
	flags.StringVarP(&rootNamespace, "namespace", "n", "",
		"Namespace to evaluate code in (default from kaa.toml or "+lisp.DefaultNamespace+")")
	flags.IntVar(&rootMaxDepth, "max-depth", lisp.DefaultMaxDepth,
		"Maximum call depth before RecursionError is raised")
}

// newSession returns a session configured from kaa.toml and the command line
// flags, along with the namespace code should be evaluated in.  Search path
// flags come before kaa.toml entries, and the working directory is searched
// last.
func newSession(cmd *cobra.Command, stdout io.Writer) (*lisp.Session, *lisp.Namespace, error) {
	dir, project, err := lisp.FindProjectConfig(".")
	if err != nil {
		return nil, nil, err
	}
	if project != nil {
		slog.Debug("using project config", "dir", dir)
	}
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(cmd.ErrOrStderr()),
		lisp.WithLogger(slog.Default()),
		lisp.WithLoader(lisplib.LoadLibrary),
		lisp.WithSearchPath(rootSearchPath...),
	}
	config = append(config, project.Configs(dir)...)
	config = append(config, lisp.WithSearchPath("."))
	if cmd.Flags().Changed("max-depth") {
		config = append(config, lisp.WithMaxDepth(rootMaxDepth))
	}
	s, err := lisp.NewSession(config...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize lisp session")
	}
	name := rootNamespace
	if name == "" {
		name = project.DefaultNamespace()
	}
	return s, s.NewNamespace(name), nil
}

// reportStack writes the call stack of err to w when debugging is enabled.
func reportStack(w io.Writer, err error) {
	if !rootDebug {
		return
	}
	var exc *lisp.Exception
	if errors.As(err, &exc) && exc.Stack != nil && exc.Stack.Height() > 0 {
		_, _ = exc.Stack.DebugPrint(w)
	}
}

// readSource returns the contents of path, or of stdin when path is "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}
	return b, nil
}
