package cmd

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/kaa-lang/kaa/lisp/lisplib/libtesting"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	testVerbose  bool
	testParallel int
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test [flags] FILE...",
	Short: "Run lisp test files",
	Long: `Run the tests registered with go/testing by each file.  Files run
concurrently, each in its own session.  Results are reported in the order the
files were given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]bytes.Buffer, len(args))
		var failed, total atomic.Int64

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(testParallel)
		for i, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				nfail, n, err := runTestFile(cmd, &results[i], path)
				failed.Add(int64(nfail))
				total.Add(int64(n))
				return err
			})
		}
		err := g.Wait()
		for i := range results {
			_, _ = results[i].WriteTo(cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}
		if failed.Load() > 0 {
			return errors.Errorf("%d of %d tests failed", failed.Load(), total.Load())
		}
		return nil
	},
}

// runTestFile loads path in a new session and runs the tests it registers,
// writing a report to w.  Failing tests are counted, not returned as errors.
func runTestFile(cmd *cobra.Command, w io.Writer, path string) (failed, total int, err error) {
	var out bytes.Buffer
	s, ns, err := newSession(cmd, &out)
	if err != nil {
		return 0, 0, err
	}
	src, err := readSource(cmd, path)
	if err != nil {
		return 0, 0, err
	}
	_, err = s.LoadBytes(ns, path, src)
	if err != nil {
		fmt.Fprintf(w, "FAIL\t%s\n\t%v\n", path, err)
		return 1, 1, nil
	}
	suite := libtesting.SessionTestSuite(s)
	if suite == nil {
		return 0, 0, errors.Errorf("%s: session has no test suite", path)
	}
	for i := 0; i < suite.Len(); i++ {
		test := suite.Test(i)
		out.Reset()
		err := test.Run()
		s.Stack.Reset()
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(w, "--- FAIL: %s\n", test.Name)
			fmt.Fprintf(w, "\t%v\n", err)
		case testVerbose:
			fmt.Fprintf(w, "--- PASS: %s\n", test.Name)
		}
		if (err != nil || testVerbose) && out.Len() > 0 {
			_, _ = out.WriteTo(w)
		}
	}
	status := "ok"
	if failed > 0 {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s\t%s\t%d tests\n", status, path, suite.Len())
	return failed, suite.Len(), nil
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().BoolVarP(&testVerbose, "verbose", "v", false,
		"Report passing tests and their output")
	testCmd.Flags().IntVar(&testParallel, "parallel", runtime.GOMAXPROCS(0),
		"Maximum number of files tested at once")
}
