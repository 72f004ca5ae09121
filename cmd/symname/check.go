package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"symname/internal/checker"
	"symname/internal/graphfile"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <graph>",
		Short: "Verify every query expectation of a graph document",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.RunE = withEnv(runCheck)
	return cmd
}

func runCheck(ctx context.Context, _ *cobra.Command, env *runEnv, args []string) error {
	var doc *graphfile.Document
	if err := env.stage(ctx, "load", func(context.Context) error {
		var err error
		doc, err = graphfile.Load(args[0])
		return err
	}); err != nil {
		return err
	}

	var results []checker.Result
	if err := env.stage(ctx, "check", func(ctx context.Context) error {
		var err error
		results, err = checker.Run(ctx, doc, checker.Options{Jobs: env.cfg.Jobs, Tokens: env.tokens})
		return err
	}); err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(env.out, "%s: no expectations\n", args[0])
		return nil
	}
	writeCheckReport(env.out, env.styles, results)
	if failed := checker.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d expectations failed", failed, len(results))
	}
	return nil
}

func writeCheckReport(w io.Writer, st styles, results []checker.Result) {
	width := 0
	for _, r := range results {
		width = max(width, runewidth.StringWidth(r.Label))
	}
	for _, r := range results {
		label := runewidth.FillRight(r.Label, width)
		switch {
		case r.Passed():
			fmt.Fprintf(w, "%s  %s\n", st.pass.Render("PASS"), label)
		case r.Err != nil:
			fmt.Fprintf(w, "%s  %s  error: %v\n", st.fail.Render("FAIL"), label, r.Err)
		default:
			fmt.Fprintf(w, "%s  %s  got %q, want %q\n", st.fail.Render("FAIL"), label, r.Got, r.Want)
		}
	}
	passed := len(results) - checker.Failed(results)
	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("%d/%d passed", passed, len(results))))
}
