package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"symname/internal/render"
	"symname/internal/trace"
	"symname/internal/version"
)

// newRootCmd builds the command tree with its persistent flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "symname",
		Short: "Render diagnostic names of resolved symbols and types",
		Long: `symname renders the qualified names a compiler prints in diagnostics
(Foo<T>.Bar(int, params string[])) for symbols and types described in a
graph document (TOML, YAML or a .symg snapshot).`,
		Version:       version.Fingerprint(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file (default: ./symname.toml when present)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("locale", "en", "language of fixed tokens (BCP 47 tag)")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|stage|query|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	return root
}

// main runs the CLI and exits with its status: 1 for command errors, 2 for
// fatal render conditions, whether panicking or returned from a worker.
func main() {
	os.Exit(execute(newRootCmd(), os.Args[1:]))
}

func execute(root *cobra.Command, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(root.ErrOrStderr(), "fatal: %v\n", r)
			dumpTrace(root.ErrOrStderr())
			code = 2
		}
	}()
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if render.IsFatal(err) {
			fmt.Fprintf(root.ErrOrStderr(), "fatal: %v\n", err)
			dumpTrace(root.ErrOrStderr())
			return 2
		}
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
		return 1
	}
	return 0
}

// dumpTrace writes the ring buffer of the active tracer, if any.
func dumpTrace(w io.Writer) {
	tracerMu.Lock()
	t := activeTracer
	tracerMu.Unlock()
	ring, ok := trace.Ring(t)
	if !ok {
		return
	}
	fmt.Fprintln(w, "trace (most recent events):")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
