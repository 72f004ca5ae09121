package main

import (
	"context"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"symname/internal/diag"
	"symname/internal/graphfile"
	"symname/internal/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <graph> [symbol...]",
		Short: "Render symbols or types from a graph document",
		Long: `Render each symbol path given on the command line, or every query of
the document when none are given. Use --type to pass type references instead.`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.Flags().Bool("type", false, "treat arguments as type references")
	cmd.Flags().Bool("args", false, "append method argument lists")
	cmd.Flags().String("in", "", "instantiation supplying type-level arguments")
	cmd.Flags().String("scope", "", "symbol whose type parameters are in scope for --type")
	cmd.Flags().StringArray("method-args", nil, "method-level type argument (repeatable)")
	cmd.RunE = withEnv(runRender)
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, env *runEnv, args []string) error {
	adhoc, err := adhocQueries(cmd, args[1:])
	if err != nil {
		return err
	}

	var doc *graphfile.Document
	if err := env.stage(ctx, "load", func(context.Context) error {
		doc, err = graphfile.Load(args[0])
		return err
	}); err != nil {
		return err
	}
	if len(adhoc) > 0 {
		doc.Queries = adhoc
	}

	var prog *graphfile.Program
	if err := env.stage(ctx, "build", func(context.Context) error {
		prog, err = graphfile.Build(doc)
		return err
	}); err != nil {
		return err
	}

	return env.stage(ctx, "render", func(ctx context.Context) error {
		r := render.New(render.Options{Tokens: env.tokens, NiceNames: prog.Graph.NiceNames(), Tracer: env.tracer})
		adapter := diag.NewAdapter(r, env.tokens, env.tracer)

		width := 0
		if len(adhoc) == 0 {
			for _, q := range prog.Queries {
				width = max(width, runewidth.StringWidth(q.Label()))
			}
		}
		for _, q := range prog.Queries {
			out, err := adapter.Format(ctx, q.Arg())
			if err != nil {
				return fmt.Errorf("%s: %w", q.Label(), err)
			}
			if width == 0 {
				fmt.Fprintln(env.out, env.quote(out))
				continue
			}
			fmt.Fprintf(env.out, "%s  %s\n", env.styles.dim.Render(runewidth.FillRight(q.Label(), width)), env.quote(out))
		}
		return nil
	})
}

// adhocQueries turns command-line references into queries sharing the
// render flags.
func adhocQueries(cmd *cobra.Command, refs []string) ([]graphfile.Query, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	asType, err := cmd.Flags().GetBool("type")
	if err != nil {
		return nil, fmt.Errorf("failed to get type flag: %w", err)
	}
	withArgs, err := cmd.Flags().GetBool("args")
	if err != nil {
		return nil, fmt.Errorf("failed to get args flag: %w", err)
	}
	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return nil, fmt.Errorf("failed to get in flag: %w", err)
	}
	scope, err := cmd.Flags().GetString("scope")
	if err != nil {
		return nil, fmt.Errorf("failed to get scope flag: %w", err)
	}
	methodArgs, err := cmd.Flags().GetStringArray("method-args")
	if err != nil {
		return nil, fmt.Errorf("failed to get method-args flag: %w", err)
	}

	queries := make([]graphfile.Query, 0, len(refs))
	for _, ref := range refs {
		q := graphfile.Query{In: in, Scope: scope, MethodArgs: methodArgs, Args: withArgs}
		if asType {
			q.Type = ref
		} else {
			q.Symbol = ref
		}
		queries = append(queries, q)
	}
	return queries, nil
}
