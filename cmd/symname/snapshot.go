package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"symname/internal/graphfile"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <graph>",
		Short: "Write a binary snapshot of a graph document",
		Long: `Validate and build the document, then write it as a schema-versioned
msgpack snapshot that render and check accept in place of the source file.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringP("output", "o", "", "snapshot path (default: <graph>"+graphfile.SnapshotExt+")")
	cmd.RunE = withEnv(runSnapshot)
	return cmd
}

func runSnapshot(ctx context.Context, cmd *cobra.Command, env *runEnv, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if output == "" {
		output = snapshotPath(args[0])
	}

	var doc *graphfile.Document
	if err := env.stage(ctx, "load", func(context.Context) error {
		doc, err = graphfile.Load(args[0])
		return err
	}); err != nil {
		return err
	}
	if err := env.stage(ctx, "build", func(context.Context) error {
		_, err := graphfile.Build(doc)
		return err
	}); err != nil {
		return err
	}
	if err := env.stage(ctx, "write", func(context.Context) error {
		return graphfile.WriteSnapshot(output, doc)
	}); err != nil {
		return err
	}
	fmt.Fprintf(env.out, "wrote %s (%d types, %d queries)\n", output, len(doc.Types), len(doc.Queries))
	return nil
}

// snapshotPath replaces the document extension with SnapshotExt.
func snapshotPath(graph string) string {
	return strings.TrimSuffix(graph, filepath.Ext(graph)) + graphfile.SnapshotExt
}
