// Package checker renders the expectations of a graph document in parallel.
package checker

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"symname/internal/diag"
	"symname/internal/graphfile"
	"symname/internal/render"
	"symname/internal/trace"
)

// Result is the outcome of one query with an expectation.
type Result struct {
	Index int // position in Document.Queries
	Label string
	Want  string
	Got   string
	Err   error
}

// Passed reports whether the query rendered exactly the expected text.
func (r Result) Passed() bool { return r.Err == nil && r.Got == r.Want }

// Options configures Run.
type Options struct {
	Jobs   int           // <= 0 means GOMAXPROCS
	Tokens render.Tokens // default: English catalog
}

// Run renders every query of doc that carries an expectation. Queries are
// sharded across workers; each worker builds its own graph and renderer
// because signature memos on the graph are not synchronized.
//
// Results are ordered by query index. A worker error (build failure or a
// fatal render condition) aborts the run.
func Run(ctx context.Context, doc *graphfile.Document, opts Options) ([]Result, error) {
	var pending []int
	for i, q := range doc.Queries {
		if q.Expect != nil {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(pending))

	tracer := trace.FromContext(ctx)
	results := make([]Result, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for shard := range jobs {
		g.Go(func() (err error) {
			span := trace.Begin(tracer, trace.ScopeStage, "check.shard", trace.CurrentSpan(ctx))
			defer func() {
				if r := recover(); r != nil {
					err = shardPanic(shard, r)
				}
				span.End(fmt.Sprintf("shard %d", shard))
			}()

			prog, err := graphfile.Build(doc)
			if err != nil {
				return err
			}
			r := render.New(render.Options{Tokens: opts.Tokens, NiceNames: prog.Graph.NiceNames(), Tracer: tracer})
			adapter := diag.NewAdapter(r, opts.Tokens, tracer)
			wctx := trace.WithSpan(gctx, span)

			// indexes are disjoint across shards, so results needs no lock
			for slot := shard; slot < len(pending); slot += jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[slot] = check(wctx, adapter, pending[slot], prog.Queries[pending[slot]])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func check(ctx context.Context, adapter *diag.Adapter, index int, q graphfile.CompiledQuery) Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeQuery, "check.query", trace.CurrentSpan(ctx))
	res := Result{Index: index, Label: q.Label(), Want: *q.Expect}
	out, err := adapter.Format(trace.WithSpan(ctx, span), q.Arg())
	res.Got, res.Err = out.Text, err
	span.End(res.Got)
	return res
}

// shardPanic converts a recovered panic into the run's error, keeping error
// values in the chain so callers can still match render sentinels.
func shardPanic(shard int, r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("shard %d: %w", shard, err)
	}
	return fmt.Errorf("shard %d: %v", shard, r)
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}
