package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"symname/internal/config"
	"symname/internal/trace"
)

var (
	tracerMu     sync.Mutex
	activeTracer trace.Tracer = trace.Nop
)

// setupTracing initializes the tracer described by cfg and attaches it to the
// command context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, cfg *config.Config) (trace.Tracer, func(), error) {
	tcfg, err := cfg.TracerConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace settings: %w", err)
	}

	// If level is off and no output specified, skip tracing
	if tcfg.Level == trace.LevelOff && tcfg.OutputPath == "" {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		setActiveTracer(trace.Nop)
		return trace.Nop, func() {}, nil
	}
	if tcfg.Level == trace.LevelOff {
		tcfg.Level = trace.LevelStage
	}
	if tcfg.OutputPath == "" && tcfg.Mode != trace.ModeRing {
		tcfg.Output = cmd.ErrOrStderr()
	}

	tracer, err := trace.New(tcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	setActiveTracer(tracer)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}

func setActiveTracer(t trace.Tracer) {
	tracerMu.Lock()
	activeTracer = t
	tracerMu.Unlock()
}
