package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"symname/internal/config"
	"symname/internal/diag"
	"symname/internal/locale"
	"symname/internal/observ"
	"symname/internal/trace"
)

// runEnv is the per-invocation state shared by the subcommands.
type runEnv struct {
	cfg    *config.Config
	tokens *locale.Catalog
	tracer trace.Tracer
	timer  *observ.Timer // nil unless --timings
	color  bool
	styles styles
	out    io.Writer
	errOut io.Writer
}

type commandFunc func(ctx context.Context, cmd *cobra.Command, env *runEnv, args []string) error

// withEnv resolves configuration and tracing, wraps fn in a command span and
// prints timings afterwards.
func withEnv(fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tracer, cleanup, err := setupTracing(cmd, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		tokens, err := locale.Match(cfg.Locale)
		if err != nil {
			return err
		}
		showTimings, err := cmd.Flags().GetBool("timings")
		if err != nil {
			return fmt.Errorf("failed to get timings flag: %w", err)
		}

		env := &runEnv{
			cfg:    cfg,
			tokens: tokens,
			tracer: tracer,
			color:  colorEnabled(cfg.Color, cmd.OutOrStdout()),
			out:    cmd.OutOrStdout(),
			errOut: cmd.ErrOrStderr(),
		}
		env.styles = newStyles(env.out, env.color)
		color.NoColor = !env.color
		if showTimings {
			env.timer = observ.NewTimer()
		}

		span := trace.Begin(tracer, trace.ScopeCommand, "cmd."+cmd.Name(), 0)
		ctx := trace.WithSpan(cmd.Context(), span)
		err = fn(ctx, cmd, env, args)
		detail := "ok"
		if err != nil {
			detail = err.Error()
		}
		span.End(detail)

		if env.timer != nil {
			if werr := env.timer.WriteSummary(env.errOut); werr != nil && err == nil {
				err = werr
			}
		}
		return err
	}
}

// stage runs fn as a named stage: a trace span plus a timer phase.
func (env *runEnv) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	span := trace.Begin(env.tracer, trace.ScopeStage, name, trace.CurrentSpan(ctx))
	run := func() error { return fn(trace.WithSpan(ctx, span)) }
	var err error
	if env.timer != nil {
		err = env.timer.Measure(name, run)
	} else {
		err = run()
	}
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	return err
}

// loadConfig reads symname.toml (or --config) and applies explicitly set
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"color", &cfg.Color},
		{"locale", &cfg.Locale},
		{"trace", &cfg.Trace.Output},
		{"trace-level", &cfg.Trace.Level},
		{"trace-mode", &cfg.Trace.Mode},
		{"trace-format", &cfg.Trace.Format},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		v, err := cmd.Flags().GetString(o.flag)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		*o.dst = v
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		cfg.Jobs = jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// colorEnabled resolves auto|on|off against the output stream.
func colorEnabled(mode string, out io.Writer) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

type styles struct {
	pass lipgloss.Style
	fail lipgloss.Style
	dim  lipgloss.Style
}

func newStyles(out io.Writer, enabled bool) styles {
	r := lipgloss.NewRenderer(out)
	if enabled {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		pass: r.NewStyle().Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")),
		dim:  r.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

var resolvedColor = color.New(color.FgCyan)

// quote renders f the way diagnostics show it: resolved names quoted and
// coloured, phrases verbatim.
func (env *runEnv) quote(f diag.Formatted) string {
	if f.Origin != diag.OriginResolved {
		return f.Text
	}
	return resolvedColor.Sprint(f.Quoted())
}
