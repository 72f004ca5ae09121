package render

import (
	"symname/internal/locale"
	"symname/internal/resolved"
	"symname/internal/trace"
)

// Tokens resolves fixed message identifiers to localized text.
type Tokens interface {
	Token(id locale.MessageID) string
}

// NiceNamer returns curated display names for well-known declarations.
type NiceNamer interface {
	NiceName(decl *resolved.Symbol) (string, bool)
}

// Options configures a Renderer. Zero fields get defaults.
type Options struct {
	Tokens    Tokens    // default: English catalog
	NiceNames NiceNamer // default: none
	Tracer    trace.Tracer
}

// Renderer renders symbols and types. It holds no per-request state.
type Renderer struct {
	tokens Tokens
	nice   NiceNamer
	tracer trace.Tracer
}

// New constructs a Renderer.
func New(opts Options) *Renderer {
	r := &Renderer{tokens: opts.Tokens, nice: opts.NiceNames, tracer: opts.Tracer}
	if r.tokens == nil {
		r.tokens = locale.Default()
	}
	if r.nice == nil {
		r.nice = resolved.NiceNames(nil)
	}
	if r.tracer == nil {
		r.tracer = trace.Nop
	}
	return r
}

// SymbolName renders sym without an argument list.
func (r *Renderer) SymbolName(sym *resolved.Symbol, ctx resolved.Subst) string {
	return r.run("symbol", func(s *Session) { r.WriteSymbol(s, sym, ctx, false) })
}

// Signature renders sym with the argument list of methods.
func (r *Renderer) Signature(sym *resolved.Symbol, ctx resolved.Subst) string {
	return r.run("signature", func(s *Session) { r.WriteSymbol(s, sym, ctx, true) })
}

// TypeName renders t after applying ctx once.
func (r *Renderer) TypeName(t *resolved.Type, ctx resolved.Subst) string {
	return r.run("type", func(s *Session) { r.WriteType(s, t, ctx) })
}

func (r *Renderer) run(what string, fn func(*Session)) string {
	span := trace.Begin(r.tracer, trace.ScopeRender, "render."+what, 0)
	s := NewSession()
	s.Begin()
	fn(s)
	text := s.End()
	span.End(text)
	return text
}

func (r *Renderer) token(id locale.MessageID) string {
	return r.tokens.Token(id)
}
