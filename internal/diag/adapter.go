package diag

import (
	"context"
	"errors"
	"fmt"

	"symname/internal/locale"
	"symname/internal/render"
	"symname/internal/resolved"
	"symname/internal/trace"
)

// ErrUnknownArg is returned for an argument outside the closed Arg set.
var ErrUnknownArg = errors.New("unknown diagnostic argument")

// Adapter formats diagnostic arguments.
type Adapter struct {
	renderer *render.Renderer
	tokens   render.Tokens
	tracer   trace.Tracer
}

// NewAdapter creates an Adapter. A nil tokens table uses the English catalog;
// a nil tracer falls back to the tracer carried by each Format context.
func NewAdapter(r *render.Renderer, tokens render.Tokens, tracer trace.Tracer) *Adapter {
	if r == nil {
		r = render.New(render.Options{Tokens: tokens, Tracer: tracer})
	}
	if tokens == nil {
		tokens = locale.Default()
	}
	return &Adapter{renderer: r, tokens: tokens, tracer: tracer}
}

// Format produces the display text of arg.
func (a *Adapter) Format(ctx context.Context, arg Arg) (Formatted, error) {
	out, err := a.format(arg)
	if err != nil {
		return Formatted{}, err
	}
	tracer := a.tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	trace.Point(tracer, trace.ScopeRender, "diag.arg", out.Text, trace.CurrentSpan(ctx))
	return out, nil
}

// FormatAll formats args in order and stops at the first failure.
func (a *Adapter) FormatAll(ctx context.Context, args ...Arg) ([]Formatted, error) {
	out := make([]Formatted, 0, len(args))
	for i, arg := range args {
		f, err := a.Format(ctx, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (a *Adapter) format(arg Arg) (Formatted, error) {
	switch v := arg.(type) {
	case MessageArg:
		if !v.ID.Valid() {
			return Formatted{}, fmt.Errorf("%w: message id %d", ErrUnknownArg, v.ID)
		}
		return phrase(a.tokens.Token(v.ID)), nil
	case KindArg:
		id, ok := KindMessage(v.Kind, v.Aggregate)
		if !ok {
			return Formatted{}, fmt.Errorf("%w: symbol kind %s", ErrUnknownArg, v.Kind)
		}
		return phrase(a.tokens.Token(id)), nil
	case NameArg:
		return phrase(v.Name), nil
	case TextArg:
		return phrase(v.Text), nil
	case TypeArg:
		return resolvedText(a.renderer.TypeName(v.Type, v.Subst)), nil
	case SymbolArg:
		if v.Signature {
			return resolvedText(a.renderer.Signature(v.Symbol, v.Subst)), nil
		}
		return resolvedText(a.renderer.SymbolName(v.Symbol, v.Subst)), nil
	case BoundSymbolArg:
		return resolvedText(a.renderer.Signature(v.Symbol, resolved.SubstFor(v.Instantiation))), nil
	case BoundMethodArg:
		ctx := resolved.SubstFor(v.Container).WithMethodArgs(v.MethodArgs...)
		return resolvedText(a.renderer.Signature(v.Method, ctx)), nil
	case nil:
		return Formatted{}, fmt.Errorf("%w: nil", ErrUnknownArg)
	default:
		return Formatted{}, fmt.Errorf("%w: %T", ErrUnknownArg, arg)
	}
}

func phrase(text string) Formatted {
	return Formatted{Text: text, Origin: OriginPhrase}
}

func resolvedText(text string) Formatted {
	return Formatted{Text: text, Origin: OriginResolved}
}
