package graphfile

import (
	"fmt"

	"symname/internal/diag"
	"symname/internal/resolved"
)

// CompiledQuery is a query resolved against a graph. Exactly one of Symbol
// and Type is set.
type CompiledQuery struct {
	Name      string
	Symbol    *resolved.Symbol
	Type      *resolved.Type
	Subst     resolved.Subst
	Signature bool
	Expect    *string
}

// Arg returns the diagnostic argument that renders the query.
func (q CompiledQuery) Arg() diag.Arg {
	if q.Symbol != nil {
		return diag.SymbolArg{Symbol: q.Symbol, Subst: q.Subst, Signature: q.Signature}
	}
	return diag.TypeArg{Type: q.Type, Subst: q.Subst}
}

// Label returns the query name used in reports.
func (q CompiledQuery) Label() string { return q.Name }

func (b *builder) compile(q Query) (CompiledQuery, error) {
	label := q.Name
	if label == "" {
		label = q.Symbol + q.Type
	}
	out := CompiledQuery{Name: label, Signature: q.Args, Expect: q.Expect}
	wrap := func(err error) (CompiledQuery, error) {
		return CompiledQuery{}, fmt.Errorf("%s: %w", label, err)
	}

	var sc scope
	if q.Scope != "" {
		s, err := b.symbol(q.Scope)
		if err != nil {
			return wrap(fmt.Errorf("scope: %w", err))
		}
		sc = scopeOf(s)
	}
	switch {
	case q.Symbol != "":
		sym, err := b.symbol(q.Symbol)
		if err != nil {
			return wrap(err)
		}
		out.Symbol = sym
		if q.Scope == "" {
			sc = scopeOf(sym)
		}
	case q.Type != "":
		t, err := b.resolveType(q.Type, sc)
		if err != nil {
			return wrap(err)
		}
		out.Type = t
	default:
		return wrap(fmt.Errorf("%w: query names neither a symbol nor a type", ErrUnresolved))
	}

	if q.In != "" {
		inst, err := b.resolveType(q.In, sc)
		if err != nil {
			return wrap(fmt.Errorf("in: %w", err))
		}
		if inst.Kind != resolved.TypeAggregate {
			return wrap(fmt.Errorf("in: %q is not an aggregate instantiation", q.In))
		}
		out.Subst = resolved.SubstFor(inst)
	}
	if len(q.MethodArgs) > 0 {
		args := make([]*resolved.Type, len(q.MethodArgs))
		for i, src := range q.MethodArgs {
			t, err := b.resolveType(src, sc)
			if err != nil {
				return wrap(fmt.Errorf("method_args[%d]: %w", i, err))
			}
			args[i] = t
		}
		out.Subst = out.Subst.WithMethodArgs(args...)
	}
	return out, nil
}
