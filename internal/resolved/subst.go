package resolved

// Subst maps type-parameter ordinals to replacement types. Type-level and
// method-level parameters are kept in separate lists. A Subst is an immutable
// value; the zero value is the no-op substitution.
type Subst struct {
	typeArgs   []*Type
	methodArgs []*Type
}

// NoSubst is the empty substitution.
var NoSubst Subst

// NewSubst builds a substitution from replacement lists in ordinal order.
func NewSubst(typeArgs, methodArgs []*Type) Subst {
	return Subst{typeArgs: cloneTypes(typeArgs), methodArgs: cloneTypes(methodArgs)}
}

// SubstFor returns the type-level substitution described by an aggregate
// instantiation. Enclosing instantiations contribute their arguments first,
// matching the ordinal numbering of nested declarations.
func SubstFor(inst *Type) Subst {
	if inst == nil || inst.Kind != TypeAggregate {
		return NoSubst
	}
	var chain []*Type
	for t := inst; t != nil && t.Kind == TypeAggregate; t = t.Outer {
		chain = append(chain, t)
	}
	var args []*Type
	for i := len(chain) - 1; i >= 0; i-- {
		args = append(args, chain[i].Args...)
	}
	return Subst{typeArgs: args}
}

// IsNoOp reports whether applying s can never change a type.
func (s Subst) IsNoOp() bool {
	return len(s.typeArgs) == 0 && len(s.methodArgs) == 0
}

// HasTypeArgs reports whether s replaces type-level parameters.
func (s Subst) HasTypeArgs() bool { return len(s.typeArgs) > 0 }

// HasMethodArgs reports whether s replaces method-level parameters.
func (s Subst) HasMethodArgs() bool { return len(s.methodArgs) > 0 }

// TypeArgs returns a copy of the type-level replacements.
func (s Subst) TypeArgs() []*Type { return cloneTypes(s.typeArgs) }

// MethodArgs returns a copy of the method-level replacements.
func (s Subst) MethodArgs() []*Type { return cloneTypes(s.methodArgs) }

// WithMethodArgs returns s with its method-level replacements replaced.
func (s Subst) WithMethodArgs(args ...*Type) Subst {
	return Subst{typeArgs: s.typeArgs, methodArgs: cloneTypes(args)}
}

// WithoutMethodArgs returns s restricted to type-level replacements.
func (s Subst) WithoutMethodArgs() Subst {
	return Subst{typeArgs: s.typeArgs}
}

// Lookup returns the replacement registered for a parameter ordinal.
func (s Subst) Lookup(index uint16, methodOwned bool) (*Type, bool) {
	list := s.typeArgs
	if methodOwned {
		list = s.methodArgs
	}
	if int(index) >= len(list) || list[index] == nil {
		return nil, false
	}
	return list[index], true
}

// Compose returns the substitution equivalent to applying s and then outer.
func (s Subst) Compose(outer Subst) Subst {
	if outer.IsNoOp() {
		return s
	}
	if s.IsNoOp() {
		return outer
	}
	return Subst{
		typeArgs:   composeList(s.typeArgs, outer, outer.typeArgs),
		methodArgs: composeList(s.methodArgs, outer, outer.methodArgs),
	}
}

func composeList(inner []*Type, outer Subst, outerList []*Type) []*Type {
	n := max(len(inner), len(outerList))
	if n == 0 {
		return nil
	}
	out := make([]*Type, n)
	for i := range out {
		if i < len(inner) {
			out[i] = outer.Apply(inner[i])
			continue
		}
		out[i] = outerList[i]
	}
	return out
}

// Apply replaces every type-parameter occurrence in t. Replacement types are
// inserted as-is and never substituted again. Unchanged subtrees are shared
// with the input, so Apply returns t itself when nothing was replaced.
func (s Subst) Apply(t *Type) *Type {
	if t == nil || s.IsNoOp() {
		return t
	}
	switch t.Kind {
	case TypeParam:
		if repl, ok := s.Lookup(t.Index, t.MethodOwned); ok {
			return repl
		}
		return t
	case TypeAggregate:
		outer := s.Apply(t.Outer)
		args, changed := s.applyList(t.Args)
		if !changed && outer == t.Outer {
			return t
		}
		return &Type{Kind: TypeAggregate, Decl: t.Decl, Outer: outer, Args: args}
	case TypeArray, TypePointer, TypeNullable, TypeModifier:
		elem := s.Apply(t.Elem)
		if elem == t.Elem {
			return t
		}
		cp := *t
		cp.Elem = elem
		return &cp
	case TypeError:
		if t.Error == nil {
			return t
		}
		parent := s.Apply(t.Error.ParentType)
		args, changed := s.applyList(t.Error.Args)
		if !changed && parent == t.Error.ParentType {
			return t
		}
		info := *t.Error
		info.ParentType = parent
		info.Args = args
		return &Type{Kind: TypeError, Error: &info}
	default:
		return t
	}
}

func (s Subst) applyList(ts []*Type) ([]*Type, bool) {
	changed := false
	var out []*Type
	for i, t := range ts {
		n := s.Apply(t)
		if n != t && !changed {
			changed = true
			out = make([]*Type, len(ts))
			copy(out, ts[:i])
		}
		if changed {
			out[i] = n
		}
	}
	if !changed {
		return ts, false
	}
	return out, true
}
