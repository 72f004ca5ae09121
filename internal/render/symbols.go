package render

import (
	"strings"

	"symname/internal/locale"
	"symname/internal/resolved"
)

// WriteSymbol renders sym into s. withArgs appends the parameter list of
// methods; indexers always render their parameters.
func (r *Renderer) WriteSymbol(s *Session, sym *resolved.Symbol, ctx resolved.Subst, withArgs bool) {
	if sym == nil {
		fatalf(ErrUnknownKind, "nil symbol")
	}
	switch sym.Kind {
	case resolved.SymbolNamespace:
		if sym.IsRoot() {
			s.WriteString(r.token(locale.MsgGlobalNamespace))
			return
		}
		r.qualify(s, sym, ctx)
		s.WriteString(sym.Name)
	case resolved.SymbolAggregate:
		r.writeAggregateDecl(s, sym, ctx)
	case resolved.SymbolField:
		r.qualify(s, sym, ctx)
		s.WriteString(sym.Name)
	case resolved.SymbolLocal:
		s.WriteString(sym.Name)
	case resolved.SymbolTypeParam:
		if sym.TypeParam == nil {
			fatalf(ErrMissingPayload, "type parameter %q", sym.Name)
		}
		writeTypeParam(s, sym.Name, sym.TypeParam.Index, sym.TypeParam.MethodOwned)
	case resolved.SymbolMethod:
		r.writeMethod(s, sym, ctx, withArgs)
	case resolved.SymbolProperty:
		r.writeProperty(s, sym, ctx)
	case resolved.SymbolEvent:
		// events render as empty text
	default:
		fatalf(ErrUnknownKind, "symbol kind %s", sym.Kind)
	}
}

// qualify writes the parent of sym followed by a dot. The root namespace is
// never written. A generic aggregate parent is rendered as its own
// instantiation substituted through ctx when ctx replaces type parameters.
func (r *Renderer) qualify(s *Session, sym *resolved.Symbol, ctx resolved.Subst) {
	parent := sym.Parent
	if parent == nil || parent.IsRoot() {
		return
	}
	if parent.Kind == resolved.SymbolAggregate && len(parent.TypeParams()) > 0 && ctx.HasTypeArgs() {
		r.WriteType(s, parent.SelfType(), ctx)
		s.WriteString(".")
		return
	}
	r.WriteSymbol(s, parent, ctx, false)
	s.WriteString(".")
}

func (r *Renderer) writeAggregateDecl(s *Session, sym *resolved.Symbol, ctx resolved.Subst) {
	if nice, ok := r.nice.NiceName(sym); ok {
		s.WriteString(nice)
		return
	}
	r.qualify(s, sym, ctx)
	s.WriteString(sym.Name)
	params := sym.TypeParams()
	if len(params) == 0 || !ctx.HasTypeArgs() {
		writeTypeParamList(s, params)
		return
	}
	// parameters the context does not cover keep their declared names
	s.WriteString("<")
	for i, p := range params {
		if i > 0 {
			s.WriteString(",")
		}
		r.WriteType(s, p.ParamType(), ctx)
	}
	s.WriteString(">")
}

func writeTypeParamList(s *Session, params []*resolved.Symbol) {
	if len(params) == 0 {
		return
	}
	s.WriteString("<")
	for i, p := range params {
		if i > 0 {
			s.WriteString(",")
		}
		var index uint16
		var methodOwned bool
		if p.TypeParam != nil {
			index, methodOwned = p.TypeParam.Index, p.TypeParam.MethodOwned
		}
		writeTypeParam(s, p.Name, index, methodOwned)
	}
	s.WriteString(">")
}

func (r *Renderer) writeMethod(s *Session, sym *resolved.Symbol, ctx resolved.Subst, withArgs bool) {
	m := sym.Method
	if m == nil {
		fatalf(ErrMissingPayload, "method %q", sym.Name)
	}

	if m.Explicit != nil {
		r.writeExplicitMethod(s, sym, ctx, withArgs)
		return
	}
	if m.Accessor != resolved.AccessorNone && m.AccessorOf != nil {
		r.writeAccessorOwner(s, m.AccessorOf, ctx)
		s.WriteString(".")
		s.WriteString(m.Accessor.Suffix())
		return
	}

	r.qualify(s, sym, ctx)
	ownTypeParams := true
	switch {
	case m.Flags&resolved.MethodConstructor != 0:
		s.WriteString(ownerName(sym))
		ownTypeParams = false
	case m.Flags&resolved.MethodDestructor != 0:
		s.WriteString("~")
		s.WriteString(ownerName(sym))
	case m.Conversion == resolved.ConversionImplicit:
		s.WriteString("implicit operator ")
		r.WriteType(s, m.Return, ctx)
	case m.Conversion == resolved.ConversionExplicit:
		s.WriteString("explicit operator ")
		r.WriteType(s, m.Return, ctx)
	case m.Operator != resolved.OpNone:
		text, ok := OperatorText(m.Operator)
		if !ok {
			fatalf(ErrUnknownKind, "operator kind %d", m.Operator)
		}
		s.WriteString("operator ")
		s.WriteString(text)
	default:
		s.WriteString(sym.Name)
	}
	if ownTypeParams {
		r.writeMethodTypeArgs(s, m, ctx)
	}
	if withArgs {
		r.writeArgList(s, m, ctx)
	}
}

func ownerName(sym *resolved.Symbol) string {
	if owner := sym.Owner(); owner != nil {
		return owner.Name
	}
	return sym.Name
}

// writeMethodTypeArgs writes the method's own type parameters, or their
// replacements when ctx carries method-level arguments.
func (r *Renderer) writeMethodTypeArgs(s *Session, m *resolved.MethodDecl, ctx resolved.Subst) {
	if len(m.TypeParams) == 0 {
		return
	}
	if !ctx.HasMethodArgs() {
		writeTypeParamList(s, m.TypeParams)
		return
	}
	s.WriteString("<")
	for i, p := range m.TypeParams {
		if i > 0 {
			s.WriteString(",")
		}
		r.WriteType(s, p.ParamType(), ctx)
	}
	s.WriteString(">")
}

// writeArgList writes "(T1, T2, params T3[], ...)". An uncompletable
// signature renders as "()".
func (r *Renderer) writeArgList(s *Session, m *resolved.MethodDecl, ctx resolved.Subst) {
	s.WriteString("(")
	if m.Completable() {
		last := len(m.Params) - 1
		for i, p := range m.Params {
			if i > 0 {
				s.WriteString(", ")
			}
			if i == last && m.Flags&resolved.MethodParamArray != 0 {
				s.WriteString("params ")
			}
			r.WriteType(s, p.Type, ctx)
		}
		if m.Flags&resolved.MethodVarargs != 0 {
			if len(m.Params) > 0 {
				s.WriteString(", ")
			}
			s.WriteString("...")
		}
	}
	s.WriteString(")")
}

// writeExplicitMethod renders an explicit interface implementation under the
// interface member's name: the implementer's parent, then the interface
// member rendered in terms of the substituted interface instantiation. With
// no resolved member, the substituted interface type and the method's own
// simple name stand in for it.
func (r *Renderer) writeExplicitMethod(s *Session, sym *resolved.Symbol, ctx resolved.Subst, withArgs bool) {
	m := sym.Method
	r.qualify(s, sym, ctx)
	iface := ctx.Apply(m.Explicit.Interface)
	member := m.Explicit.Member
	if member == nil {
		r.WriteType(s, iface, resolved.NoSubst)
		s.WriteString(".")
		s.WriteString(memberName(sym.Name))
		if withArgs {
			r.writeArgList(s, m, ctx)
		}
		return
	}
	inner := resolved.SubstFor(iface).WithMethodArgs(ctx.MethodArgs()...)
	r.WriteSymbol(s, member, inner, withArgs)
}

// memberName strips the interface qualification metadata names carry, as in
// "N.IRun<System.Int32>.Run".
func memberName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return name
}

// writeAccessorOwner renders the property or event an accessor belongs to,
// qualified by its parent.
func (r *Renderer) writeAccessorOwner(s *Session, owner *resolved.Symbol, ctx resolved.Subst) {
	switch owner.Kind {
	case resolved.SymbolProperty:
		r.writeProperty(s, owner, ctx)
	case resolved.SymbolEvent:
		r.qualify(s, owner, ctx)
		s.WriteString(owner.Name)
	default:
		r.WriteSymbol(s, owner, ctx, false)
	}
}

func (r *Renderer) writeProperty(s *Session, sym *resolved.Symbol, ctx resolved.Subst) {
	p := sym.Property
	if p == nil {
		fatalf(ErrMissingPayload, "property %q", sym.Name)
	}
	r.qualify(s, sym, ctx)
	if p.Explicit != nil {
		if member := p.Explicit.Member; member != nil {
			iface := ctx.Apply(p.Explicit.Interface)
			r.WriteSymbol(s, member, resolved.SubstFor(iface), false)
			return
		}
		s.WriteString(p.Synthetic)
		if p.Indexer {
			s.WriteString(".")
			r.writeIndexer(s, p, ctx)
		}
		return
	}
	if p.Indexer {
		r.writeIndexer(s, p, ctx)
		return
	}
	s.WriteString(sym.Name)
}

func (r *Renderer) writeIndexer(s *Session, p *resolved.PropertyDecl, ctx resolved.Subst) {
	s.WriteString("this[")
	for i, param := range p.Params {
		if i > 0 {
			s.WriteString(", ")
		}
		r.WriteType(s, param.Type, ctx)
	}
	s.WriteString("]")
}
