package render

import (
	"strconv"
	"strings"

	"symname/internal/locale"
	"symname/internal/resolved"
)

// WriteType renders t into s. A non-trivial ctx is applied once to the whole
// type; children are rendered from the substituted tree without it, so
// replacement types are never substituted again.
func (r *Renderer) WriteType(s *Session, t *resolved.Type, ctx resolved.Subst) {
	if !ctx.IsNoOp() {
		t = ctx.Apply(t)
	}
	r.writeType(s, t)
}

func (r *Renderer) writeType(s *Session, t *resolved.Type) {
	if t == nil {
		fatalf(ErrUnknownKind, "nil type")
	}
	switch t.Kind {
	case resolved.TypeAggregate:
		r.writeAggregateType(s, t)
	case resolved.TypeParam:
		writeTypeParam(s, t.Name, t.Index, t.MethodOwned)
	case resolved.TypeError:
		r.writeErrorType(s, t.Error)
	case resolved.TypeNull:
		s.WriteString(r.token(locale.MsgNull))
	case resolved.TypeVoid:
		s.WriteString(r.token(locale.MsgVoid))
	case resolved.TypeBoundLambda:
		s.WriteString(r.token(locale.MsgAnonymousMethod))
	case resolved.TypeUnboundLambda:
		s.WriteString(r.token(locale.MsgLambda))
	case resolved.TypeMethodGroup:
		s.WriteString(r.token(locale.MsgMethodGroup))
	case resolved.TypeArgList:
		s.WriteString(r.token(locale.MsgArgList))
	case resolved.TypePlaceholder:
		// unresolved generic hole
	case resolved.TypeArray:
		r.writeArray(s, t)
	case resolved.TypeModifier:
		if t.Mod == resolved.ModOut {
			s.WriteString("out ")
		} else {
			s.WriteString("ref ")
		}
		r.writeType(s, t.Elem)
	case resolved.TypePointer:
		r.writeType(s, t.Elem)
		s.WriteString("*")
	case resolved.TypeNullable:
		r.writeType(s, t.Elem)
		s.WriteString("?")
	default:
		fatalf(ErrUnknownKind, "type kind %s", t.Kind)
	}
}

func (r *Renderer) writeAggregateType(s *Session, t *resolved.Type) {
	decl := t.Decl
	if decl == nil || decl.Kind != resolved.SymbolAggregate {
		fatalf(ErrUnknownKind, "aggregate type without aggregate declaration")
	}
	if nice, ok := r.nice.NiceName(decl); ok {
		s.WriteString(nice)
		return
	}
	if t.Outer != nil {
		r.writeType(s, t.Outer)
		s.WriteString(".")
	} else {
		r.qualify(s, decl, resolved.NoSubst)
	}
	s.WriteString(decl.Name)
	r.writeTypeList(s, t.Args)
}

func (r *Renderer) writeTypeList(s *Session, args []*resolved.Type) {
	if len(args) == 0 {
		return
	}
	s.WriteString("<")
	for i, arg := range args {
		if i > 0 {
			s.WriteString(",")
		}
		r.writeType(s, arg)
	}
	s.WriteString(">")
}

// writeArray renders the innermost element once, followed by one bracket
// pair per array layer from the outermost layer inward.
func (r *Renderer) writeArray(s *Session, t *resolved.Type) {
	r.writeType(s, t.ElementOf())
	for layer := t; layer != nil && layer.Kind == resolved.TypeArray; layer = layer.Elem {
		s.WriteString(rankSuffix(layer))
	}
}

func rankSuffix(t *resolved.Type) string {
	switch {
	case t.Rank <= 1 && t.Vector:
		return "[]"
	case t.Rank <= 1:
		return "[*]"
	default:
		return "[" + strings.Repeat(",", int(t.Rank)-1) + "]"
	}
}

func (r *Renderer) writeErrorType(s *Session, info *resolved.ErrorInfo) {
	if !info.HasParent() {
		if info != nil && len(info.Args) > 0 {
			fatalf(ErrErrorTypeArgs, "error type %q", info.Name)
		}
		s.WriteString(r.token(locale.MsgError))
		return
	}
	if info.ParentType != nil {
		r.writeType(s, info.ParentType)
		s.WriteString(".")
	} else if !info.ParentSym.IsRoot() {
		r.WriteSymbol(s, info.ParentSym, resolved.NoSubst, false)
		s.WriteString(".")
	}
	s.WriteString(info.Name)
	r.writeTypeList(s, info.Args)
}

// writeTypeParam renders a named parameter by name and a synthetic one by
// ordinal: "!0" for type-owned, "!!0" for method-owned.
func writeTypeParam(s *Session, name string, index uint16, methodOwned bool) {
	if name != "" {
		s.WriteString(name)
		return
	}
	if methodOwned {
		s.WriteString("!!")
	} else {
		s.WriteString("!")
	}
	s.WriteString(strconv.FormatUint(uint64(index), 10))
}
