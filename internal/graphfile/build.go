package graphfile

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"symname/internal/resolved"
)

var (
	// ErrUnresolved reports a reference to a declaration missing from the graph.
	ErrUnresolved = errors.New("unresolved reference")
	// ErrArity reports a type argument count that does not match the declaration.
	ErrArity = errors.New("type argument count mismatch")
)

// GlobalNamespace is the symbol path naming the root namespace.
const GlobalNamespace = "global::"

// Program is a graph built from a Document together with its compiled
// queries.
type Program struct {
	Graph   *resolved.Graph
	Queries []CompiledQuery

	b *builder
}

// Compile resolves an additional query against the program's graph.
func (p *Program) Compile(q Query) (CompiledQuery, error) {
	return p.b.compile(q)
}

// Build validates doc and constructs its graph. Aggregates are declared
// first, outermost types before nested ones, so member signatures may refer
// to any type in the document. Explicit implementation slots are resolved
// last, once every interface member exists.
func Build(doc *Document) (*Program, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	b := &builder{
		doc:    doc,
		g:      resolved.NewGraph(),
		nice:   make(map[string]*resolved.Symbol),
		types:  make(map[string]*resolved.Symbol, len(doc.Types)),
		locals: make(map[*resolved.Symbol][]*resolved.Symbol),
	}
	for _, ns := range doc.Namespaces {
		b.g.Namespace(ns)
	}
	if err := b.declareTypes(); err != nil {
		return nil, err
	}
	if err := b.declareMembers(); err != nil {
		return nil, err
	}
	if err := b.resolveExplicit(); err != nil {
		return nil, err
	}
	if err := b.declareLocals(); err != nil {
		return nil, err
	}
	prog := &Program{Graph: b.g, b: b}
	for i, q := range doc.Queries {
		cq, err := b.compile(q)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		prog.Queries = append(prog.Queries, cq)
	}
	return prog, nil
}

type builder struct {
	doc     *Document
	g       *resolved.Graph
	nice    map[string]*resolved.Symbol
	types   map[string]*resolved.Symbol
	locals  map[*resolved.Symbol][]*resolved.Symbol
	pending []pendingExplicit
}

type pendingExplicit struct {
	sym       *resolved.Symbol
	ref       string
	synthetic string
	sc        scope
}

var aggregateKindByName = map[string]resolved.AggregateKind{
	"":          resolved.AggregateClass,
	"class":     resolved.AggregateClass,
	"struct":    resolved.AggregateStruct,
	"interface": resolved.AggregateInterface,
	"enum":      resolved.AggregateEnum,
}

func (b *builder) declareTypes() error {
	order := make([]int, len(b.doc.Types))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(strings.Count(b.doc.Types[x].Path, "+"), strings.Count(b.doc.Types[y].Path, "+"))
	})
	for _, i := range order {
		decl := &b.doc.Types[i]
		var parent *resolved.Symbol
		var name string
		if outer, inner, ok := cutLast(decl.Path, "+"); ok {
			parent = b.types[outer]
			if parent == nil {
				return fmt.Errorf("type %q: %w: enclosing type %q", decl.Path, ErrUnresolved, outer)
			}
			name = inner
		} else if ns, simple, ok := cutLast(decl.Path, "."); ok {
			parent, name = b.g.Namespace(ns), simple
		} else {
			parent, name = b.g.Root(), decl.Path
		}
		sym := b.g.Aggregate(parent, aggregateKindByName[decl.Kind], name, decl.TypeParams...)
		if decl.Nice != "" {
			b.g.SetNiceName(sym, decl.Nice)
			b.nice[decl.Nice] = sym
		}
		b.types[decl.Path] = sym
	}
	return nil
}

func (b *builder) declareMembers() error {
	for i := range b.doc.Types {
		decl := &b.doc.Types[i]
		owner := b.types[decl.Path]
		sc := scope{agg: owner}
		for _, m := range decl.Methods {
			if err := b.declareMethod(owner, m); err != nil {
				return fmt.Errorf("type %q: method %q: %w", decl.Path, m.Name, err)
			}
		}
		for _, p := range decl.Properties {
			if err := b.declareProperty(owner, p, sc); err != nil {
				return fmt.Errorf("type %q: property %q: %w", decl.Path, p.Name, err)
			}
		}
		for _, f := range decl.Fields {
			typ, err := b.resolveType(f.Type, sc)
			if err != nil {
				return fmt.Errorf("type %q: field %q: %w", decl.Path, f.Name, err)
			}
			b.g.Field(owner, f.Name, typ)
		}
		for _, e := range decl.Events {
			typ, err := b.resolveType(e.Type, sc)
			if err != nil {
				return fmt.Errorf("type %q: event %q: %w", decl.Path, e.Name, err)
			}
			ev := b.g.Event(owner, e.Name, typ)
			for _, acc := range e.Accessors {
				kind := resolved.AccessorAdd
				if acc == "remove" {
					kind = resolved.AccessorRemove
				}
				b.g.Accessor(ev, kind)
			}
		}
	}
	return nil
}

func (b *builder) declareMethod(owner *resolved.Symbol, m MethodDecl) error {
	var sym *resolved.Symbol
	switch {
	case m.Kind == "constructor" || m.Kind == "" && m.Name == ".ctor":
		sym = b.g.Constructor(owner)
	case m.Kind == "destructor":
		sym = b.g.Destructor(owner)
	default:
		sym = b.g.Method(owner, m.Name, m.TypeParams...)
		if op, ok := resolved.OperatorByName(m.Name); ok {
			sym.Method.Operator = op
		} else if conv, ok := resolved.ConversionByName(m.Name); ok {
			sym.Method.Conversion = conv
		}
	}
	sc := scope{method: sym, agg: owner}
	params, flags, err := b.resolveParams(m.Params, sc, true)
	if err != nil {
		return err
	}
	sym.Method.Params = params
	sym.Method.Flags |= flags
	if m.Broken {
		sym.Method.Flags |= resolved.MethodBroken
	}
	if m.Returns != "" {
		ret, err := b.resolveType(m.Returns, sc)
		if err != nil {
			return fmt.Errorf("returns: %w", err)
		}
		sym.Method.Return = ret
	}
	if m.Explicit != "" {
		b.pending = append(b.pending, pendingExplicit{sym: sym, ref: m.Explicit, sc: sc})
	}
	return nil
}

func (b *builder) declareProperty(owner *resolved.Symbol, p PropertyDecl, sc scope) error {
	typ, err := b.resolveType(p.Type, sc)
	if err != nil {
		return err
	}
	var sym *resolved.Symbol
	if p.Indexer {
		params, _, err := b.resolveParams(p.Params, sc, false)
		if err != nil {
			return err
		}
		sym = b.g.Indexer(owner, typ, params...)
	} else {
		sym = b.g.Property(owner, p.Name, typ)
	}
	if p.Explicit != "" {
		b.pending = append(b.pending, pendingExplicit{sym: sym, ref: p.Explicit, synthetic: p.Synthetic, sc: sc})
	}
	for _, acc := range p.Accessors {
		kind := resolved.AccessorGet
		if acc == "set" {
			kind = resolved.AccessorSet
		}
		b.g.Accessor(sym, kind)
	}
	return nil
}

// resolveParams resolves parameter entries. With markers set, a "params "
// prefix on the last entry and a trailing "..." entry become method flags.
func (b *builder) resolveParams(list []string, sc scope, markers bool) ([]resolved.Param, resolved.MethodFlags, error) {
	var flags resolved.MethodFlags
	params := make([]resolved.Param, 0, len(list))
	for i, src := range list {
		last := i == len(list)-1
		src = strings.TrimSpace(src)
		if markers && last && src == "..." {
			flags |= resolved.MethodVarargs
			continue
		}
		if markers && last {
			if rest, ok := strings.CutPrefix(src, "params "); ok {
				flags |= resolved.MethodParamArray
				src = rest
			}
		}
		if src == "" {
			params = append(params, resolved.Param{})
			continue
		}
		typ, err := b.resolveType(src, sc)
		if err != nil {
			return nil, 0, fmt.Errorf("parameter %d: %w", i, err)
		}
		params = append(params, resolved.Param{Type: typ})
	}
	return params, flags, nil
}

func (b *builder) resolveExplicit() error {
	for _, pe := range b.pending {
		iface, err := b.resolveType(pe.ref, pe.sc)
		if err != nil {
			return fmt.Errorf("%s: explicit %q: %w", resolved.QualifiedPath(pe.sym), pe.ref, err)
		}
		impl := &resolved.ExplicitImpl{Interface: iface, Member: b.interfaceMember(iface, pe.sym)}
		if pe.sym.Method != nil {
			pe.sym.Method.Explicit = impl
			continue
		}
		pe.sym.Property.Explicit = impl
		if impl.Member == nil {
			pe.sym.Property.Synthetic = pe.synthetic
			if pe.synthetic == "" {
				pe.sym.Property.Synthetic = pe.ref
				if !pe.sym.Property.Indexer {
					pe.sym.Property.Synthetic += "." + pe.sym.Name
				}
			}
		}
	}
	return nil
}

// interfaceMember finds the member of iface implemented by sym: same name,
// kind and parameter count.
func (b *builder) interfaceMember(iface *resolved.Type, sym *resolved.Symbol) *resolved.Symbol {
	if iface == nil || iface.Kind != resolved.TypeAggregate {
		return nil
	}
	for _, cand := range b.g.Lookup(resolved.QualifiedPath(iface.Decl) + "." + sym.Name) {
		if cand.Kind != sym.Kind {
			continue
		}
		switch {
		case sym.Method != nil:
			if len(cand.Method.Params) == len(sym.Method.Params) && len(cand.Method.TypeParams) == len(sym.Method.TypeParams) {
				return cand
			}
		case sym.Property != nil:
			if cand.Property.Indexer == sym.Property.Indexer && len(cand.Property.Params) == len(sym.Property.Params) {
				return cand
			}
		}
	}
	return nil
}

func (b *builder) declareLocals() error {
	for _, l := range b.doc.Locals {
		owner, err := b.symbol(l.In)
		if err != nil {
			return fmt.Errorf("local %q: %w", l.Name, err)
		}
		if owner.Kind != resolved.SymbolMethod {
			return fmt.Errorf("local %q: %q is a %s, not a method", l.Name, l.In, owner.Kind)
		}
		typ, err := b.resolveType(l.Type, scopeOf(owner))
		if err != nil {
			return fmt.Errorf("local %q: %w", l.Name, err)
		}
		b.locals[owner] = append(b.locals[owner], b.g.Local(owner, l.Name, typ))
	}
	return nil
}

// symbol resolves a query symbol path.
func (b *builder) symbol(path string) (*resolved.Symbol, error) {
	path = strings.TrimSpace(path)
	if path == GlobalNamespace {
		return b.g.Root(), nil
	}
	if method, local, ok := strings.Cut(path, "/"); ok {
		owner, err := b.symbol(method)
		if err != nil {
			return nil, err
		}
		for _, l := range b.locals[owner] {
			if l.Name == local {
				return l, nil
			}
		}
		return nil, fmt.Errorf("%w: local %q of %q", ErrUnresolved, local, method)
	}

	base, index := path, 0
	if head, n, ok := cutLast(path, "#"); ok {
		i, err := strconv.Atoi(n)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("%w: bad overload index in %q", ErrSyntax, path)
		}
		base, index = head, i
	}
	found := b.g.Lookup(base)
	if len(found) == 0 {
		if owner, name, ok := cutLast(base, "."); ok {
			for _, cand := range b.g.Lookup(owner) {
				for _, tp := range cand.TypeParams() {
					if tp.Name == name {
						return tp, nil
					}
				}
			}
		}
		return nil, fmt.Errorf("%w: symbol %q", ErrUnresolved, path)
	}
	if index >= len(found) {
		return nil, fmt.Errorf("%w: symbol %q: only %d declarations", ErrUnresolved, path, len(found))
	}
	return found[index], nil
}

// scope is the lexical position a type reference is resolved from.
type scope struct {
	method *resolved.Symbol
	agg    *resolved.Symbol
}

func scopeOf(sym *resolved.Symbol) scope {
	switch {
	case sym == nil:
		return scope{}
	case sym.Kind == resolved.SymbolMethod:
		return scope{method: sym, agg: sym.Owner()}
	case sym.Kind == resolved.SymbolAggregate:
		return scope{agg: sym}
	case sym.Kind == resolved.SymbolNamespace:
		return scope{agg: sym}
	default:
		return scope{agg: sym.Owner()}
	}
}

// param finds a named type parameter, innermost declaration first.
func (sc scope) param(name string) *resolved.Symbol {
	if name == "" {
		return nil
	}
	if sc.method != nil {
		for _, tp := range sc.method.Method.TypeParams {
			if tp.Name == name {
				return tp
			}
		}
	}
	for a := sc.agg; a != nil && a.Kind == resolved.SymbolAggregate; a = a.Parent {
		for _, tp := range a.TypeParams() {
			if tp.Name == name {
				return tp
			}
		}
	}
	return nil
}

func (sc scope) within(decl *resolved.Symbol) bool {
	for a := sc.agg; a != nil; a = a.Parent {
		if a == decl {
			return true
		}
	}
	return false
}

func (b *builder) resolveType(src string, sc scope) (*resolved.Type, error) {
	ref, err := parseTypeRef(src)
	if err != nil {
		return nil, err
	}
	return b.typeFromRef(ref, sc)
}

func (b *builder) typeFromRef(ref *typeRef, sc scope) (*resolved.Type, error) {
	var base *resolved.Type
	switch ref.kind {
	case refKeyword:
		base = ref.keyword
	case refParam:
		base = resolved.MakeTypeParam(ref.index, ref.method, "")
	default:
		var err error
		if base, err = b.named(ref, sc); err != nil {
			return nil, err
		}
	}
	return ref.wrap(base), nil
}

func (b *builder) named(ref *typeRef, sc scope) (*resolved.Type, error) {
	segs := ref.segments
	if len(segs) == 1 {
		if len(segs[0].args) == 0 {
			if tp := sc.param(segs[0].name); tp != nil {
				return tp.ParamType(), nil
			}
		}
		if decl, ok := b.nice[segs[0].name]; ok {
			return b.instantiate(decl, segs, sc)
		}
	}
	if decl := b.aggregate(ref.path(), sc); decl != nil {
		return b.instantiate(decl, segs, sc)
	}
	return b.errorType(ref, sc)
}

// aggregate finds an aggregate declaration by path, searching the enclosing
// declarations of sc first, then the global namespace, then the document's
// using list.
func (b *builder) aggregate(path string, sc scope) *resolved.Symbol {
	var candidates []string
	for s := sc.agg; s != nil && !s.IsRoot(); s = s.Parent {
		candidates = append(candidates, resolved.QualifiedPath(s)+"."+path)
	}
	candidates = append(candidates, path)
	for _, u := range b.doc.Using {
		candidates = append(candidates, u+"."+path)
	}
	for _, c := range candidates {
		for _, sym := range b.g.Lookup(c) {
			if sym.Kind == resolved.SymbolAggregate {
				return sym
			}
		}
	}
	return nil
}

func (b *builder) namespace(path string) *resolved.Symbol {
	for _, sym := range b.g.Lookup(path) {
		if sym.Kind == resolved.SymbolNamespace {
			return sym
		}
	}
	return nil
}

// instantiate builds the type of decl from the written segments, which align
// with the tail of decl's aggregate nesting chain. An enclosing generic
// aggregate without written arguments is taken in its open form when the
// reference occurs inside it.
func (b *builder) instantiate(decl *resolved.Symbol, segs []refSegment, sc scope) (*resolved.Type, error) {
	if len(segs) == 0 && sc.within(decl) {
		return decl.SelfType(), nil
	}
	var outer *resolved.Type
	if p := decl.Parent; p != nil && p.Kind == resolved.SymbolAggregate {
		var outerSegs []refSegment
		if len(segs) > 1 {
			outerSegs = segs[:len(segs)-1]
		}
		var err error
		if outer, err = b.instantiate(p, outerSegs, sc); err != nil {
			return nil, err
		}
	}
	var written []*typeRef
	if len(segs) > 0 {
		written = segs[len(segs)-1].args
	}
	own := decl.Aggregate.TypeParams
	if len(written) != len(own) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, resolved.QualifiedPath(decl), len(own), len(written))
	}
	args, err := b.typeList(written, sc)
	if err != nil {
		return nil, err
	}
	return resolved.MakeAggregate(decl, outer, args...), nil
}

func (b *builder) typeList(refs []*typeRef, sc scope) ([]*resolved.Type, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]*resolved.Type, len(refs))
	for i, r := range refs {
		t, err := b.typeFromRef(r, sc)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// errorType builds an Error type for an unresolvable name. The longest
// resolvable prefix becomes the parent.
func (b *builder) errorType(ref *typeRef, sc scope) (*resolved.Type, error) {
	segs := ref.segments
	args, err := b.typeList(segs[len(segs)-1].args, sc)
	if err != nil {
		return nil, err
	}
	for k := len(segs) - 1; k >= 1; k-- {
		prefix := &typeRef{segments: segs[:k]}
		rest := segs[k:]
		if hasInnerArgs(rest) {
			continue
		}
		name := (&typeRef{segments: rest}).path()
		if decl := b.aggregate(prefix.path(), sc); decl != nil {
			parent, err := b.instantiate(decl, prefix.segments, sc)
			if err != nil {
				return nil, err
			}
			return resolved.MakeError(resolved.ErrorInfo{ParentType: parent, Name: name, Args: args}), nil
		}
		if ns := b.namespace(prefix.path()); ns != nil {
			return resolved.MakeError(resolved.ErrorInfo{ParentSym: ns, Name: name, Args: args}), nil
		}
	}
	if hasInnerArgs(segs) {
		return nil, fmt.Errorf("%w: type arguments on unresolved segment of %q", ErrUnresolved, ref.path())
	}
	return resolved.MakeError(resolved.ErrorInfo{ParentSym: b.g.Root(), Name: ref.path(), Args: args}), nil
}

// hasInnerArgs reports whether any segment but the last carries arguments.
func hasInnerArgs(segs []refSegment) bool {
	for _, s := range segs[:len(segs)-1] {
		if len(s.args) > 0 {
			return true
		}
	}
	return false
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
