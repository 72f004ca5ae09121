package resolved

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// SymbolID identifies a symbol inside the graph arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// NiceNames holds curated display names for well-known declarations.
type NiceNames map[*Symbol]string

// NiceName returns the registered display name of sym.
func (n NiceNames) NiceName(sym *Symbol) (string, bool) {
	if n == nil || sym == nil {
		return "", false
	}
	name, ok := n[sym]
	return name, ok
}

// Graph owns every symbol of a resolved program. Symbols are stored in a
// slice-based arena; index 0 is reserved for NoSymbolID.
type Graph struct {
	root    *Symbol
	symbols []*Symbol
	byPath  map[string][]*Symbol
	nice    NiceNames
}

// NewGraph creates a graph holding only the root namespace.
func NewGraph() *Graph {
	g := &Graph{
		symbols: make([]*Symbol, 1, 64),
		byPath:  make(map[string][]*Symbol, 64),
		nice:    make(NiceNames),
	}
	g.root = &Symbol{Kind: SymbolNamespace, root: true}
	g.add(g.root)
	return g
}

// Root returns the global namespace.
func (g *Graph) Root() *Symbol { return g.root }

// Get returns a symbol or nil for an invalid ID.
func (g *Graph) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(g.symbols) {
		return nil
	}
	return g.symbols[id]
}

// Len reports number of stored symbols excluding the sentinel.
func (g *Graph) Len() int { return len(g.symbols) - 1 }

// Symbols exposes the arena storage without the sentinel.
func (g *Graph) Symbols() []*Symbol {
	if len(g.symbols) <= 1 {
		return nil
	}
	return g.symbols[1:]
}

// Lookup returns every symbol registered under a dotted path, in declaration
// order. Overloads share a path.
func (g *Graph) Lookup(path string) []*Symbol {
	return g.byPath[path]
}

// NiceNames returns the graph's display-name table.
func (g *Graph) NiceNames() NiceNames { return g.nice }

// SetNiceName registers a curated display name for decl.
func (g *Graph) SetNiceName(decl *Symbol, name string) {
	g.nice[decl] = name
}

func (g *Graph) add(sym *Symbol) *Symbol {
	value, err := safecast.Conv[uint32](len(g.symbols))
	if err != nil {
		panic(fmt.Errorf("symbol arena overflow: %w", err))
	}
	sym.id = SymbolID(value)
	g.symbols = append(g.symbols, sym)
	if !sym.root && sym.Kind != SymbolTypeParam && sym.Kind != SymbolLocal {
		path := QualifiedPath(sym)
		g.byPath[path] = append(g.byPath[path], sym)
	}
	return sym
}

// QualifiedPath returns the dotted declaration path of sym without the root
// namespace. It is an index key, not a display name.
func QualifiedPath(sym *Symbol) string {
	var parts []string
	for s := sym; s != nil && !s.root; s = s.Parent {
		parts = append(parts, s.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Namespace returns the namespace at a dotted path, creating missing
// segments. An empty path yields the root.
func (g *Graph) Namespace(path string) *Symbol {
	cur := g.root
	if path == "" {
		return cur
	}
	for seg := range strings.SplitSeq(path, ".") {
		cur = g.childNamespace(cur, seg)
	}
	return cur
}

func (g *Graph) childNamespace(parent *Symbol, name string) *Symbol {
	key := name
	if !parent.root {
		key = QualifiedPath(parent) + "." + name
	}
	for _, s := range g.byPath[key] {
		if s.Kind == SymbolNamespace && s.Parent == parent {
			return s
		}
	}
	return g.add(&Symbol{Kind: SymbolNamespace, Name: name, Parent: parent})
}

// Aggregate declares a class, struct, interface or enum under parent, which
// is a namespace or an enclosing aggregate. Type-parameter ordinals continue
// after those of enclosing aggregates. An empty parameter name declares a
// synthetic parameter.
func (g *Graph) Aggregate(parent *Symbol, kind AggregateKind, name string, typeParams ...string) *Symbol {
	if parent == nil {
		parent = g.root
	}
	sym := g.add(&Symbol{
		Kind:      SymbolAggregate,
		Name:      name,
		Parent:    parent,
		Aggregate: &AggregateDecl{Kind: kind},
	})
	base := inheritedTypeParams(parent)
	sym.Aggregate.TypeParams = g.typeParams(sym, base, false, typeParams)
	return sym
}

func inheritedTypeParams(parent *Symbol) int {
	n := 0
	for p := parent; p != nil && p.Kind == SymbolAggregate; p = p.Parent {
		n += len(p.TypeParams())
	}
	return n
}

func (g *Graph) typeParams(owner *Symbol, base int, methodOwned bool, names []string) []*Symbol {
	if len(names) == 0 {
		return nil
	}
	out := make([]*Symbol, len(names))
	for i, name := range names {
		idx, err := safecast.Conv[uint16](base + i)
		if err != nil {
			panic(fmt.Errorf("type parameter ordinal overflow: %w", err))
		}
		out[i] = g.add(&Symbol{
			Kind:      SymbolTypeParam,
			Name:      name,
			Parent:    owner,
			TypeParam: &TypeParamDecl{Index: idx, MethodOwned: methodOwned},
		})
	}
	return out
}

// Method declares a method of owner with its own type parameters. The caller
// fills in the remaining MethodDecl fields.
func (g *Graph) Method(owner *Symbol, name string, typeParams ...string) *Symbol {
	sym := g.add(&Symbol{
		Kind:   SymbolMethod,
		Name:   name,
		Parent: owner,
		Method: &MethodDecl{Return: voidType},
	})
	sym.Method.TypeParams = g.typeParams(sym, 0, true, typeParams)
	return sym
}

// Constructor declares an instance constructor of owner.
func (g *Graph) Constructor(owner *Symbol, params ...Param) *Symbol {
	sym := g.Method(owner, ".ctor")
	sym.Method.Flags |= MethodConstructor
	sym.Method.Params = params
	return sym
}

// Destructor declares the finalizer of owner.
func (g *Graph) Destructor(owner *Symbol) *Symbol {
	sym := g.Method(owner, "Finalize")
	sym.Method.Flags |= MethodDestructor
	return sym
}

// Operator declares a user-defined operator of owner.
func (g *Graph) Operator(owner *Symbol, op OperatorKind, ret *Type, params ...Param) *Symbol {
	name := "op"
	for n, k := range operatorNames {
		if k == op {
			name = n
			break
		}
	}
	sym := g.Method(owner, name)
	sym.Method.Operator = op
	sym.Method.Return = ret
	sym.Method.Params = params
	return sym
}

// Conversion declares a user-defined conversion operator of owner.
func (g *Graph) Conversion(owner *Symbol, kind ConversionKind, ret *Type, from Param) *Symbol {
	name := "op_Implicit"
	if kind == ConversionExplicit {
		name = "op_Explicit"
	}
	sym := g.Method(owner, name)
	sym.Method.Conversion = kind
	sym.Method.Return = ret
	sym.Method.Params = []Param{from}
	return sym
}

// Property declares a property of owner.
func (g *Graph) Property(owner *Symbol, name string, typ *Type) *Symbol {
	return g.add(&Symbol{
		Kind:     SymbolProperty,
		Name:     name,
		Parent:   owner,
		Type:     typ,
		Property: &PropertyDecl{},
	})
}

// Indexer declares an indexer of owner.
func (g *Graph) Indexer(owner *Symbol, typ *Type, params ...Param) *Symbol {
	sym := g.Property(owner, "Item", typ)
	sym.Property.Indexer = true
	sym.Property.Params = params
	return sym
}

// Field declares a field of owner.
func (g *Graph) Field(owner *Symbol, name string, typ *Type) *Symbol {
	return g.add(&Symbol{Kind: SymbolField, Name: name, Parent: owner, Type: typ})
}

// Event declares an event of owner.
func (g *Graph) Event(owner *Symbol, name string, typ *Type) *Symbol {
	return g.add(&Symbol{Kind: SymbolEvent, Name: name, Parent: owner, Type: typ})
}

// Local declares a local variable inside the method or block owner.
func (g *Graph) Local(owner *Symbol, name string, typ *Type) *Symbol {
	return g.add(&Symbol{Kind: SymbolLocal, Name: name, Parent: owner, Type: typ})
}

// Accessor declares a get/set/add/remove method for a property or event.
func (g *Graph) Accessor(member *Symbol, kind AccessorKind) *Symbol {
	prefix := kind.Suffix() + "_"
	sym := g.Method(member.Parent, prefix+member.Name)
	sym.Method.Accessor = kind
	sym.Method.AccessorOf = member
	if member.Property != nil {
		sym.Method.Params = append([]Param(nil), member.Property.Params...)
	}
	switch kind {
	case AccessorGet:
		sym.Method.Return = member.Type
	case AccessorSet, AccessorAdd, AccessorRemove:
		sym.Method.Params = append(sym.Method.Params, Param{Name: "value", Type: member.Type})
	}
	return sym
}
