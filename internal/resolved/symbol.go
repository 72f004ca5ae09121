package resolved

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolNamespace
	SymbolAggregate
	SymbolMethod
	SymbolProperty
	SymbolField
	SymbolEvent
	SymbolTypeParam
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolAggregate:
		return "aggregate"
	case SymbolMethod:
		return "method"
	case SymbolProperty:
		return "property"
	case SymbolField:
		return "field"
	case SymbolEvent:
		return "event"
	case SymbolTypeParam:
		return "type-param"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// AggregateKind distinguishes the flavours of aggregate declarations.
type AggregateKind uint8

const (
	AggregateClass AggregateKind = iota
	AggregateStruct
	AggregateInterface
	AggregateEnum
)

func (k AggregateKind) String() string {
	switch k {
	case AggregateStruct:
		return "struct"
	case AggregateInterface:
		return "interface"
	case AggregateEnum:
		return "enum"
	default:
		return "class"
	}
}

// MethodFlags encode misc attributes for quick checks.
type MethodFlags uint16

const (
	MethodConstructor MethodFlags = 1 << iota
	MethodDestructor
	MethodParamArray // trailing parameter is a params array
	MethodVarargs    // accepts unchecked __arglist arguments
	MethodBroken     // declaration failed to resolve
)

// Strings returns a slice of textual flag labels.
func (f MethodFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 5)
	if f&MethodConstructor != 0 {
		labels = append(labels, "constructor")
	}
	if f&MethodDestructor != 0 {
		labels = append(labels, "destructor")
	}
	if f&MethodParamArray != 0 {
		labels = append(labels, "params")
	}
	if f&MethodVarargs != 0 {
		labels = append(labels, "varargs")
	}
	if f&MethodBroken != 0 {
		labels = append(labels, "broken")
	}
	return labels
}

// AccessorKind identifies property and event accessor methods.
type AccessorKind uint8

const (
	AccessorNone AccessorKind = iota
	AccessorGet
	AccessorSet
	AccessorAdd
	AccessorRemove
)

// Suffix returns the literal appended after the owning member.
func (k AccessorKind) Suffix() string {
	switch k {
	case AccessorGet:
		return "get"
	case AccessorSet:
		return "set"
	case AccessorAdd:
		return "add"
	case AccessorRemove:
		return "remove"
	default:
		return ""
	}
}

// ConversionKind marks user-defined conversion operators.
type ConversionKind uint8

const (
	ConversionNone ConversionKind = iota
	ConversionImplicit
	ConversionExplicit
)

// ExplicitImpl is the explicit-interface slot of a method or property.
// Interface may mention type parameters of the implementing declaration.
// Member is nil when the implemented member could not be resolved.
type ExplicitImpl struct {
	Interface *Type
	Member    *Symbol
}

// Param is a single formal parameter.
type Param struct {
	Name string
	Type *Type
}

// AggregateDecl stores class/struct/interface/enum specifics.
type AggregateDecl struct {
	Kind       AggregateKind
	TypeParams []*Symbol
}

// TypeParamDecl stores the ordinal and ownership of a type parameter.
type TypeParamDecl struct {
	Index       uint16
	MethodOwned bool
}

// MethodDecl stores method specifics.
type MethodDecl struct {
	Flags      MethodFlags
	Accessor   AccessorKind
	AccessorOf *Symbol // owning property or event
	Conversion ConversionKind
	Operator   OperatorKind
	Explicit   *ExplicitImpl
	TypeParams []*Symbol
	Params     []Param
	Return     *Type

	completable completion
}

type completion uint8

const (
	completionUnknown completion = iota
	completionDone
	completionFailed
)

// Completable reports whether the method signature can be rendered. The answer
// is computed once and memoized on the declaration; the cell is not
// synchronized.
func (m *MethodDecl) Completable() bool {
	switch m.completable {
	case completionDone:
		return true
	case completionFailed:
		return false
	}
	ok := m.Flags&MethodBroken == 0
	for _, p := range m.Params {
		if p.Type == nil {
			ok = false
			break
		}
	}
	if ok {
		m.completable = completionDone
	} else {
		m.completable = completionFailed
	}
	return ok
}

// PropertyDecl stores property and indexer specifics.
type PropertyDecl struct {
	Indexer  bool
	Params   []Param
	Explicit *ExplicitImpl
	// Synthetic is the stored display name used when an explicit
	// implementation could not be resolved.
	Synthetic string
}

// Symbol describes a resolved declaration. Parent is a non-owning back
// reference; the chain terminates at the graph root namespace.
type Symbol struct {
	Kind   SymbolKind
	Name   string
	Parent *Symbol
	Type   *Type // field, local, property and event type

	Aggregate *AggregateDecl
	Method    *MethodDecl
	Property  *PropertyDecl
	TypeParam *TypeParamDecl

	root bool
	id   SymbolID
}

// IsRoot reports whether s is the distinguished global namespace.
func (s *Symbol) IsRoot() bool { return s != nil && s.root }

// ID returns the arena identifier of s, NoSymbolID for detached symbols.
func (s *Symbol) ID() SymbolID {
	if s == nil {
		return NoSymbolID
	}
	return s.id
}

// TypeParams returns the declared type parameters of an aggregate or method.
func (s *Symbol) TypeParams() []*Symbol {
	if s == nil {
		return nil
	}
	switch {
	case s.Aggregate != nil:
		return s.Aggregate.TypeParams
	case s.Method != nil:
		return s.Method.TypeParams
	}
	return nil
}

// SelfType returns the open instantiation of an aggregate declaration: its
// own type parameters as arguments, nested inside the enclosing aggregate's
// open instantiation.
func (s *Symbol) SelfType() *Type {
	if s == nil || s.Kind != SymbolAggregate {
		return nil
	}
	var outer *Type
	if s.Parent != nil && s.Parent.Kind == SymbolAggregate {
		outer = s.Parent.SelfType()
	}
	params := s.TypeParams()
	args := make([]*Type, len(params))
	for i, p := range params {
		args[i] = p.ParamType()
	}
	return MakeAggregate(s, outer, args...)
}

// ParamType returns the type referring to a type-parameter symbol.
func (s *Symbol) ParamType() *Type {
	if s == nil || s.TypeParam == nil {
		return nil
	}
	return MakeTypeParam(s.TypeParam.Index, s.TypeParam.MethodOwned, s.Name)
}

// Owner returns the declaring aggregate of a member, or nil when the parent is
// not an aggregate.
func (s *Symbol) Owner() *Symbol {
	if s == nil || s.Parent == nil || s.Parent.Kind != SymbolAggregate {
		return nil
	}
	return s.Parent
}
