package resolved

import "fmt"

// TypeKind enumerates all supported kinds of types.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeAggregate
	TypeParam
	TypeArray
	TypePointer
	TypeNullable
	TypeModifier
	TypeError
	TypeNull
	TypeVoid
	TypeBoundLambda
	TypeUnboundLambda
	TypeMethodGroup
	TypeArgList
	TypePlaceholder
)

func (k TypeKind) String() string {
	switch k {
	case TypeInvalid:
		return "invalid"
	case TypeAggregate:
		return "aggregate"
	case TypeParam:
		return "type-param"
	case TypeArray:
		return "array"
	case TypePointer:
		return "pointer"
	case TypeNullable:
		return "nullable"
	case TypeModifier:
		return "modifier"
	case TypeError:
		return "error"
	case TypeNull:
		return "null"
	case TypeVoid:
		return "void"
	case TypeBoundLambda:
		return "bound-lambda"
	case TypeUnboundLambda:
		return "unbound-lambda"
	case TypeMethodGroup:
		return "method-group"
	case TypeArgList:
		return "arglist"
	case TypePlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("TypeKind(%d)", k)
	}
}

// Modifier distinguishes out and ref parameter types.
type Modifier uint8

const (
	ModRef Modifier = iota
	ModOut
)

// ErrorInfo is the payload of an Error type. Parent information is optional:
// either ParentType or ParentSym may be set, never both.
type ErrorInfo struct {
	ParentType *Type
	ParentSym  *Symbol
	Name       string
	Args       []*Type
}

// HasParent reports whether the error type carries parent information.
func (e *ErrorInfo) HasParent() bool {
	return e != nil && (e.ParentType != nil || e.ParentSym != nil)
}

// Type is an immutable descriptor for a resolved type expression.
// Nodes are shared freely and must not be mutated after construction.
type Type struct {
	Kind TypeKind

	Decl  *Symbol // aggregate declaration
	Args  []*Type // aggregate type arguments, declaration order
	Outer *Type   // enclosing instantiation for nested aggregates

	Elem   *Type // array element, pointer referent, nullable underlying, modifier target
	Rank   uint8 // array dimensions
	Vector bool  // single-dimension zero-based array shape

	Index       uint16 // type parameter ordinal
	MethodOwned bool   // type parameter declared by a method
	Name        string // type parameter name, empty for synthetic parameters

	Mod Modifier // out/ref

	Error *ErrorInfo
}

var (
	nullType          = &Type{Kind: TypeNull}
	voidType          = &Type{Kind: TypeVoid}
	boundLambdaType   = &Type{Kind: TypeBoundLambda}
	unboundLambdaType = &Type{Kind: TypeUnboundLambda}
	methodGroupType   = &Type{Kind: TypeMethodGroup}
	argListType       = &Type{Kind: TypeArgList}
	placeholderType   = &Type{Kind: TypePlaceholder}
)

// Descriptor helpers ---------------------------------------------------------

// Null returns the shared type of the null literal.
func Null() *Type { return nullType }

// Void returns the shared void type.
func Void() *Type { return voidType }

// BoundLambda returns the shared type of an anonymous method.
func BoundLambda() *Type { return boundLambdaType }

// UnboundLambda returns the shared type of a lambda not yet bound to a delegate.
func UnboundLambda() *Type { return unboundLambdaType }

// MethodGroup returns the shared type of a method group expression.
func MethodGroup() *Type { return methodGroupType }

// ArgList returns the shared type of an __arglist expression.
func ArgList() *Type { return argListType }

// Placeholder returns the shared type used for unresolved generic holes.
func Placeholder() *Type { return placeholderType }

// MakeAggregate describes an instantiation of decl. outer is the enclosing
// instantiation for nested declarations and may be nil.
func MakeAggregate(decl *Symbol, outer *Type, args ...*Type) *Type {
	return &Type{Kind: TypeAggregate, Decl: decl, Outer: outer, Args: cloneTypes(args)}
}

// MakeTypeParam describes a reference to a type parameter by ordinal.
func MakeTypeParam(index uint16, methodOwned bool, name string) *Type {
	return &Type{Kind: TypeParam, Index: index, MethodOwned: methodOwned, Name: name}
}

// MakeArray describes an array of elem with the given rank. vector selects the
// zero-based single-dimension shape and is only meaningful for rank 1.
func MakeArray(elem *Type, rank uint8, vector bool) *Type {
	if rank == 0 {
		rank = 1
	}
	return &Type{Kind: TypeArray, Elem: elem, Rank: rank, Vector: vector && rank == 1}
}

// MakeVector describes T[].
func MakeVector(elem *Type) *Type { return MakeArray(elem, 1, true) }

// MakePointer describes T*.
func MakePointer(elem *Type) *Type {
	return &Type{Kind: TypePointer, Elem: elem}
}

// MakeNullable describes T?.
func MakeNullable(elem *Type) *Type {
	return &Type{Kind: TypeNullable, Elem: elem}
}

// MakeRef describes a by-reference parameter type.
func MakeRef(elem *Type) *Type {
	return &Type{Kind: TypeModifier, Elem: elem, Mod: ModRef}
}

// MakeOut describes an output parameter type.
func MakeOut(elem *Type) *Type {
	return &Type{Kind: TypeModifier, Elem: elem, Mod: ModOut}
}

// MakeError describes a type the analyzer failed to resolve.
func MakeError(info ErrorInfo) *Type {
	info.Args = cloneTypes(info.Args)
	return &Type{Kind: TypeError, Error: &info}
}

// UnknownError returns an error type without any parent information.
func UnknownError() *Type {
	return &Type{Kind: TypeError, Error: &ErrorInfo{}}
}

// ElementOf strips every array layer and returns the innermost element type.
func (t *Type) ElementOf() *Type {
	for t != nil && t.Kind == TypeArray {
		t = t.Elem
	}
	return t
}

func cloneTypes(ts []*Type) []*Type {
	if len(ts) == 0 {
		return nil
	}
	out := make([]*Type, len(ts))
	copy(out, ts)
	return out
}
