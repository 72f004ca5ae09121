package diag

import (
	"symname/internal/locale"
	"symname/internal/resolved"
)

// Arg is a single diagnostic argument.
type Arg interface {
	isArg()
}

// MessageArg is a fixed localized phrase.
type MessageArg struct {
	ID locale.MessageID
}

// KindArg names a symbol kind. Aggregate selects class/struct/interface/enum
// when Kind is SymbolAggregate.
type KindArg struct {
	Kind      resolved.SymbolKind
	Aggregate resolved.AggregateKind
}

// TypeArg is a resolved type rendered through Subst.
type TypeArg struct {
	Type  *resolved.Type
	Subst resolved.Subst
}

// SymbolArg is a resolved symbol rendered through Subst. Signature appends
// the argument list of methods.
type SymbolArg struct {
	Symbol    *resolved.Symbol
	Subst     resolved.Subst
	Signature bool
}

// NameArg is an identifier written by the user.
type NameArg struct {
	Name string
}

// TextArg is literal text.
type TextArg struct {
	Text string
}

// BoundSymbolArg is a member seen through an instantiation of its container,
// e.g. List<T>.Add reported as List<int>.Add(int).
type BoundSymbolArg struct {
	Symbol        *resolved.Symbol
	Instantiation *resolved.Type
}

// BoundMethodArg is a method seen through its container instantiation and its
// own method type arguments.
type BoundMethodArg struct {
	Method     *resolved.Symbol
	Container  *resolved.Type
	MethodArgs []*resolved.Type
}

func (MessageArg) isArg()     {}
func (KindArg) isArg()        {}
func (TypeArg) isArg()        {}
func (SymbolArg) isArg()      {}
func (NameArg) isArg()        {}
func (TextArg) isArg()        {}
func (BoundSymbolArg) isArg() {}
func (BoundMethodArg) isArg() {}

// Origin records whether display text is a canned phrase or a rendered
// resolved reference.
type Origin uint8

const (
	OriginPhrase Origin = iota
	OriginResolved
)

func (o Origin) String() string {
	switch o {
	case OriginPhrase:
		return "phrase"
	case OriginResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Formatted is the display text of one argument.
type Formatted struct {
	Text   string
	Origin Origin
}

// Quoted returns the text wrapped in single quotes when it names a resolved
// reference, and unchanged otherwise.
func (f Formatted) Quoted() string {
	if f.Origin == OriginResolved {
		return "'" + f.Text + "'"
	}
	return f.Text
}

// KindMessage maps a symbol kind to its localized name.
func KindMessage(kind resolved.SymbolKind, agg resolved.AggregateKind) (locale.MessageID, bool) {
	switch kind {
	case resolved.SymbolNamespace:
		return locale.MsgKindNamespace, true
	case resolved.SymbolAggregate:
		switch agg {
		case resolved.AggregateStruct:
			return locale.MsgKindStruct, true
		case resolved.AggregateInterface:
			return locale.MsgKindInterface, true
		case resolved.AggregateEnum:
			return locale.MsgKindEnum, true
		default:
			return locale.MsgKindClass, true
		}
	case resolved.SymbolMethod:
		return locale.MsgKindMethod, true
	case resolved.SymbolProperty:
		return locale.MsgKindProperty, true
	case resolved.SymbolField:
		return locale.MsgKindField, true
	case resolved.SymbolEvent:
		return locale.MsgKindEvent, true
	case resolved.SymbolTypeParam:
		return locale.MsgKindTypeParam, true
	case resolved.SymbolLocal:
		return locale.MsgKindLocal, true
	default:
		return locale.MsgInvalid, false
	}
}
