package locale

import "fmt"

// MessageID names a localized token. The set is closed.
type MessageID uint8

const (
	MsgInvalid MessageID = iota
	MsgGlobalNamespace
	MsgError
	MsgNull
	MsgVoid
	MsgAnonymousMethod
	MsgLambda
	MsgMethodGroup
	MsgArgList

	// Symbol kind names used by diagnostic arguments.
	MsgKindNamespace
	MsgKindClass
	MsgKindStruct
	MsgKindInterface
	MsgKindEnum
	MsgKindMethod
	MsgKindProperty
	MsgKindField
	MsgKindEvent
	MsgKindTypeParam
	MsgKindLocal

	msgCount
)

var messageKeys = [...]string{
	MsgGlobalNamespace: "global-namespace",
	MsgError:           "error-marker",
	MsgNull:            "null",
	MsgVoid:            "void",
	MsgAnonymousMethod: "anonymous-method",
	MsgLambda:          "lambda",
	MsgMethodGroup:     "method-group",
	MsgArgList:         "arg-list",
	MsgKindNamespace:   "kind-namespace",
	MsgKindClass:       "kind-class",
	MsgKindStruct:      "kind-struct",
	MsgKindInterface:   "kind-interface",
	MsgKindEnum:        "kind-enum",
	MsgKindMethod:      "kind-method",
	MsgKindProperty:    "kind-property",
	MsgKindField:       "kind-field",
	MsgKindEvent:       "kind-event",
	MsgKindTypeParam:   "kind-type-param",
	MsgKindLocal:       "kind-local",
}

// Valid reports whether id belongs to the closed message set.
func (id MessageID) Valid() bool { return id > MsgInvalid && id < msgCount }

// String returns the catalog key of id.
func (id MessageID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("MessageID(%d)", id)
	}
	return messageKeys[id]
}

// ParseMessageID maps a catalog key back to its identifier.
func ParseMessageID(key string) (MessageID, bool) {
	for id := MsgInvalid + 1; id < msgCount; id++ {
		if messageKeys[id] == key {
			return id, true
		}
	}
	return MsgInvalid, false
}
