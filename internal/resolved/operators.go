package resolved

// OperatorKind identifies an overloadable operator a method implements.
type OperatorKind uint8

const (
	OpNone OperatorKind = iota
	OpAddition
	OpSubtraction
	OpMultiply
	OpDivision
	OpModulus
	OpBitwiseAnd
	OpBitwiseOr
	OpExclusiveOr
	OpLeftShift
	OpRightShift
	OpEquality
	OpInequality
	OpGreaterThan
	OpLessThan
	OpGreaterThanOrEqual
	OpLessThanOrEqual
	OpUnaryPlus
	OpUnaryNegation
	OpLogicalNot
	OpOnesComplement
	OpIncrement
	OpDecrement
	OpTrue
	OpFalse
	OpLogicalAnd
	OpLogicalOr
	// OpEqualsHook and OpCompareHook are overloadable method identities
	// without a symbolic spelling.
	OpEqualsHook
	OpCompareHook

	opCount
)

// Valid reports whether k is a known operator identity.
func (k OperatorKind) Valid() bool { return k > OpNone && k < opCount }

var operatorNames = map[string]OperatorKind{
	"op_Addition":           OpAddition,
	"op_Subtraction":        OpSubtraction,
	"op_Multiply":           OpMultiply,
	"op_Division":           OpDivision,
	"op_Modulus":            OpModulus,
	"op_BitwiseAnd":         OpBitwiseAnd,
	"op_BitwiseOr":          OpBitwiseOr,
	"op_ExclusiveOr":        OpExclusiveOr,
	"op_LeftShift":          OpLeftShift,
	"op_RightShift":         OpRightShift,
	"op_Equality":           OpEquality,
	"op_Inequality":         OpInequality,
	"op_GreaterThan":        OpGreaterThan,
	"op_LessThan":           OpLessThan,
	"op_GreaterThanOrEqual": OpGreaterThanOrEqual,
	"op_LessThanOrEqual":    OpLessThanOrEqual,
	"op_UnaryPlus":          OpUnaryPlus,
	"op_UnaryNegation":      OpUnaryNegation,
	"op_LogicalNot":         OpLogicalNot,
	"op_OnesComplement":     OpOnesComplement,
	"op_Increment":          OpIncrement,
	"op_Decrement":          OpDecrement,
	"op_True":               OpTrue,
	"op_False":              OpFalse,
	"op_LogicalAnd":         OpLogicalAnd,
	"op_LogicalOr":          OpLogicalOr,
	"op_Equals":             OpEqualsHook,
	"op_Compare":            OpCompareHook,
}

// OperatorByName maps a metadata method name such as "op_Addition" to its
// operator identity.
func OperatorByName(name string) (OperatorKind, bool) {
	k, ok := operatorNames[name]
	return k, ok
}

// ConversionByName maps "op_Implicit"/"op_Explicit" to a conversion kind.
func ConversionByName(name string) (ConversionKind, bool) {
	switch name {
	case "op_Implicit":
		return ConversionImplicit, true
	case "op_Explicit":
		return ConversionExplicit, true
	}
	return ConversionNone, false
}
