package render

import "symname/internal/resolved"

var operatorText = [...]string{
	resolved.OpAddition:           "+",
	resolved.OpSubtraction:        "-",
	resolved.OpMultiply:           "*",
	resolved.OpDivision:           "/",
	resolved.OpModulus:            "%",
	resolved.OpBitwiseAnd:         "&",
	resolved.OpBitwiseOr:          "|",
	resolved.OpExclusiveOr:        "^",
	resolved.OpLeftShift:          "<<",
	resolved.OpRightShift:         ">>",
	resolved.OpEquality:           "==",
	resolved.OpInequality:         "!=",
	resolved.OpGreaterThan:        ">",
	resolved.OpLessThan:           "<",
	resolved.OpGreaterThanOrEqual: ">=",
	resolved.OpLessThanOrEqual:    "<=",
	resolved.OpUnaryPlus:          "+",
	resolved.OpUnaryNegation:      "-",
	resolved.OpLogicalNot:         "!",
	resolved.OpOnesComplement:     "~",
	resolved.OpIncrement:          "++",
	resolved.OpDecrement:          "--",
	resolved.OpTrue:               "true",
	resolved.OpFalse:              "false",
	resolved.OpLogicalAnd:         "&&",
	resolved.OpLogicalOr:          "||",
	// No symbolic spelling exists for these two.
	resolved.OpEqualsHook:  "equals",
	resolved.OpCompareHook: "compare",
}

// OperatorText returns the display text following "operator " for op.
func OperatorText(op resolved.OperatorKind) (string, bool) {
	if !op.Valid() || int(op) >= len(operatorText) {
		return "", false
	}
	text := operatorText[op]
	return text, text != ""
}
