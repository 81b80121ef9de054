package types

// BinaryOperator enumerates the two-operand operators of the language
type BinaryOperator int

const (
	OpNone BinaryOperator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpAnd
	OpAndAlso
	OpOr
	OpOrElse
	OpXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpIdentical
	OpNotIdentical
	OpLt
	OpLe
	OpGt
	OpGe
	OpStartsWith
	OpEndsWith
	OpContains
	OpMatches
	OpIfEmpty
)

var binarySymbols = [...]string{
	OpNone:         "",
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
	OpPow:          "**",
	OpAnd:          "&",
	OpAndAlso:      "&&",
	OpOr:           "|",
	OpOrElse:       "||",
	OpXor:          "^",
	OpShl:          "<<",
	OpShr:          ">>",
	OpEq:           "==",
	OpNe:           "!=",
	OpIdentical:    "===",
	OpNotIdentical: "!==",
	OpLt:           "<",
	OpLe:           "<=",
	OpGt:           ">",
	OpGe:           ">=",
	OpStartsWith:   "startswith",
	OpEndsWith:     "endswith",
	OpContains:     "contains",
	OpMatches:      "matches",
	OpIfEmpty:      "??",
}

// String returns the operator's source symbol
func (op BinaryOperator) String() string {
	if op < 0 || int(op) >= len(binarySymbols) {
		return "?"
	}
	return binarySymbols[op]
}

// ParseBinaryOperator looks an operator up by its source symbol
func ParseBinaryOperator(s string) (BinaryOperator, bool) {
	for op := OpAdd; op <= OpIfEmpty; op++ {
		if binarySymbols[op] == s {
			return op, true
		}
	}
	return OpNone, false
}

// IsRelational reports whether op is one of < <= > >=
func (op BinaryOperator) IsRelational() bool {
	return op >= OpLt && op <= OpGe
}

// UnaryOperator enumerates the one-operand operators of the language
type UnaryOperator int

const (
	UnaryNone UnaryOperator = iota
	UnaryPlus
	UnaryMinus
	UnaryNot
	UnaryBitNot
	UnaryPreInc
	UnaryPostInc
	UnaryPreDec
	UnaryPostDec
	UnaryNotEmpty
)

var unarySymbols = [...]string{
	UnaryNone:     "",
	UnaryPlus:     "+",
	UnaryMinus:    "-",
	UnaryNot:      "!",
	UnaryBitNot:   "~",
	UnaryPreInc:   "++x",
	UnaryPostInc:  "x++",
	UnaryPreDec:   "--x",
	UnaryPostDec:  "x--",
	UnaryNotEmpty: "?",
}

// String returns the operator's symbol. Increments and decrements carry
// an x marking the operand side.
func (op UnaryOperator) String() string {
	if op < 0 || int(op) >= len(unarySymbols) {
		return "?"
	}
	return unarySymbols[op]
}

// ParseUnaryOperator looks an operator up by its symbol
func ParseUnaryOperator(s string) (UnaryOperator, bool) {
	for op := UnaryPlus; op <= UnaryNotEmpty; op++ {
		if unarySymbols[op] == s {
			return op, true
		}
	}
	return UnaryNone, false
}

// IsPostfix reports whether op is written after its operand
func (op UnaryOperator) IsPostfix() bool {
	return op == UnaryPostInc || op == UnaryPostDec
}
