package types

// BoolValue represents a boolean. Only the two cached values True and
// False exist; NewBool hands out one of them.
type BoolValue struct {
	val bool
}

var (
	True  = BoolValue{val: true}
	False = BoolValue{val: false}
)

// NewBool returns the cached BoolValue for val
func NewBool(val bool) BoolValue {
	if val {
		return True
	}
	return False
}

// Val returns the underlying bool
func (b BoolValue) Val() bool { return b.val }

func (b BoolValue) Kind() Kind { return KindBool }

func (b BoolValue) Class() ClassID { return KindBool.ClassID() }

// String returns the literal representation
func (b BoolValue) String() string {
	if b.val {
		return "true"
	}
	return "false"
}

func (b BoolValue) Clone() Value { return b }

func (b BoolValue) IsEmpty() bool { return false }

func (b BoolValue) sealed() {}

func (b BoolValue) equal(other Value) (bool, error) {
	x, err := AsBool(other)
	if err != nil {
		return false, err
	}
	return b.val == x, nil
}

func (b BoolValue) compare(other Value) (int, error) {
	x, err := AsBool(other)
	if err != nil {
		return 0, err
	}
	switch {
	case b.val == x:
		return 0, nil
	case x:
		return -1, nil
	}
	return 1, nil
}

func (b BoolValue) unary(op UnaryOperator) (Value, error) {
	if op == UnaryNot {
		return NewBool(!b.val), nil
	}
	return nil, unaryError(op, b)
}

func (b BoolValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAnd, OpOr, OpXor:
	default:
		return defaultBinary(op, b, rhs)
	}
	x, err := AsBool(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAnd:
		return NewBool(b.val && x), nil
	case OpOr:
		return NewBool(b.val || x), nil
	default:
		return NewBool(b.val != x), nil
	}
}
