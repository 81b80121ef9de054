package types

// VoidValue is the "no value" of the language. It is both the null
// literal and what an out-of-range collection read returns.
type VoidValue struct{}

// Void is the single VoidValue
var Void = VoidValue{}

func (VoidValue) Kind() Kind { return KindVoid }

func (VoidValue) Class() ClassID { return KindVoid.ClassID() }

func (VoidValue) String() string { return "" }

func (v VoidValue) Clone() Value { return v }

func (VoidValue) IsEmpty() bool { return true }

func (VoidValue) sealed() {}

func (VoidValue) equal(other Value) (bool, error) {
	return other.Kind() == KindVoid, nil
}

func (VoidValue) compare(other Value) (int, error) {
	if other.Kind() == KindVoid {
		return 0, nil
	}
	return 0, Errorf(E_CAST, "void is only ordered against void")
}

// IsVoid reports whether v is missing or the Void value
func IsVoid(v Value) bool {
	return v == nil || v.Kind() == KindVoid
}
