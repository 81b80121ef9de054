package types

// Kind identifies a Value variant. The order of the numeric kinds is the
// lossless promotion order of the numeric tower.
type Kind int

const (
	KindUndefined Kind = 0
	KindVoid      Kind = 1
	KindBool      Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindRational  Kind = 5
	KindFloat     Kind = 6
	KindDecimal   Kind = 7
	KindComplex   Kind = 8
	KindDate      Kind = 9
	KindDuration  Kind = 10
	KindString    Kind = 11
	KindBlob      Kind = 12
	KindTuple     Kind = 13
	KindList      Kind = 14
	KindSet       Kind = 15
	KindQueue     Kind = 16
	KindStack     Kind = 17
	KindMap       Kind = 18
	KindObject    Kind = 19
	KindResource  Kind = 20
	KindClosure   Kind = 21
)

// KindCount is one past the last primitive kind
const KindCount = KindClosure + 1

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindVoid:      "void",
	KindBool:      "bool",
	KindInt:       "int",
	KindLong:      "long",
	KindRational:  "rational",
	KindFloat:     "float",
	KindDecimal:   "decimal",
	KindComplex:   "complex",
	KindDate:      "date",
	KindDuration:  "duration",
	KindString:    "string",
	KindBlob:      "blob",
	KindTuple:     "tuple",
	KindList:      "list",
	KindSet:       "set",
	KindQueue:     "queue",
	KindStack:     "stack",
	KindMap:       "map",
	KindObject:    "object",
	KindResource:  "resource",
	KindClosure:   "closure",
}

// String returns the script name of the kind, which is also the name of
// its primitive class
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindFromString converts a primitive class name back to its Kind
func KindFromString(s string) (Kind, bool) {
	for k := KindVoid; k < KindCount; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindUndefined, false
}

// ClassID returns the id of the primitive class for this kind
func (k Kind) ClassID() ClassID {
	return ClassID(k)
}

// IsNumeric reports whether k belongs to the numeric tower
func (k Kind) IsNumeric() bool {
	return k >= KindInt && k <= KindComplex
}

// IsSequence reports whether k is one of the ordered collection kinds
// that refuse to be coerced into one another
func (k Kind) IsSequence() bool {
	switch k {
	case KindTuple, KindList, KindSet, KindQueue, KindStack:
		return true
	}
	return false
}

// KindOfClass maps a class id to a primitive kind. Ids past the primitive
// range describe objects.
func KindOfClass(id ClassID) Kind {
	if id > ClassNone && id < ClassID(KindCount) {
		return Kind(id)
	}
	return KindObject
}
