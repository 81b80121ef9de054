package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"math/big"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// HashKey is a digest of a value that agrees with Equals across the
// numeric tower: Integer 1, Long 1, Float 1.0 and Decimal 1 share a key,
// as do Rational 1/10, Float 0.1 and Decimal 0.1. Strings key by their
// text and never share a bucket with numbers.
// Sets and maps bucket their entries by it.
type HashKey [blake2b.Size256]byte

// Hash computes the HashKey of v
func Hash(v Value) HashKey {
	h, _ := blake2b.New256(nil)
	writeHash(h, v)
	var key HashKey
	copy(key[:], h.Sum(nil))
	return key
}

const (
	tagVoid byte = iota + 1
	tagNumber
	tagFloat
	tagComplex
	tagString
	tagDate
	tagDuration
	tagBytes
	tagSeq
	tagSet
	tagMap
	tagRef
)

func writeTagged(h hash.Hash, tag byte, data []byte) {
	var hdr [binary.MaxVarintLen64 + 1]byte
	hdr[0] = tag
	n := binary.PutUvarint(hdr[1:], uint64(len(data)))
	h.Write(hdr[:n+1])
	h.Write(data)
}

func writeHash(h hash.Hash, v Value) {
	switch x := v.(type) {
	case nil, VoidValue:
		writeTagged(h, tagVoid, nil)
	case BoolValue:
		if x.val {
			writeTagged(h, tagNumber, []byte("1"))
		} else {
			writeTagged(h, tagNumber, []byte("0"))
		}
	case IntValue:
		writeTagged(h, tagNumber, []byte(x.String()))
	case LongValue:
		writeTagged(h, tagNumber, []byte(x.val.String()))
	case RationalValue:
		if x.val.IsInt() {
			writeTagged(h, tagNumber, []byte(x.val.Num().String()))
			return
		}
		f, _ := x.val.Float64()
		writeFloatHash(h, f)
	case FloatValue:
		writeFloatHash(h, x.val)
	case DecimalValue:
		if x.val.IsInteger() {
			writeTagged(h, tagNumber, []byte(x.val.BigInt().String()))
			return
		}
		writeFloatHash(h, x.val.InexactFloat64())
	case ComplexValue:
		if imag(x.val) == 0 {
			writeFloatHash(h, real(x.val))
			return
		}
		writeTagged(h, tagComplex, []byte(fmt.Sprint(x.val)))
	case StrValue:
		writeTagged(h, tagString, []byte(x.val))
	case DateValue:
		writeTagged(h, tagDate, binary.BigEndian.AppendUint64(nil, uint64(x.val.UnixNano())))
	case DurationValue:
		writeTagged(h, tagDuration, binary.BigEndian.AppendUint64(nil, uint64(x.val)))
	case *BlobValue:
		writeTagged(h, tagBytes, x.buf)
	case TupleValue:
		writeSeqHash(h, x.items)
	case *ListValue:
		writeSeqHash(h, x.items)
	case *QueueValue:
		writeSeqHash(h, x.items)
	case *StackValue:
		writeSeqHash(h, x.Items())
	case *SetValue:
		keys := make([][]byte, 0, x.Len())
		for _, e := range x.t.entries {
			k := Hash(e.key)
			keys = append(keys, k[:])
		}
		slices.SortFunc(keys, bytes.Compare)
		writeTagged(h, tagSet, bytes.Join(keys, nil))
	case *MapValue:
		pairs := make([][]byte, 0, x.Len())
		for _, e := range x.t.entries {
			k, val := Hash(e.key), Hash(e.val)
			pairs = append(pairs, append(k[:], val[:]...))
		}
		slices.SortFunc(pairs, bytes.Compare)
		writeTagged(h, tagMap, bytes.Join(pairs, nil))
	case *ObjValue:
		writeTagged(h, tagRef, []byte(fmt.Sprintf("obj:%p", x)))
	case *ResourceValue:
		writeTagged(h, tagRef, []byte("res:"+x.handleKey()))
	case ClosureValue:
		if x.fn == nil {
			writeTagged(h, tagRef, []byte("fn:"))
			return
		}
		writeTagged(h, tagRef, []byte("fn:"+x.fn.Signature()))
	default:
		writeTagged(h, tagRef, []byte(v.String()))
	}
}

// writeFloatHash keys a real number by its float64 projection. Integral
// values share the integer bucket; the rest key by their bits, since
// mixed-kind equality compares through that projection.
func writeFloatHash(h hash.Hash, f float64) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		writeTagged(h, tagFloat, []byte(formatFloat(f)))
	case f == math.Trunc(f):
		n, _ := new(big.Float).SetFloat64(f).Int(nil)
		writeTagged(h, tagNumber, []byte(n.String()))
	default:
		writeTagged(h, tagFloat, binary.BigEndian.AppendUint64(nil, math.Float64bits(f)))
	}
}

func writeSeqHash(h hash.Hash, items []Value) {
	var buf []byte
	for _, item := range items {
		k := Hash(item)
		buf = append(buf, k[:]...)
	}
	writeTagged(h, tagSeq, buf)
}

// table is an insertion-ordered hash table of values, shared by Set and Map
type table struct {
	entries []entry
	buckets map[HashKey][]int
}

type entry struct {
	key Value
	val Value
}

func newTable(capacity int) *table {
	return &table{
		entries: make([]entry, 0, capacity),
		buckets: make(map[HashKey][]int, capacity),
	}
}

func (t *table) len() int { return len(t.entries) }

func (t *table) find(key Value) (int, bool) {
	for _, i := range t.buckets[Hash(key)] {
		if Equals(t.entries[i].key, key) {
			return i, true
		}
	}
	return 0, false
}

func (t *table) get(key Value) (Value, bool) {
	if i, ok := t.find(key); ok {
		return t.entries[i].val, true
	}
	return nil, false
}

// put inserts or overwrites; it reports whether the key was new
func (t *table) put(key, val Value) bool {
	h := Hash(key)
	for _, i := range t.buckets[h] {
		if Equals(t.entries[i].key, key) {
			t.entries[i].val = val
			return false
		}
	}
	t.buckets[h] = append(t.buckets[h], len(t.entries))
	t.entries = append(t.entries, entry{key: key, val: val})
	return true
}

func (t *table) remove(key Value) bool {
	i, ok := t.find(key)
	if !ok {
		return false
	}
	t.entries = slices.Delete(t.entries, i, i+1)
	t.reindex()
	return true
}

func (t *table) reindex() {
	clear(t.buckets)
	for i, e := range t.entries {
		h := Hash(e.key)
		t.buckets[h] = append(t.buckets[h], i)
	}
}

func (t *table) clone(deep bool) *table {
	c := newTable(len(t.entries))
	for _, e := range t.entries {
		if deep {
			c.put(e.key.Clone(), e.val.Clone())
		} else {
			c.put(e.key, e.val)
		}
	}
	return c
}
