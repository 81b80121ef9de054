package types

import (
	"bytes"
	"encoding/base64"
	"iter"
	"slices"
)

// BlobValue represents a mutable, resizable byte buffer
type BlobValue struct {
	buf []byte
}

// NewBlob wraps buf without copying it
func NewBlob(buf []byte) *BlobValue {
	if buf == nil {
		buf = []byte{}
	}
	return &BlobValue{buf: buf}
}

// Bytes returns the live buffer
func (b *BlobValue) Bytes() []byte { return b.buf }

// Len returns the number of bytes
func (b *BlobValue) Len() int { return len(b.buf) }

// Resize grows (zero-filled) or truncates the buffer
func (b *BlobValue) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(b.buf) {
		b.buf = b.buf[:n]
		return
	}
	b.buf = append(b.buf, make([]byte, n-len(b.buf))...)
}

func (b *BlobValue) Kind() Kind { return KindBlob }

func (b *BlobValue) Class() ClassID { return KindBlob.ClassID() }

func (b *BlobValue) String() string {
	return "b'" + base64.StdEncoding.EncodeToString(b.buf) + "'"
}

func (b *BlobValue) Clone() Value { return NewBlob(bytes.Clone(b.buf)) }

func (b *BlobValue) IsEmpty() bool { return len(b.buf) == 0 }

func (b *BlobValue) sealed() {}

func (b *BlobValue) equal(other Value) (bool, error) {
	x, err := AsBytes(other)
	if err != nil {
		return false, err
	}
	return bytes.Equal(b.buf, x), nil
}

func (b *BlobValue) compare(other Value) (int, error) {
	x, err := AsBytes(other)
	if err != nil {
		return 0, err
	}
	return bytes.Compare(b.buf, x), nil
}

func (b *BlobValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		x, err := AsBytes(rhs)
		if err != nil {
			return nil, err
		}
		return NewBlob(slices.Concat(b.buf, x)), nil
	case OpMul:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return NewBlob(nil), nil
		}
		return NewBlob(bytes.Repeat(b.buf, int(n))), nil
	case OpContains:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		return NewBool(n >= 0 && n <= 255 && bytes.IndexByte(b.buf, byte(n)) >= 0), nil
	}
	return defaultBinary(op, b, rhs)
}

func (b *BlobValue) getProperty(name string) (Value, error) {
	return sequenceProperty(b, name, len(b.buf), func(i int) Value { return NewInt(int32(b.buf[i])) })
}

func (b *BlobValue) getItem(index Value) (Value, error) {
	n, err := indexArg(index)
	if err != nil {
		return nil, err
	}
	i, ok := readIndex(n, len(b.buf))
	if !ok {
		return Void, nil
	}
	return NewInt(int32(b.buf[i])), nil
}

func (b *BlobValue) setItem(index, v Value) error {
	n, err := indexArg(index)
	if err != nil {
		return err
	}
	i, err := writeIndex(n, len(b.buf))
	if err != nil {
		return err
	}
	x, err := AsInt32(v)
	if err != nil {
		return err
	}
	b.buf[i] = byte(x)
	return nil
}

func (b *BlobValue) getRange(lo, hi int) (Value, error) {
	lo, hi = clampRange(lo, hi, len(b.buf))
	return NewBlob(bytes.Clone(b.buf[lo:hi])), nil
}

func (b *BlobValue) setRange(lo, hi int, v Value) error {
	x, err := AsBytes(v)
	if err != nil {
		return err
	}
	lo, hi = clampRange(lo, hi, len(b.buf))
	b.buf = slices.Replace(b.buf, lo, hi, bytes.Clone(x)...)
	return nil
}

func (b *BlobValue) enumerate() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i, c := range b.buf {
			if !yield(NewInt(int32(i)), NewInt(int32(c))) {
				return
			}
		}
	}
}

// sequenceProperty serves the size/empty/front/back properties common to
// ordered collections
func sequenceProperty(v Value, name string, n int, at func(int) Value) (Value, error) {
	switch name {
	case "size":
		return NewInt(int32(n)), nil
	case "empty":
		return NewBool(n == 0), nil
	case "front":
		if n == 0 {
			return Void, nil
		}
		return at(0), nil
	case "back":
		if n == 0 {
			return Void, nil
		}
		return at(n - 1), nil
	}
	return nil, propertyError(v, name)
}
