package types

import (
	"fmt"
	"io"
	"iter"
	"reflect"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ResourceValue wraps an opaque host handle. Properties and items reach
// into the handle by reflection; disposal is delegated to io.Closer.
type ResourceValue struct {
	id       uuid.UUID
	handle   any
	once     sync.Once
	disposed bool
	closeErr error
}

// NewResource wraps handle under a fresh identity
func NewResource(handle any) *ResourceValue {
	return &ResourceValue{id: uuid.New(), handle: handle}
}

// ID returns the identity used when the handle cannot render itself
func (r *ResourceValue) ID() uuid.UUID { return r.id }

// Handle returns the wrapped host value
func (r *ResourceValue) Handle() any { return r.handle }

// Disposed reports whether Dispose has run
func (r *ResourceValue) Disposed() bool { return r.disposed }

// Dispose closes the handle if it is an io.Closer. Only the first call
// reaches the handle; later calls return the first result.
func (r *ResourceValue) Dispose() error {
	r.once.Do(func() {
		if c, ok := r.handle.(io.Closer); ok {
			r.closeErr = c.Close()
		}
		r.disposed = true
	})
	return r.closeErr
}

func (r *ResourceValue) handleKey() string {
	rv := reflect.ValueOf(r.handle)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("%T:%#x", r.handle, rv.Pointer())
	}
	return fmt.Sprintf("%T:%v", r.handle, r.handle)
}

func (r *ResourceValue) Kind() Kind { return KindResource }

func (r *ResourceValue) Class() ClassID { return KindResource.ClassID() }

// String uses the handle's own String method when it has one
func (r *ResourceValue) String() string {
	if s, ok := r.handle.(fmt.Stringer); ok {
		return s.String()
	}
	return "<resource " + r.id.String() + ">"
}

// Clone returns the receiver: a resource is a handle, not a container
func (r *ResourceValue) Clone() Value { return r }

func (r *ResourceValue) IsEmpty() bool { return r.handle == nil }

func (r *ResourceValue) sealed() {}

func (r *ResourceValue) equal(other Value) (bool, error) {
	x, ok := other.(*ResourceValue)
	if !ok {
		return false, castError(other, "resource")
	}
	if x == r || x.id == r.id {
		return true, nil
	}
	if r.handle == nil || x.handle == nil {
		return r.handle == nil && x.handle == nil, nil
	}
	if reflect.TypeOf(r.handle) != reflect.TypeOf(x.handle) || !reflect.TypeOf(r.handle).Comparable() {
		return false, nil
	}
	return r.handle == x.handle, nil
}

func (r *ResourceValue) live() (reflect.Value, error) {
	if r.disposed {
		return reflect.Value{}, Errorf(E_DISPOSED, "resource %s has been disposed", r.id)
	}
	rv := reflect.ValueOf(r.handle)
	if !rv.IsValid() {
		return rv, Errorf(E_CAST, "resource has no handle")
	}
	return rv, nil
}

// memberName maps a script name onto an exported Go name
func memberName(name string) string {
	if name == "" {
		return name
	}
	c, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(c)) + name[size:]
}

func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f := rv.FieldByName(memberName(name))
	if !f.IsValid() || !f.CanInterface() {
		return reflect.Value{}, false
	}
	return f, true
}

func (r *ResourceValue) getProperty(name string) (Value, error) {
	rv, err := r.live()
	if err != nil {
		return nil, err
	}
	if f, ok := structField(rv, name); ok {
		return FromNative(f.Interface())
	}
	m := rv.MethodByName(memberName(name))
	if !m.IsValid() || m.Type().NumIn() != 0 {
		return nil, propertyError(r, name)
	}
	out := m.Call(nil)
	switch len(out) {
	case 0:
		return Void, nil
	case 2:
		if e, ok := out[1].Interface().(error); ok && e != nil {
			return nil, e
		}
	}
	return FromNative(out[0].Interface())
}

func (r *ResourceValue) setProperty(name string, v Value) error {
	rv, err := r.live()
	if err != nil {
		return err
	}
	f, ok := structField(rv, name)
	if !ok {
		return propertyError(r, name)
	}
	if !f.CanSet() {
		return Errorf(E_IMMUTABLE, "field %s of %T cannot be set", name, r.handle)
	}
	x, err := ToNative(v, f.Type())
	if err != nil {
		return err
	}
	f.Set(reflect.ValueOf(x))
	return nil
}

func (r *ResourceValue) container() (reflect.Value, error) {
	rv, err := r.live()
	if err != nil {
		return rv, err
	}
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv, nil
	}
	return rv, indexerError(r)
}

func (r *ResourceValue) getItem(index Value) (Value, error) {
	rv, err := r.container()
	if err != nil {
		return nil, err
	}
	if rv.Kind() == reflect.Map {
		k, err := ToNative(index, rv.Type().Key())
		if err != nil {
			return nil, err
		}
		e := rv.MapIndex(reflect.ValueOf(k))
		if !e.IsValid() {
			return Void, nil
		}
		return FromNative(e.Interface())
	}
	n, err := indexArg(index)
	if err != nil {
		return nil, err
	}
	i, ok := readIndex(n, rv.Len())
	if !ok {
		return Void, nil
	}
	return FromNative(rv.Index(i).Interface())
}

func (r *ResourceValue) setItem(index, v Value) error {
	rv, err := r.container()
	if err != nil {
		return err
	}
	if rv.Kind() == reflect.Map {
		k, err := ToNative(index, rv.Type().Key())
		if err != nil {
			return err
		}
		x, err := ToNative(v, rv.Type().Elem())
		if err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(k), reflect.ValueOf(x))
		return nil
	}
	n, err := indexArg(index)
	if err != nil {
		return err
	}
	i, err := writeIndex(n, rv.Len())
	if err != nil {
		return err
	}
	slot := rv.Index(i)
	if !slot.CanSet() {
		return Errorf(E_IMMUTABLE, "%T items cannot be set", r.handle)
	}
	x, err := ToNative(v, slot.Type())
	if err != nil {
		return err
	}
	slot.Set(reflect.ValueOf(x))
	return nil
}

// iterate walks a wrapped map (keys in value order) or slice; any other
// handle cannot be iterated
func (r *ResourceValue) iterate() (iter.Seq2[Value, Value], error) {
	rv, err := r.container()
	if err != nil || rv.Kind() == reflect.String {
		return nil, Errorf(E_ITER, "%T cannot be iterated", r.handle)
	}
	type pair struct{ k, v Value }
	var pairs []pair
	if rv.Kind() == reflect.Map {
		it := rv.MapRange()
		for it.Next() {
			k, err := FromNative(it.Key().Interface())
			if err != nil {
				return nil, err
			}
			v, err := FromNative(it.Value().Interface())
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair{k, v})
		}
		slices.SortFunc(pairs, func(a, b pair) int { return Compare(a.k, b.k) })
	} else {
		for i := range rv.Len() {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair{NewInt(int32(i)), v})
		}
	}
	return func(yield func(Value, Value) bool) {
		for _, p := range pairs {
			if !yield(p.k, p.v) {
				return
			}
		}
	}, nil
}
