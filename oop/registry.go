package oop

import (
	"addy/trace"
	"addy/types"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// Registry is the arena of classes. ClassIDs are handles into it; objects
// and members refer to classes through them.
type Registry struct {
	mu      sync.RWMutex
	classes map[types.ClassID]*Class
	byName  map[string]*Class
	order   []*Class
	nextID  types.ClassID
	logger  *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger receiving class definitions at Debug level
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func newRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes: make(map[types.ClassID]*Class),
		byName:  make(map[string]*Class),
		nextID:  types.ClassNone + 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return r
}

// NewRegistry creates a registry holding the predefined classes.
// User classes get ids after the predefined ones.
func NewRegistry(opts ...Option) *Registry {
	r := newRegistry(opts...)
	for _, c := range Predefined() {
		r.add(c)
	}
	return r
}

func (r *Registry) add(c *Class) {
	r.classes[c.id] = c
	r.byName[c.name] = c
	r.order = append(r.order, c)
	if c.id >= r.nextID {
		r.nextID = c.id + 1
	}
}

// Define builds the class declared by b and registers it
func (r *Registry) Define(b *ClassBuilder) (*Class, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	super := b.super
	if super == nil {
		super = r.byName[types.KindObject.String()]
	} else if r.classes[super.id] != super {
		return nil, types.Errorf(types.E_ARGS, "superclass %s of %s is not registered here", super.name, b.name)
	}
	return r.defineLocked(b, r.nextID, types.KindObject, super)
}

func (r *Registry) defineLocked(b *ClassBuilder, id types.ClassID, kind types.Kind, super *Class) (*Class, error) {
	if _, exists := r.byName[b.name]; exists {
		return nil, types.Errorf(types.E_DUPLICATE, "class %s is already defined", b.name)
	}
	if _, exists := r.classes[id]; exists {
		return nil, types.Errorf(types.E_DUPLICATE, "class id %d is already taken", id)
	}

	c, err := assemble(id, kind, super, b, r.logger)
	if err != nil {
		return nil, err
	}
	r.add(c)

	superName := ""
	if super != nil {
		superName = super.name
	}
	r.logger.Debug("defined class", "class", c.name, "id", int(c.id), "super", superName,
		"fields", c.fields.Len(), "properties", c.properties.Len(), "methods", c.methods.Len(), "events", c.events.Len())
	return c, nil
}

// Lookup finds a class by name
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	return c, ok
}

// ByID resolves a class handle
func (r *Registry) ByID(id types.ClassID) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[id]
	return c, ok
}

// ClassOf returns the class of v; nil reads as Void. It returns nil only
// for objects whose class was never registered here.
func (r *Registry) ClassOf(v types.Value) *Class {
	if v == nil {
		v = types.Void
	}
	c, _ := r.ByID(v.Class())
	return c
}

// Classes returns every class in definition order
func (r *Registry) Classes() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// InstanceOf reports whether v is an instance of c or of a subclass of c
func (r *Registry) InstanceOf(v types.Value, c *Class) bool {
	cls := r.ClassOf(v)
	if cls == nil || c == nil {
		return false
	}
	return cls == c || cls.Inherits(c)
}

// Call runs method m on self. Synthesized bodies run here; anything else
// is handed to inv.
func (r *Registry) Call(m *Method, self types.Value, args []types.Value, inv Invoker) (types.Value, error) {
	if IsSynthesized(m.Body()) {
		return r.CallSynthesized(m, self, args, inv)
	}
	if inv == nil {
		err := types.Errorf(types.E_OPAQUE, "%s needs an evaluator", m.FullName())
		trace.Error(r.holderName(m), m.name, err)
		return nil, err
	}

	trace.Dispatch(r.holderName(m), m.name, self, args)
	result, err := inv.CallMethod(m, self, args)
	if err != nil {
		trace.Error(r.holderName(m), m.name, err)
		return nil, err
	}
	trace.Return(r.holderName(m), m.name, result)
	return result, nil
}

// CallSynthesized runs a method whose body was synthesized by the
// registry. Handler triggers call back into inv; every other body runs
// without it. Bodies the registry did not make give E_OPAQUE.
func (r *Registry) CallSynthesized(m *Method, self types.Value, args []types.Value, inv Invoker) (types.Value, error) {
	holder := r.holderName(m)
	trace.Dispatch(holder, m.name, self, args)

	result, err := r.runSynthesized(m, self, args, inv)
	if err != nil {
		trace.Error(holder, m.name, err)
		return nil, err
	}
	trace.Return(holder, m.name, result)
	return result, nil
}

func (r *Registry) runSynthesized(m *Method, self types.Value, args []types.Value, inv Invoker) (types.Value, error) {
	switch body := m.Body().(type) {
	case Empty:
		return types.Void, nil

	case FieldGet:
		obj, err := receiver(m, self)
		if err != nil {
			return nil, err
		}
		if v, ok := obj.Field(body.Field); ok {
			return v, nil
		}
		return types.Void, nil

	case FieldSet:
		obj, err := receiver(m, self)
		if err != nil {
			return nil, err
		}
		if err := wantArgs(m, args, 1); err != nil {
			return nil, err
		}
		obj.SetField(body.Field, args[0])
		return types.Void, nil

	case StaticFieldGet:
		cell, err := r.staticCell(body.Class, body.Field)
		if err != nil {
			return nil, err
		}
		return cell.Load(), nil

	case StaticFieldSet:
		if err := wantArgs(m, args, 1); err != nil {
			return nil, err
		}
		cell, err := r.staticCell(body.Class, body.Field)
		if err != nil {
			return nil, err
		}
		cell.Store(args[0])
		return types.Void, nil

	case HandlerAdd:
		if err := wantArgs(m, args, 1); err != nil {
			return nil, err
		}
		set, err := r.handlerSet(m, self, body.Field)
		if err != nil {
			return nil, err
		}
		set.Add(args[0])
		return types.Void, nil

	case HandlerRemove:
		if err := wantArgs(m, args, 1); err != nil {
			return nil, err
		}
		set, err := r.handlerSet(m, self, body.Field)
		if err != nil {
			return nil, err
		}
		set.Remove(args[0])
		return types.Void, nil

	case HandlerTrigger:
		set, err := r.handlerSet(m, self, body.Field)
		if err != nil {
			return nil, err
		}
		if set.Len() > 0 && inv == nil {
			return nil, types.Errorf(types.E_OPAQUE, "%s needs an evaluator to call its handlers", m.FullName())
		}
		for _, handler := range set.Items() {
			if _, err := inv.CallValue(handler, args); err != nil {
				return nil, err
			}
		}
		return types.Void, nil

	case TypeOf:
		c, ok := r.Lookup(body.Class)
		if !ok {
			return nil, types.Errorf(types.E_MEMBERNF, "class %s is not registered", body.Class)
		}
		return r.TypeInfo(c)

	case nil:
		return nil, types.Errorf(types.E_OPAQUE, "%s is abstract", m.FullName())
	}
	return nil, types.Errorf(types.E_OPAQUE, "%s has a body only an evaluator can run", m.FullName())
}

func (r *Registry) holderName(m *Method) string {
	if c, ok := r.ByID(m.holder); ok {
		return c.name
	}
	return "?"
}

func receiver(m *Method, self types.Value) (*types.ObjValue, error) {
	obj, ok := self.(*types.ObjValue)
	if !ok {
		kind := types.KindVoid
		if self != nil {
			kind = self.Kind()
		}
		return nil, types.Errorf(types.E_ARGS, "%s needs an object receiver, got %s", m.FullName(), kind)
	}
	return obj, nil
}

func wantArgs(m *Method, args []types.Value, n int) error {
	if len(args) != n {
		return types.Errorf(types.E_ARGS, "%s expects %d argument(s), got %d", m.FullName(), n, len(args))
	}
	return nil
}

func (r *Registry) staticCell(className, fieldName string) (*SharedValue, error) {
	c, ok := r.Lookup(className)
	if !ok {
		return nil, types.Errorf(types.E_MEMBERNF, "class %s is not registered", className)
	}
	f, ok := c.Field(fieldName)
	if !ok || f.shared == nil {
		return nil, types.Errorf(types.E_MEMBERNF, "%s has no static field %s", className, fieldName)
	}
	return f.shared, nil
}

// handlerSet finds the handler set of an event: the shared value of a
// static event, otherwise the receiver's field. A missing or overwritten
// set is replaced by a fresh one.
func (r *Registry) handlerSet(m *Method, self types.Value, fieldName string) (*types.SetValue, error) {
	if m.IsStatic() {
		cell, err := r.staticCell(r.holderName(m), fieldName)
		if err != nil {
			return nil, err
		}
		if set, ok := cell.Load().(*types.SetValue); ok {
			return set, nil
		}
		set := types.NewSet()
		cell.Store(set)
		return set, nil
	}

	obj, err := receiver(m, self)
	if err != nil {
		return nil, err
	}
	if v, ok := obj.Field(fieldName); ok {
		if set, ok := v.(*types.SetValue); ok {
			return set, nil
		}
	}
	set := types.NewSet()
	obj.SetField(fieldName, set)
	return set, nil
}
