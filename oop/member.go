package oop

import (
	"addy/types"
	"slices"
	"sync"
)

// Scope is the visibility of a class member
type Scope int

const (
	ScopePrivate Scope = iota
	ScopeProtected
	ScopePublic
)

var scopeNames = [...]string{
	ScopePrivate:   "private",
	ScopeProtected: "protected",
	ScopePublic:    "public",
}

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// ParseScope converts "private", "protected" or "public" to a Scope
func ParseScope(s string) (Scope, bool) {
	for i, name := range scopeNames {
		if name == s {
			return Scope(i), true
		}
	}
	return ScopePublic, false
}

// Modifier qualifies a class or a member
type Modifier int

const (
	ModDefault Modifier = iota
	ModStatic
	ModFinal
	ModAbstract
)

var modifierNames = [...]string{
	ModDefault:  "default",
	ModStatic:   "static",
	ModFinal:    "final",
	ModAbstract: "abstract",
}

func (m Modifier) String() string {
	if m < 0 || int(m) >= len(modifierNames) {
		return "unknown"
	}
	return modifierNames[m]
}

// ParseModifier converts a modifier keyword to a Modifier. The empty
// string means ModDefault.
func ParseModifier(s string) (Modifier, bool) {
	if s == "" {
		return ModDefault, true
	}
	for i, name := range modifierNames {
		if name == s {
			return Modifier(i), true
		}
	}
	return ModDefault, false
}

// MemberKind is a bit mask selecting member categories in lookups
type MemberKind uint8

const (
	MemberConstructor MemberKind = 1 << iota // 1
	MemberIndexer                            // 2
	MemberField                              // 4
	MemberProperty                           // 8
	MemberMethod                             // 16
	MemberEvent                              // 32

	MemberNone MemberKind = 0
	MemberAll             = MemberConstructor | MemberIndexer | MemberField | MemberProperty | MemberMethod | MemberEvent
)

// Has checks if any of the given kinds is selected
func (k MemberKind) Has(kind MemberKind) bool {
	return k&kind != 0
}

// String names a single member kind
func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberIndexer:
		return "indexer"
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	case MemberMethod:
		return "method"
	case MemberEvent:
		return "event"
	case MemberAll:
		return "all"
	case MemberNone:
		return "none"
	}
	return "mixed"
}

// PropertyAccess says which accessors an auto property gets
type PropertyAccess uint8

const (
	AccessRead  PropertyAccess = 1 << 0
	AccessWrite PropertyAccess = 1 << 1

	AccessNone      PropertyAccess = 0
	AccessReadWrite                = AccessRead | AccessWrite
)

// Has checks if an access flag is set
func (a PropertyAccess) Has(flag PropertyAccess) bool {
	return a&flag != 0
}

// Reserved member names
const (
	IndexerName = "[item]"
	KeyParam    = "__key"
	WriterParam = "__value"
)

// ReaderName is the name of the method reading property prop
func ReaderName(prop string) string { return "__read_" + prop }

// WriterName is the name of the method writing property prop
func WriterName(prop string) string { return "__write_" + prop }

// BackingFieldName is the field an auto property stores its value in
func BackingFieldName(prop string) string { return "__" + prop }

// HandlerSetName is the field holding the handlers of event ev
func HandlerSetName(ev string) string { return "__" + ev + "_handlers" }

// AddHandlerName is the method subscribing to event ev
func AddHandlerName(ev string) string { return "add_" + ev }

// RemoveHandlerName is the method unsubscribing from event ev
func RemoveHandlerName(ev string) string { return "remove_" + ev }

// TriggerName is the method raising event ev
func TriggerName(ev string) string { return "trigger_" + ev }

// Member is implemented by Field, Property, Method and Event
type Member interface {
	Name() string
	Kind() MemberKind
	Scope() Scope
	Modifier() Modifier
	// Holder is the id of the declaring class, or ClassNone before registration
	Holder() types.ClassID
	FullName() string
	Attributes() []types.Value
	base() *member
}

// member holds what every kind of member carries.
// The holder is set once, when the declaring class is defined.
type member struct {
	name       string
	scope      Scope
	modifier   Modifier
	attrs      []types.Value
	holder     types.ClassID
	holderName string
}

func (m *member) Name() string { return m.name }
func (m *member) Scope() Scope { return m.scope }
func (m *member) Modifier() Modifier { return m.modifier }
func (m *member) Holder() types.ClassID { return m.holder }
func (m *member) base() *member { return m }

// IsStatic reports whether the member belongs to the class rather than its instances
func (m *member) IsStatic() bool { return m.modifier == ModStatic }

// FullName returns Class::name once the member is registered
func (m *member) FullName() string {
	if m.holder == types.ClassNone {
		return m.name
	}
	return m.holderName + "::" + m.name
}

func (m *member) Attributes() []types.Value { return slices.Clone(m.attrs) }

func (m *member) bind(c *Class) error {
	if m.holder != types.ClassNone {
		return types.Errorf(types.E_DUPLICATE, "%s is already declared by %s", m.name, m.holderName)
	}
	m.holder = c.id
	m.holderName = c.name
	return nil
}

func (m *member) unbind() {
	m.holder = types.ClassNone
	m.holderName = ""
}

// SharedValue is the storage cell of a static field
type SharedValue struct {
	mu  sync.RWMutex
	val types.Value
}

// NewSharedValue creates a cell holding v
func NewSharedValue(v types.Value) *SharedValue {
	return &SharedValue{val: v}
}

// Load reads the cell; an unset cell reads Void
func (s *SharedValue) Load() types.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.val == nil {
		return types.Void
	}
	return s.val
}

// Store replaces the content of the cell
func (s *SharedValue) Store(v types.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = v
}

// Initializer computes the starting value of a field
type Initializer interface {
	Initial() types.Value
}

// Literal initialises a field with a clone of Value
type Literal struct {
	Value types.Value
}

func (l Literal) Initial() types.Value {
	if l.Value == nil {
		return types.Void
	}
	return l.Value.Clone()
}

// EmptySet initialises a field with a fresh empty Set
type EmptySet struct{}

func (EmptySet) Initial() types.Value { return types.NewSet() }

// Expr is an initializer expression only an evaluator can compute.
// Without one the field starts as Void.
type Expr struct {
	Body types.Body
}

func (Expr) Initial() types.Value { return types.Void }

// Field is a data slot of a class. Static fields keep their value in a
// SharedValue created when the class is defined.
type Field struct {
	member
	init   Initializer
	shared *SharedValue
}

// NewField creates a field; init may be nil
func NewField(name string, scope Scope, mod Modifier, init Initializer, attrs ...types.Value) *Field {
	return &Field{
		member: member{name: name, scope: scope, modifier: mod, attrs: attrs},
		init:   init,
	}
}

func (f *Field) Kind() MemberKind { return MemberField }

// Initializer returns the declared initializer, possibly nil
func (f *Field) Initializer() Initializer { return f.init }

// Shared returns the storage of a static field, or nil
func (f *Field) Shared() *SharedValue { return f.shared }

// Initial computes a fresh starting value
func (f *Field) Initial() types.Value {
	if f.init == nil {
		return types.Void
	}
	return f.init.Initial()
}

// Method is a named function of a class. A class constructor is a method
// named after its class.
type Method struct {
	member
	fn   *types.Function
	ctor bool
}

// NewMethod creates a method. The function's name is forced to name; a nil
// function means an abstract method with no parameters.
func NewMethod(name string, scope Scope, mod Modifier, fn *types.Function, attrs ...types.Value) *Method {
	f := types.Function{Name: name}
	if fn != nil {
		f = *fn
		f.Name = name
	}
	return &Method{
		member: member{name: name, scope: scope, modifier: mod, attrs: attrs},
		fn:     &f,
	}
}

func (m *Method) Kind() MemberKind {
	if m.ctor {
		return MemberConstructor
	}
	return MemberMethod
}

// Function returns the parameter list and body
func (m *Method) Function() *types.Function { return m.fn }

// Params returns the formal parameters
func (m *Method) Params() []types.Parameter { return slices.Clone(m.fn.Params) }

// Body returns the opaque body, nil for abstract methods
func (m *Method) Body() types.Body { return m.fn.Body }

// Property is a pair of accessor methods. A property declared with access
// flags but no bodies is an auto property: its accessors are synthesized
// around a private backing field when the class is defined.
type Property struct {
	member
	reader *Method
	writer *Method
	auto   bool
}

// NewProperty creates an auto property with the accessors selected by access
func NewProperty(name string, scope Scope, mod Modifier, access PropertyAccess, attrs ...types.Value) *Property {
	p := &Property{
		member: member{name: name, scope: scope, modifier: mod, attrs: attrs},
		auto:   mod != ModAbstract && name != IndexerName,
	}
	if access.Has(AccessRead) {
		p.reader = NewMethod(ReaderName(name), scope, mod, &types.Function{Params: p.readerParams()})
	}
	if access.Has(AccessWrite) {
		p.writer = NewMethod(WriterName(name), scope, mod, &types.Function{Params: p.writerParams()})
	}
	return p
}

// NewAccessorProperty creates a property with explicit accessor bodies.
// A nil body means no accessor.
func NewAccessorProperty(name string, scope Scope, mod Modifier, reader, writer types.Body, attrs ...types.Value) *Property {
	p := &Property{member: member{name: name, scope: scope, modifier: mod, attrs: attrs}}
	if reader != nil {
		p.reader = NewMethod(ReaderName(name), scope, mod, &types.Function{Params: p.readerParams(), Body: reader})
	}
	if writer != nil {
		p.writer = NewMethod(WriterName(name), scope, mod, &types.Function{Params: p.writerParams(), Body: writer})
	}
	return p
}

func (p *Property) readerParams() []types.Parameter {
	if p.IsIndexer() {
		return []types.Parameter{{Name: KeyParam}}
	}
	return nil
}

func (p *Property) writerParams() []types.Parameter {
	if p.IsIndexer() {
		return []types.Parameter{{Name: KeyParam}, {Name: WriterParam}}
	}
	return []types.Parameter{{Name: WriterParam}}
}

func (p *Property) Kind() MemberKind {
	if p.IsIndexer() {
		return MemberIndexer
	}
	return MemberProperty
}

// IsIndexer reports whether the property is the class indexer
func (p *Property) IsIndexer() bool { return p.name == IndexerName }

// IsAuto reports whether the accessors are synthesized
func (p *Property) IsAuto() bool { return p.auto }

func (p *Property) Reader() *Method { return p.reader }
func (p *Property) Writer() *Method { return p.writer }
func (p *Property) CanRead() bool { return p.reader != nil }
func (p *Property) CanWrite() bool { return p.writer != nil }

// Event is a named notification. Defining a class with an event adds a
// private handler set, add_/remove_ methods and a private trigger_ method.
type Event struct {
	member
	params []types.Parameter
}

// NewEvent creates an event whose handlers take params
func NewEvent(name string, scope Scope, mod Modifier, params []types.Parameter, attrs ...types.Value) *Event {
	return &Event{
		member: member{name: name, scope: scope, modifier: mod, attrs: attrs},
		params: slices.Clone(params),
	}
}

func (e *Event) Kind() MemberKind { return MemberEvent }

// Parameters returns the handler signature
func (e *Event) Parameters() []types.Parameter { return slices.Clone(e.params) }

// storageModifier keeps static members static and drops everything else
func storageModifier(mod Modifier) Modifier {
	if mod == ModStatic {
		return ModStatic
	}
	return ModDefault
}
