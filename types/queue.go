package types

import (
	"iter"
	"slices"
)

// QueueValue represents a FIFO sequence; the front is the first item
type QueueValue struct {
	items []Value
}

// NewQueue creates a queue whose front is items[0]
func NewQueue(items ...Value) *QueueValue {
	return &QueueValue{items: slices.Clone(items)}
}

// Len returns the number of queued items
func (q *QueueValue) Len() int { return len(q.items) }

// Items returns the items front to back
func (q *QueueValue) Items() []Value { return slices.Clone(q.items) }

// Enqueue adds v at the back
func (q *QueueValue) Enqueue(v Value) { q.items = append(q.items, v) }

// Dequeue removes and returns the front item
func (q *QueueValue) Dequeue() (Value, bool) {
	if len(q.items) == 0 {
		return Void, false
	}
	v := q.items[0]
	q.items = slices.Delete(q.items, 0, 1)
	return v, true
}

// Peek returns the front item without removing it
func (q *QueueValue) Peek() (Value, bool) {
	if len(q.items) == 0 {
		return Void, false
	}
	return q.items[0], true
}

func (q *QueueValue) Kind() Kind { return KindQueue }

func (q *QueueValue) Class() ClassID { return KindQueue.ClassID() }

func (q *QueueValue) String() string { return "queue[" + joinItems(q.items) + "]" }

func (q *QueueValue) Clone() Value { return &QueueValue{items: cloneItems(q.items)} }

func (q *QueueValue) IsEmpty() bool { return len(q.items) == 0 }

func (q *QueueValue) sealed() {}

func (q *QueueValue) equal(other Value) (bool, error) {
	items, err := AsSlice(other)
	if err != nil {
		return false, err
	}
	return equalItems(q.items, items), nil
}

func (q *QueueValue) compare(other Value) (int, error) {
	items, err := AsSlice(other)
	if err != nil {
		return 0, err
	}
	return compareItems(q.items, items), nil
}

func (q *QueueValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	if op == OpContains {
		return NewBool(containsItem(q.items, rhs)), nil
	}
	return defaultBinary(op, q, rhs)
}

func (q *QueueValue) getProperty(name string) (Value, error) {
	switch name {
	case "size", "empty":
		return sequenceProperty(q, name, len(q.items), nil)
	}
	return nil, propertyError(q, name)
}

func (q *QueueValue) enumerate() iter.Seq2[Value, Value] {
	return unkeyedItems(slices.Clone(q.items))
}
