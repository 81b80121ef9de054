package types

import (
	"math"
	"time"
)

// DateLayout is the text form of a Date
const DateLayout = time.DateTime

// ticks between 0001-01-01 and the Unix epoch, in 100ns units
const epochTicks = 62135596800 * 10_000_000

// DateValue represents a calendar timestamp
type DateValue struct {
	val time.Time
}

// NewDate creates a new DateValue
func NewDate(t time.Time) DateValue {
	return DateValue{val: t}
}

// Val returns the underlying time
func (d DateValue) Val() time.Time { return d.val }

func (d DateValue) Kind() Kind { return KindDate }

func (d DateValue) Class() ClassID { return KindDate.ClassID() }

func (d DateValue) String() string { return d.val.Format(DateLayout) }

func (d DateValue) Clone() Value { return d }

func (d DateValue) IsEmpty() bool { return false }

func (d DateValue) sealed() {}

func (d DateValue) equal(other Value) (bool, error) {
	t, err := AsTime(other)
	if err != nil {
		return false, err
	}
	return d.val.Equal(t), nil
}

func (d DateValue) compare(other Value) (int, error) {
	t, err := AsTime(other)
	if err != nil {
		return 0, err
	}
	return d.val.Compare(t), nil
}

func (d DateValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		span, err := spanOf(rhs)
		if err != nil {
			return nil, err
		}
		return NewDate(d.val.Add(span)), nil
	case OpSub:
		if t, ok := rhs.(DateValue); ok {
			return NewDuration(d.val.Sub(t.val)), nil
		}
		span, err := spanOf(rhs)
		if err != nil {
			return nil, err
		}
		return NewDate(d.val.Add(-span)), nil
	case OpLt, OpLe, OpGt, OpGe:
		t, err := AsTime(rhs)
		if err != nil {
			return nil, err
		}
		return relational(op, d.val.Compare(t)), nil
	}
	return defaultBinary(op, d, rhs)
}

// spanOf reads a Duration, or a number of days
func spanOf(v Value) (time.Duration, error) {
	if dur, ok := v.(DurationValue); ok {
		return dur.val, nil
	}
	days, err := AsFloat(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(math.Round(days * float64(24*time.Hour))), nil
}

func (d DateValue) getProperty(name string) (Value, error) {
	t := d.val
	switch name {
	case "date":
		return NewDate(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())), nil
	case "time":
		return NewDate(time.Date(1, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())), nil
	case "year":
		return NewInt(int32(t.Year())), nil
	case "month":
		return NewInt(int32(t.Month())), nil
	case "day":
		return NewInt(int32(t.Day())), nil
	case "yearday":
		return NewInt(int32(t.YearDay())), nil
	case "weekday":
		return NewStr(t.Weekday().String()), nil
	case "hour":
		return NewInt(int32(t.Hour())), nil
	case "minute":
		return NewInt(int32(t.Minute())), nil
	case "second":
		return NewInt(int32(t.Second())), nil
	case "millisecond":
		return NewInt(int32(t.Nanosecond() / int(time.Millisecond))), nil
	case "ticks":
		return NewLongFromInt64(t.Unix()*10_000_000 + int64(t.Nanosecond())/100 + epochTicks), nil
	}
	return nil, propertyError(d, name)
}
