package types

import "time"

// DurationValue represents a time span
type DurationValue struct {
	val time.Duration
}

// NewDuration creates a new DurationValue
func NewDuration(d time.Duration) DurationValue {
	return DurationValue{val: d}
}

// Val returns the underlying duration
func (d DurationValue) Val() time.Duration { return d.val }

func (d DurationValue) Kind() Kind { return KindDuration }

func (d DurationValue) Class() ClassID { return KindDuration.ClassID() }

func (d DurationValue) String() string { return d.val.String() }

func (d DurationValue) Clone() Value { return d }

func (d DurationValue) IsEmpty() bool { return false }

func (d DurationValue) sealed() {}

func (d DurationValue) equal(other Value) (bool, error) {
	x, err := AsDuration(other)
	if err != nil {
		return false, err
	}
	return d.val == x, nil
}

func (d DurationValue) compare(other Value) (int, error) {
	x, err := AsDuration(other)
	if err != nil {
		return 0, err
	}
	return cmpInt64(int64(d.val), int64(x)), nil
}

func (d DurationValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		if t, ok := rhs.(DateValue); ok {
			return NewDate(t.val.Add(d.val)), nil
		}
	case OpSub, OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, d, rhs)
	}

	x, err := AsDuration(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return NewDuration(d.val + x), nil
	case OpSub:
		return NewDuration(d.val - x), nil
	default:
		return relational(op, cmpInt64(int64(d.val), int64(x))), nil
	}
}

func (d DurationValue) getProperty(name string) (Value, error) {
	v := d.val
	switch name {
	case "days":
		return NewInt(int32(v / (24 * time.Hour))), nil
	case "hours":
		return NewInt(int32(v / time.Hour % 24)), nil
	case "minutes":
		return NewInt(int32(v / time.Minute % 60)), nil
	case "seconds":
		return NewInt(int32(v / time.Second % 60)), nil
	case "milliseconds":
		return NewInt(int32(v / time.Millisecond % 1000)), nil
	case "totalDays":
		return NewFloat(v.Hours() / 24), nil
	case "totalHours":
		return NewFloat(v.Hours()), nil
	case "totalMinutes":
		return NewFloat(v.Minutes()), nil
	case "totalSeconds":
		return NewFloat(v.Seconds()), nil
	case "totalMilliseconds":
		return NewFloat(float64(v) / float64(time.Millisecond)), nil
	case "ticks":
		return NewLongFromInt64(int64(v / 100)), nil
	}
	return nil, propertyError(d, name)
}
