package types

// Cross-kind comparisons inside the numeric tower. Both operands are
// lifted to the wider of their two kinds before comparing, so that
// Integer 1, Long 1, Rational 1/1, Float 1.0 and Decimal 1 are all equal.

func numericEqual(a, b Value) (bool, error) {
	switch k := max(a.Kind(), b.Kind()); {
	case k <= KindLong:
		x, err := AsBigInt(a)
		if err != nil {
			return false, err
		}
		y, err := AsBigInt(b)
		if err != nil {
			return false, err
		}
		return x.Cmp(y) == 0, nil
	case k == KindRational:
		x, err := AsRational(a)
		if err != nil {
			return false, err
		}
		y, err := AsRational(b)
		if err != nil {
			return false, err
		}
		return x.Cmp(y) == 0, nil
	case k == KindFloat:
		x, err := AsFloat(a)
		if err != nil {
			return false, err
		}
		y, err := AsFloat(b)
		if err != nil {
			return false, err
		}
		return floatEqual(x, y), nil
	case k == KindDecimal:
		x, err := AsDecimal(a)
		if err != nil {
			return false, err
		}
		y, err := AsDecimal(b)
		if err != nil {
			return false, err
		}
		return x.Equal(y), nil
	default:
		x, err := AsComplex(a)
		if err != nil {
			return false, err
		}
		y, err := AsComplex(b)
		if err != nil {
			return false, err
		}
		return floatEqual(real(x), real(y)) && floatEqual(imag(x), imag(y)), nil
	}
}

func numericCompare(a, b Value) (int, error) {
	switch k := max(a.Kind(), b.Kind()); {
	case k <= KindLong:
		x, err := AsBigInt(a)
		if err != nil {
			return 0, err
		}
		y, err := AsBigInt(b)
		if err != nil {
			return 0, err
		}
		return x.Cmp(y), nil
	case k == KindRational:
		x, err := AsRational(a)
		if err != nil {
			return 0, err
		}
		y, err := AsRational(b)
		if err != nil {
			return 0, err
		}
		return x.Cmp(y), nil
	case k == KindFloat:
		x, err := AsFloat(a)
		if err != nil {
			return 0, err
		}
		y, err := AsFloat(b)
		if err != nil {
			return 0, err
		}
		return compareFloat(x, y)
	case k == KindDecimal:
		x, err := AsDecimal(a)
		if err != nil {
			return 0, err
		}
		y, err := AsDecimal(b)
		if err != nil {
			return 0, err
		}
		return x.Cmp(y), nil
	default:
		x, err := AsComplex(a)
		if err != nil {
			return 0, err
		}
		y, err := AsComplex(b)
		if err != nil {
			return 0, err
		}
		if imag(x) != 0 || imag(y) != 0 {
			return 0, Errorf(E_CAST, "complex numbers are not ordered")
		}
		return compareFloat(real(x), real(y))
	}
}
