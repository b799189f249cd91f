package numbers

import (
	"fmt"
	"math"
)

// Kind is the representation a Number is held in.
type Kind int

const (
	Invalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	BigInt
	Float32
	Float64
	BigDecimal
)

func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case BigInt:
		return "bigint"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case BigDecimal:
		return "bigdecimal"
	}
	return "invalid"
}

// KindFromString returns the Kind named by s as returned by Kind.String.
func KindFromString(s string) (Kind, error) {
	for k := Int8; k <= BigDecimal; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("unknown number kind %q", s)
}

func (k Kind) isFixedInteger() bool {
	return k >= Int8 && k <= Int64
}

func (k Kind) bounds() (int64, int64) {
	switch k {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}
