package numbers

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Number is a parsed numeric literal. The zero value has kind Invalid.
type Number struct {
	kind Kind
	i    int64
	f    float64
	bi   *big.Int
	bd   *apd.Decimal
}

func newInteger(kind Kind, v int64) Number {
	return Number{kind: kind, i: v}
}

func NewInt8(v int8) Number   { return newInteger(Int8, int64(v)) }
func NewInt16(v int16) Number { return newInteger(Int16, int64(v)) }
func NewInt32(v int32) Number { return newInteger(Int32, int64(v)) }
func NewInt64(v int64) Number { return newInteger(Int64, v) }

func NewBigInt(v *big.Int) Number {
	return Number{kind: BigInt, bi: new(big.Int).Set(v)}
}

func NewFloat32(v float32) Number { return Number{kind: Float32, f: float64(v)} }
func NewFloat64(v float64) Number { return Number{kind: Float64, f: v} }

func NewDecimal(v *apd.Decimal) Number {
	return Number{kind: BigDecimal, bd: new(apd.Decimal).Set(v)}
}

func (n Number) Kind() Kind {
	return n.kind
}

func (n Number) IsValid() bool {
	return n.kind != Invalid
}

// Int64 returns the value of the fixed width integer kinds.
func (n Number) Int64() (int64, bool) {
	if !n.kind.isFixedInteger() {
		return 0, false
	}
	return n.i, true
}

// Float64 returns the value of Float32 and Float64 numbers.
func (n Number) Float64() (float64, bool) {
	if n.kind != Float32 && n.kind != Float64 {
		return 0, false
	}
	return n.f, true
}

// BigInt returns a copy of the value of any integer kind.
func (n Number) BigInt() (*big.Int, bool) {
	switch {
	case n.kind == BigInt:
		return new(big.Int).Set(n.bi), true
	case n.kind.isFixedInteger():
		return big.NewInt(n.i), true
	}
	return nil, false
}

// Decimal returns a copy of the value of a BigDecimal number.
func (n Number) Decimal() (*apd.Decimal, bool) {
	if n.kind != BigDecimal {
		return nil, false
	}
	return new(apd.Decimal).Set(n.bd), true
}

// Value returns the number as the Go type of its kind:
// int8, int16, int32, int64, *big.Int, float32, float64 or *apd.Decimal.
func (n Number) Value() interface{} {
	switch n.kind {
	case Int8:
		return int8(n.i)
	case Int16:
		return int16(n.i)
	case Int32:
		return int32(n.i)
	case Int64:
		return n.i
	case BigInt:
		return new(big.Int).Set(n.bi)
	case Float32:
		return float32(n.f)
	case Float64:
		return n.f
	case BigDecimal:
		return new(apd.Decimal).Set(n.bd)
	}
	return nil
}

// Equal reports whether n and o have the same kind and value.
// Floating values are compared bitwise, so -0 and 0 differ.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case BigInt:
		return n.bi.Cmp(o.bi) == 0
	case Float32, Float64:
		return math.Float64bits(n.f) == math.Float64bits(o.f)
	case BigDecimal:
		return n.bd.Cmp(o.bd) == 0
	}
	return n.i == o.i
}
