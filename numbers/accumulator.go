package numbers

import (
	"math"
	"math/big"
	"strconv"
)

type tier uint8

const (
	tier32 tier = iota
	tier64
	tierBig
)

// accumulator collects digits as the negation of the magnitude so that the
// minimum value of every width stays representable while digits are appended.
// Exactly one of v32, v64 and big is live, selected by tier.
type accumulator struct {
	tier     tier
	radix    int
	negative bool

	v32              int32
	limit32          int32
	limitBeforeMul32 int32

	v64              int64
	limit64          int64
	limitBeforeMul64 int64

	big *big.Int
}

func newAccumulator(radix int, negative bool) *accumulator {
	a := &accumulator{radix: radix, negative: negative}
	if negative {
		a.limit32 = math.MinInt32
		a.limit64 = math.MinInt64
	} else {
		a.limit32 = -math.MaxInt32
		a.limit64 = -math.MaxInt64
	}
	a.limitBeforeMul32 = a.limit32 / int32(radix)
	a.limitBeforeMul64 = a.limit64 / int64(radix)
	return a
}

func (a *accumulator) isOverflow(d int) bool {
	switch a.tier {
	case tier32:
		return a.v32 < a.limitBeforeMul32 || a.v32*int32(a.radix) < a.limit32+int32(d)
	case tier64:
		return a.v64 < a.limitBeforeMul64 || a.v64*int64(a.radix) < a.limit64+int64(d)
	}
	return false
}

// append adds one digit, promoting to the next wider tier when the current one
// cannot hold the result. Promotion never goes back.
func (a *accumulator) append(d int) {
	if a.isOverflow(d) {
		a.promote(d)
		return
	}
	switch a.tier {
	case tier32:
		a.v32 = a.v32*int32(a.radix) - int32(d)
	case tier64:
		a.v64 = a.v64*int64(a.radix) - int64(d)
	case tierBig:
		a.big.Mul(a.big, big.NewInt(int64(a.radix)))
		a.big.Sub(a.big, big.NewInt(int64(d)))
	}
}

func (a *accumulator) promote(d int) {
	switch a.tier {
	case tier32:
		a.v64 = int64(a.v32)*int64(a.radix) - int64(d)
		a.tier = tier64
	case tier64:
		a.big = new(big.Int).Mul(big.NewInt(a.v64), big.NewInt(int64(a.radix)))
		a.big.Sub(a.big, big.NewInt(int64(d)))
		a.tier = tierBig
	}
}

// int64Value returns the signed value of the fixed width tiers.
func (a *accumulator) int64Value() int64 {
	v := a.v64
	if a.tier == tier32 {
		v = int64(a.v32)
	}
	if a.negative {
		return v
	}
	return -v
}

func (a *accumulator) bigValue() *big.Int {
	if a.tier != tierBig {
		return big.NewInt(a.int64Value())
	}
	if a.negative {
		return new(big.Int).Set(a.big)
	}
	return new(big.Int).Neg(a.big)
}

func (a *accumulator) number() Number {
	switch a.tier {
	case tier32:
		return NewInt32(int32(a.int64Value()))
	case tier64:
		return NewInt64(a.int64Value())
	}
	return NewBigInt(a.bigValue())
}

// decimalText renders the signed value in radix 10. A negative zero keeps its
// sign so that literals like -0.5 stay negative once the fraction is appended.
func (a *accumulator) decimalText() string {
	if a.tier == tierBig {
		return a.bigValue().String()
	}
	v := a.int64Value()
	if v == 0 && a.negative {
		return "-0"
	}
	return strconv.FormatInt(v, 10)
}
