package numbers

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

type postfix struct {
	marker string
	kind   Kind
	// decimalOnly markers are hex digits, so they are only recognized in radix 10.
	decimalOnly bool
}

// postfixes is ordered so that two character markers win over their last character.
var postfixes = []postfix{
	{marker: "bi", kind: BigInt},
	{marker: "bd", kind: BigDecimal, decimalOnly: true},
	{marker: "y", kind: Int8},
	{marker: "s", kind: Int16},
	{marker: "l", kind: Int64},
	{marker: "f", kind: Float32, decimalOnly: true},
	{marker: "d", kind: Float64, decimalOnly: true},
}

func (t *token) matchPostfix() *postfix {
	span := t.content[t.start:t.end]
	for i := range postfixes {
		p := &postfixes[i]
		if p.decimalOnly && t.radix != 10 {
			continue
		}
		if len(span) < len(p.marker) {
			continue
		}
		if strings.EqualFold(span[len(span)-len(p.marker):], p.marker) {
			return p
		}
	}
	return nil
}

// resolveInteger finishes an integer literal. Invalid keeps the tier the digits
// reached; any other kind is range checked and converted.
func (t *token) resolveInteger(a *accumulator, kind Kind) (Number, error) {
	switch {
	case kind == Invalid:
		return a.number(), nil
	case kind == BigInt:
		return NewBigInt(a.bigValue()), nil
	case kind.isFixedInteger():
		if a.tier == tierBig {
			return Number{}, overflow(t.content, kind)
		}
		v := a.int64Value()
		lo, hi := kind.bounds()
		if v < lo || v > hi {
			return Number{}, overflow(t.content, kind)
		}
		return newInteger(kind, v), nil
	}
	return t.resolveDecimal(a.decimalText(), kind)
}

// resolveDecimal finishes a rendered decimal text such as "-12.5E-3".
func (t *token) resolveDecimal(text string, kind Kind) (Number, error) {
	switch kind {
	case Invalid:
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return NewFloat64(f), nil
		}
		if !math.IsInf(f, 0) {
			return Number{}, err
		}
		return t.parseBigDecimal(text, BigDecimal)
	case Float32, Float64:
		bitSize := 64
		if kind == Float32 {
			bitSize = 32
		}
		f, err := strconv.ParseFloat(text, bitSize)
		if err != nil {
			return Number{}, overflow(t.content, kind)
		}
		if kind == Float32 {
			return NewFloat32(float32(f)), nil
		}
		return NewFloat64(f), nil
	case BigDecimal:
		return t.parseBigDecimal(text, kind)
	}
	// integer kinds cannot hold a fraction or an exponent.
	return Number{}, overflow(t.content, kind)
}

func (t *token) parseBigDecimal(text string, kind Kind) (Number, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return Number{}, overflow(t.content, kind)
	}
	return NewDecimal(d), nil
}
