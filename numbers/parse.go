package numbers

import (
	"fmt"
	"strings"
)

// Parse converts a numeric literal into the narrowest Number that holds it exactly.
//
// Integers start as int32 and are promoted to int64 and then *big.Int as digits
// overflow. A fraction or an exponent yields a float64, or an *apd.Decimal when
// the value does not fit a float64. A trailing postfix (y, s, l, bi, f, d, bd)
// pins the kind instead.
//
// ok is false when text is not a numeric literal. err is an *OverflowError when
// the literal is valid but the pinned kind cannot hold it.
func Parse(text string) (n Number, ok bool, err error) {
	return parse(text, Invalid)
}

// ParseAs is like Parse, but a literal without postfix is converted to kind.
func ParseAs(text string, kind Kind) (Number, bool, error) {
	if kind < Invalid || kind > BigDecimal {
		return Number{}, false, fmt.Errorf("unsupported number kind %d", kind)
	}
	return parse(text, kind)
}

func parse(text string, kind Kind) (Number, bool, error) {
	t, ok := newToken(text)
	if !ok {
		return Number{}, false, nil
	}
	if p := t.matchPostfix(); p != nil {
		if !t.trimPostfix(len(p.marker)) {
			return Number{}, false, nil
		}
		kind = p.kind
	}
	return t.parse(kind)
}

func (t *token) parse(kind Kind) (Number, bool, error) {
	acc := newAccumulator(t.radix, t.negative)
	for t.more() {
		c := t.next()
		if t.isSeparator(c, t.radix) {
			continue
		}
		d := digit(c, t.radix)
		if d < 0 {
			switch {
			case t.isDot(c):
				return t.parseFraction(acc.decimalText(), kind)
			case t.isExponent(c):
				return t.parseExponent(newDecimalBuilder(acc.decimalText(), len(t.content)), kind)
			}
			return Number{}, false, nil
		}
		acc.append(d)
	}
	return finish(t.resolveInteger(acc, kind))
}

func finish(n Number, err error) (Number, bool, error) {
	if err != nil {
		return Number{}, false, err
	}
	return n, true, nil
}

func newDecimalBuilder(prefix string, size int) *strings.Builder {
	b := &strings.Builder{}
	b.Grow(len(prefix) + size + 2)
	b.WriteString(prefix)
	return b
}
