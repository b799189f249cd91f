package numbers

import "strings"

func (t *token) parseFraction(prefix string, kind Kind) (Number, bool, error) {
	b := newDecimalBuilder(prefix, len(t.content))
	b.WriteByte('.')
	for t.more() {
		c := t.next()
		if t.isSeparator(c, 10) {
			continue
		}
		if t.isExponent(c) {
			return t.parseExponent(b, kind)
		}
		if !isDecimalDigit(c) {
			return Number{}, false, nil
		}
		b.WriteByte(c)
	}
	return finish(t.resolveDecimal(b.String(), kind))
}

// parseExponent continues right after the exponent marker.
func (t *token) parseExponent(b *strings.Builder, kind Kind) (Number, bool, error) {
	b.WriteByte('E')
	switch t.peek() {
	case '-':
		b.WriteByte('-')
		t.next()
	case '+':
		t.next()
	}
	if !t.more() {
		return Number{}, false, nil
	}
	for t.more() {
		c := t.next()
		if t.isSeparator(c, 10) {
			continue
		}
		if !isDecimalDigit(c) {
			return Number{}, false, nil
		}
		b.WriteByte(c)
	}
	return finish(t.resolveDecimal(b.String(), kind))
}
