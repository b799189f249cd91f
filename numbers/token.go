package numbers

// token is the cursor over a single literal.
// [start, end) is the digit span: sign, radix prefix and postfix marker are outside of it.
type token struct {
	content  string
	start    int
	index    int
	end      int
	negative bool
	radix    int
}

func newToken(content string) (*token, bool) {
	t := &token{content: content, end: len(content), radix: 10}
	if !t.scanSign() {
		return nil, false
	}
	if !t.scanRadix() {
		return nil, false
	}
	t.start = t.index
	return t, true
}

func (t *token) scanSign() bool {
	if t.index == t.end {
		return false
	}
	switch t.content[t.index] {
	case '-':
		t.negative = true
		t.index++
	case '+':
		t.index++
	default:
		return true
	}
	return t.index != t.end
}

func (t *token) scanRadix() bool {
	if t.end-t.index < 2 || t.content[t.index] != '0' {
		return true
	}
	if c := t.content[t.index+1]; c != 'x' && c != 'X' {
		return true
	}
	t.index += 2
	t.radix = 16
	return t.index != t.end
}

// trimPostfix removes n trailing characters from the digit span.
// It reports false when no digit character would be left.
func (t *token) trimPostfix(n int) bool {
	t.end -= n
	return t.end > t.start
}

func (t *token) more() bool {
	return t.index < t.end
}

func (t *token) next() byte {
	c := t.content[t.index]
	t.index++
	return c
}

func (t *token) peek() byte {
	return t.content[t.index]
}

// previous returns the character consumed before the current one.
func (t *token) previous() (byte, bool) {
	if t.index-2 < t.start {
		return 0, false
	}
	return t.content[t.index-2], true
}

func (t *token) afterDigit(radix int) bool {
	c, ok := t.previous()
	return ok && digit(c, radix) >= 0
}

func (t *token) beforeDigit() bool {
	return t.more() && isDecimalDigit(t.peek())
}

// isSeparator reports whether c is a digit separator in a legal position:
// it must follow a digit or another separator and must not end the digit span.
func (t *token) isSeparator(c byte, radix int) bool {
	if c != '_' || !t.more() {
		return false
	}
	prev, ok := t.previous()
	if !ok {
		return false
	}
	return prev == '_' || digit(prev, radix) >= 0
}

func (t *token) isDot(c byte) bool {
	return c == '.' && t.radix == 10 && t.afterDigit(10) && t.beforeDigit()
}

func (t *token) isExponent(c byte) bool {
	if (c != 'e' && c != 'E') || t.radix != 10 || !t.afterDigit(10) || !t.more() {
		return false
	}
	next := t.peek()
	return isDecimalDigit(next) || next == '+' || next == '-'
}
