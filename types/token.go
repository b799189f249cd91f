package types

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Token is the verbatim text of a table cell.
// Plain YAML scalars and JSON numbers are kept as written, so that literals such as
// 0x7f, 1_000 or 1e400 reach the number parser untouched.
type Token string

func (t *Token) UnmarshalYAML(b []byte) error {
	b = bytes.TrimSpace(b)
	if isQuoted(b) {
		var s string
		if err := yaml.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}
	*t = Token(b)
	return nil
}

func (t *Token) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}
	*t = Token(b)
	return nil
}

func isQuoted(b []byte) bool {
	return len(b) > 0 && (b[0] == '"' || b[0] == '\'')
}
