package catalog

import (
	"bytes"
	"unicode/utf16"

	"github.com/tidwall/gjson"
)

// literalUnicode rewrites string tokens in a JSON value that carry \uXXXX
// escapes for non-ASCII code points so the text is stored as UTF-8. Strings
// without such escapes, numbers, and literals are copied unchanged.
func literalUnicode(raw []byte) ([]byte, error) {
	if !bytes.Contains(raw, []byte(`\u`)) {
		return raw, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(raw))
	if err := writeLiteral(&buf, gjson.ParseBytes(raw)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLiteral(buf *bytes.Buffer, value gjson.Result) error {
	switch {
	case value.IsObject():
		buf.WriteByte('{')
		var err error
		first := true
		value.ForEach(func(key, member gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err = writeString(buf, key); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = writeLiteral(buf, member)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	case value.IsArray():
		buf.WriteByte('[')
		var err error
		first := true
		value.ForEach(func(_, item gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			err = writeLiteral(buf, item)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte(']')
	case value.Type == gjson.String:
		return writeString(buf, value)
	default:
		buf.WriteString(value.Raw)
	}
	return nil
}

func writeString(buf *bytes.Buffer, value gjson.Result) error {
	if !hasNonASCIIEscape(value.Raw) {
		buf.WriteString(value.Raw)
		return nil
	}
	encoded, err := encodeValue(value.String())
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

// hasNonASCIIEscape reports whether a quoted JSON string escapes a code point
// at or above U+0080. Unpaired surrogates report false so the token is kept
// verbatim rather than decoded to U+FFFD.
func hasNonASCIIEscape(token string) bool {
	found := false
	for i := 0; i < len(token); i++ {
		if token[i] != '\\' || i+1 >= len(token) {
			continue
		}
		if token[i+1] != 'u' {
			i++
			continue
		}
		r, ok := hexRune(token, i+2)
		if !ok {
			return false
		}
		i += 5
		switch {
		case r < 0x80:
		case utf16.IsSurrogate(r):
			if r >= 0xDC00 || i+6 >= len(token) || token[i+1] != '\\' || token[i+2] != 'u' {
				return false
			}
			low, ok := hexRune(token, i+3)
			if !ok || low < 0xDC00 || low > 0xDFFF {
				return false
			}
			i += 6
			found = true
		default:
			found = true
		}
	}
	return found
}

func hexRune(s string, at int) (rune, bool) {
	if at+4 > len(s) {
		return 0, false
	}
	var r rune
	for _, c := range []byte(s[at : at+4]) {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}
