package zensend

import "strings"

type formParam struct {
	key   string
	value string
}

// formParams is an ordered application/x-www-form-urlencoded parameter list.
// url.Values sorts its keys on Encode, the API expects declaration order.
type formParams []formParam

func (p formParams) add(key, value string) formParams {
	return append(p, formParam{key: key, value: value})
}

// addOptional appends the pair only when value is present.
func (p formParams) addOptional(key string, value *string) formParams {
	if value == nil {
		return p
	}
	return p.add(key, *value)
}

// Encode joins the escaped pairs with '&' in insertion order.
func (p formParams) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		formEscape(&sb, param.key)
		sb.WriteByte('=')
		formEscape(&sb, param.value)
	}
	return sb.String()
}

const upperHex = "0123456789ABCDEF"

// formEscape applies the WHATWG form-urlencoded byte serializer: ASCII
// alphanumerics and "*-._" pass through, space becomes '+', every other
// byte is percent-encoded. url.QueryEscape differs on '*' and '~'.
func formEscape(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '*', c == '-', c == '.', c == '_':
			sb.WriteByte(c)
		case c == ' ':
			sb.WriteByte('+')
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[c>>4])
			sb.WriteByte(upperHex[c&15])
		}
	}
}
