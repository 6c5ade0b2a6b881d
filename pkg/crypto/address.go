package crypto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

const addressPrefix = "0x"

// NormalizeAddress returns the canonical 0x-prefixed form of an account address.
// Non-string values are formatted with fmt.Sprint. The hex casing of the input is
// kept as is, so normalizing an already normalized address returns it unchanged.
func NormalizeAddress(v any) (string, error) {
	if isNil(v) {
		return "", types.ErrMissingAddress
	}
	var addr string
	switch a := v.(type) {
	case string:
		addr = a
	case fmt.Stringer:
		addr = a.String()
	default:
		addr = fmt.Sprint(v)
	}
	if addr == "" {
		return "", types.ErrMissingAddress
	}
	if !strings.HasPrefix(addr, addressPrefix) {
		addr = addressPrefix + addr
	}
	if !isHex(addr[len(addressPrefix):]) {
		return "", fmt.Errorf("%w: %s", types.ErrInvalidAddress, addr)
	}
	return addr, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
