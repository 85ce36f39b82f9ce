package ddns

import (
	"context"
	"fmt"
	"strings"
)

// FromString constructs a resolver that always returns addr.
// It is useful for pinning the record to a known address without polling any service.
func FromString(addr string) (Resolver, error) {
	addr = strings.TrimSpace(addr)
	if !IsDottedQuad(addr) {
		return nil, fmt.Errorf("%q is not a dotted quad IP", addr)
	}
	return stringResolver(addr), nil
}

type stringResolver string

func (s stringResolver) Resolve(context.Context) (string, error) {
	return string(s), nil
}
