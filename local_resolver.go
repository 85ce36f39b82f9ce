package ddns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// InterfaceResolver constructs a resolver that returns the first IPv4 address reported by the given interfaces.
// If no interfaces are provided then all interfaces will be used, but loopback addresses will be skipped.
//
// This is the resolver to use for records that point at a private network address.
func InterfaceResolver(iface ...string) Resolver {
	return interfaceResolver{ifaces: iface}
}

type interfaceResolver struct {
	ifaces []string
}

func (r interfaceResolver) Resolve(ctx context.Context) (string, error) {
	if len(r.ifaces) == 0 {
		addrs, err := net.InterfaceAddrs()
		if err != nil {
			return "", fmt.Errorf("error getting addresses for interfaces: %w", err)
		}
		addr, err := firstIPv4(addrs)
		if err != nil {
			return "", err
		}
		return addr, nil
	}

	var errs []error
	for _, name := range r.ifaces {
		iface, err := net.InterfaceByName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("error getting interface %s by name: %w", name, err))
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			errs = append(errs, fmt.Errorf("error looking up addresses for interface %s: %w", name, err))
			continue
		}
		addr, err := firstIPv4(addrs)
		if err != nil {
			errs = append(errs, fmt.Errorf("interface %s: %w", name, err))
			continue
		}
		return addr, nil
	}
	return "", errors.Join(errs...)
}

// firstIPv4 picks the first non-loopback IPv4 address.
//
//	addr: ip+net:192.168.86.253/24
//	addr: ip+net:fd64:9f44:fc30:0:b951:8b16:2812:a227/64
func firstIPv4(addrs []net.Addr) (string, error) {
	for _, a := range addrs {
		prefix, err := netip.ParsePrefix(a.String())
		if err != nil {
			continue
		}
		ip := prefix.Addr()
		if ip.IsLoopback() || !ip.Is4() {
			continue
		}
		return ip.String(), nil
	}
	return "", errors.New("no non-loopback IPv4 address found")
}
