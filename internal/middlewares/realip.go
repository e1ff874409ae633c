package middlewares

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// RealIPMiddleware sets r.RemoteAddr to the client address carried in
// X-Forwarded-For or X-Real-IP, but only for connections coming from one of
// the trusted proxies. Any other peer keeps its socket address, whatever
// headers it sends.
func RealIPMiddleware(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if peer, ok := parseHost(r.RemoteAddr); ok && isTrusted(peer, trusted) {
				if ip, ok := forwardedClient(r.Header, trusted); ok {
					r.RemoteAddr = ip.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// forwardedClient walks X-Forwarded-For from the closest hop and returns the
// first address that is not a trusted proxy. Hops left of it are written by
// the client and are ignored.
func forwardedClient(h http.Header, trusted []netip.Prefix) (netip.Addr, bool) {
	var hops []string
	for _, v := range h.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}

	seen := false
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		seen = true
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return netip.Addr{}, false
		}
		if addr = addr.Unmap(); !isTrusted(addr, trusted) {
			return addr, true
		}
	}
	if seen {
		return netip.Addr{}, false
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(h.Get("X-Real-IP")))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func parseHost(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
