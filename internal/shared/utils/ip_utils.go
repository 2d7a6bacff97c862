package utils

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the caller address for request logs:
// first X-Forwarded-For entry, then X-Real-IP, then the socket peer.
// IPv4-mapped IPv6 addresses are reported in their IPv4 form.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, ok := parseAddr(first); ok {
			return addr.String()
		}
	}

	if addr, ok := parseAddr(c.GetHeader("X-Real-IP")); ok {
		return addr.String()
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	if addr, ok := parseAddr(host); ok {
		return addr.String()
	}
	return "127.0.0.1"
}

// IsPrivateIP reports loopback and RFC 1918 / RFC 4193 addresses
func IsPrivateIP(ip string) bool {
	addr, ok := parseAddr(ip)
	return ok && (addr.IsPrivate() || addr.IsLoopback())
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
