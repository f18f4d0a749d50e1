package models

import (
	"net"
	"strconv"
	"strings"
	"time"

	C "github.com/qauzy/proxydump/constant"
)

// Proxy is a checked proxy as handed over by the checker. It is never
// mutated by the export pipeline.
type Proxy struct {
	Protocol    C.Protocol
	Host        string
	Port        int
	Username    *string
	Password    *string
	Timeout     *float64 // seconds
	ExitIP      *string
	LastChecked *time.Time
}

// String renders the proxy as [protocol://][user:pass@]host:port.
func (p Proxy) String(includeProtocol bool) string {
	var sb strings.Builder
	if includeProtocol {
		sb.WriteString(p.Protocol.String())
		sb.WriteString("://")
	}
	if p.Username != nil && p.Password != nil {
		sb.WriteString(*p.Username)
		sb.WriteByte(':')
		sb.WriteString(*p.Password)
		sb.WriteByte('@')
	}
	sb.WriteString(net.JoinHostPort(p.Host, strconv.Itoa(p.Port)))
	return sb.String()
}

// IsAnonymous reports whether the exit IP is known and differs from the host.
func (p Proxy) IsAnonymous() bool {
	return p.ExitIP != nil && *p.ExitIP != p.Host
}
