package constant

import (
	"encoding/json"
	"errors"
	"strings"
)

// Protocol is the proxy protocol. The numeric order is the natural sort order.
type Protocol int

const (
	HTTP Protocol = iota + 1
	SOCKS4
	SOCKS5
)

var ErrUnknownProtocol = errors.New("unknown protocol")

// Protocols lists every known protocol in natural order.
var Protocols = []Protocol{HTTP, SOCKS4, SOCKS5}

func (p Protocol) String() string {
	switch p {
	case HTTP:
		return "http"
	case SOCKS4:
		return "socks4"
	case SOCKS5:
		return "socks5"
	default:
		return "unknown"
	}
}

// ParseProtocol accepts the lower or upper case name. https is treated as http.
func ParseProtocol(name string) (Protocol, error) {
	switch strings.ToLower(name) {
	case "http", "https":
		return HTTP, nil
	case "socks4":
		return SOCKS4, nil
	case "socks5":
		return SOCKS5, nil
	default:
		return 0, ErrUnknownProtocol
	}
}

func (p Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Protocol) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	proto, err := ParseProtocol(name)
	if err != nil {
		return err
	}
	*p = proto
	return nil
}
