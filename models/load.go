package models

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
)

// LoadProxies decodes a checked proxy list. A JSON array in the structured
// export format is accepted, anything else is read as one
// protocol://[user:pass@]host:port per line. Malformed lines are skipped.
func LoadProxies(data []byte) ([]Proxy, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode proxy json: %w", err)
		}
		return lo.Map(entries, func(e Entry, _ int) Proxy {
			return e.Proxy()
		}), nil
	}

	var proxies []Proxy
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := ParseProxy(line)
		if err != nil {
			log.Warnln("[Input] skip line %d: %s", lineNum, err)
			continue
		}
		proxies = append(proxies, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return proxies, nil
}

// ParseProxy parses protocol://[user:pass@]host:port.
func ParseProxy(raw string) (Proxy, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Proxy{}, err
	}
	proto, err := C.ParseProtocol(u.Scheme)
	if err != nil {
		return Proxy{}, fmt.Errorf("%w: %q", err, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return Proxy{}, fmt.Errorf("missing host in %q", raw)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil || port <= 0 || port > 65535 {
		return Proxy{}, fmt.Errorf("invalid port in %q", raw)
	}

	p := Proxy{Protocol: proto, Host: host, Port: port}
	if u.User != nil {
		username := u.User.Username()
		if password, ok := u.User.Password(); ok {
			p.Username = &username
			p.Password = &password
		}
	}
	return p, nil
}
