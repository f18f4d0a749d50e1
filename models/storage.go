package models

import (
	"slices"

	"github.com/samber/lo"

	C "github.com/qauzy/proxydump/constant"
)

// ProxyStorage is the finished collection produced by the checker.
type ProxyStorage struct {
	proxies []Proxy
}

func NewProxyStorage(proxies ...Proxy) *ProxyStorage {
	s := &ProxyStorage{}
	s.Add(proxies...)
	return s
}

func (s *ProxyStorage) Add(proxies ...Proxy) {
	s.proxies = append(s.proxies, proxies...)
}

func (s *ProxyStorage) Len() int {
	return len(s.proxies)
}

// All returns a copy, callers may sort it freely.
func (s *ProxyStorage) All() []Proxy {
	out := make([]Proxy, len(s.proxies))
	copy(out, s.proxies)
	return out
}

// Group is one protocol's share of the storage.
type Group struct {
	Protocol C.Protocol
	Proxies  []Proxy
}

// Grouped partitions the storage by protocol. Groups come in protocol order
// and keep insertion order inside; empty protocols are omitted.
func (s *ProxyStorage) Grouped() []Group {
	byProto := lo.GroupBy(s.proxies, func(p Proxy) C.Protocol {
		return p.Protocol
	})
	keys := lo.Keys(byProto)
	slices.Sort(keys)
	return lo.Map(keys, func(proto C.Protocol, _ int) Group {
		return Group{Protocol: proto, Proxies: byProto[proto]}
	})
}
