package sorting

import (
	"cmp"
	"math"
	"net/netip"
	"slices"
	"strings"

	"github.com/qauzy/proxydump/models"
)

// Key orders two proxies like cmp.Compare.
type Key func(a, b models.Proxy) int

// TimeoutKey is the measured timeout, +Inf when the proxy was not measured.
func TimeoutKey(p models.Proxy) float64 {
	if p.Timeout == nil {
		return math.Inf(1)
	}
	return *p.Timeout
}

// ByTimeout sorts fastest first; unmeasured proxies go last.
func ByTimeout(a, b models.Proxy) int {
	return cmp.Compare(TimeoutKey(a), TimeoutKey(b))
}

// Natural sorts by protocol, then host (IP-aware), then port.
func Natural(a, b models.Proxy) int {
	if c := cmp.Compare(a.Protocol, b.Protocol); c != 0 {
		return c
	}
	if c := compareHost(a.Host, b.Host); c != 0 {
		return c
	}
	return cmp.Compare(a.Port, b.Port)
}

func compareHost(a, b string) int {
	addrA, errA := netip.ParseAddr(a)
	addrB, errB := netip.ParseAddr(b)
	switch {
	case errA == nil && errB == nil:
		return addrA.Compare(addrB)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// ForSpeed picks the text export key: ByTimeout when sorting by speed,
// Natural otherwise.
func ForSpeed(sortBySpeed bool) Key {
	if sortBySpeed {
		return ByTimeout
	}
	return Natural
}

// Sorted returns a stably sorted copy.
func Sorted(proxies []models.Proxy, key Key) []models.Proxy {
	out := slices.Clone(proxies)
	slices.SortStableFunc(out, key)
	return out
}
