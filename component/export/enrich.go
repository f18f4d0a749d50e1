package export

import (
	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/models"
)

// enrich looks up every proxy's exit IP, keeping the input order.
func enrich[T any](geo geodata.Handle, proxies []models.Proxy, build func(models.Proxy, geodata.Record) T) ([]T, error) {
	out := make([]T, 0, len(proxies))
	for _, p := range proxies {
		record, err := geo.Lookup(p.ExitIP)
		if err != nil {
			return nil, err
		}
		out = append(out, build(p, record))
	}
	return out, nil
}
