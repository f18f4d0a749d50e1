package export

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/qauzy/proxydump/component/database"
	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/component/geodata/geodatatest"
	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

var errLookup = errors.New("lookup failed")

type funcHandle func(ip *string) (geodata.Record, error)

func (f funcHandle) Lookup(ip *string) (geodata.Record, error) { return f(ip) }
func (f funcHandle) Close() error                              { return nil }

// failOn errors for one exit IP and finds nothing for the rest.
func failOn(exitIP string) geodata.Handle {
	return funcHandle(func(ip *string) (geodata.Record, error) {
		if ip != nil && *ip == exitIP {
			return nil, errLookup
		}
		return nil, nil
	})
}

func checkedAt(hour int) *time.Time {
	t := time.Date(2024, 5, 1, hour, 0, 0, 0, time.UTC)
	return &t
}

func sampleProxies() []models.Proxy {
	return []models.Proxy{
		{Protocol: C.HTTP, Host: "1.2.3.4", Port: 8080, Timeout: lo.ToPtr(2.345), ExitIP: lo.ToPtr("1.2.3.4"), LastChecked: checkedAt(10)},
		{Protocol: C.SOCKS5, Host: "5.5.5.5", Port: 1080, Username: lo.ToPtr("u"), Password: lo.ToPtr("p"), Timeout: lo.ToPtr(0.5), ExitIP: lo.ToPtr("9.8.7.6"), LastChecked: checkedAt(11)},
		{Protocol: C.SOCKS4, Host: "4.4.4.4", Port: 4145},
		{Protocol: C.HTTP, Host: "2.2.2.2", Port: 3128, Timeout: lo.ToPtr(1.0), ExitIP: lo.ToPtr("7.7.7.7"), LastChecked: checkedAt(12)},
	}
}

func openGeo(t *testing.T, cities ...geodatatest.City) geodata.Handle {
	t.Helper()
	path := filepath.Join(t.TempDir(), "city.mmdb")
	geodatatest.WriteMMDB(t, path, cities...)
	handle, err := geodata.Open(&config.Geolocation{Enable: true, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })
	return handle
}

// readRecords returns the table without surrogate keys, ordered by host.
func readRecords(t *testing.T, dbPath string) []models.Record {
	t.Helper()
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer database.Close(db)

	var records []models.Record
	require.NoError(t, db.Find(&records).Error)
	return normalize(records)
}

func normalize(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		r.ID = 0
		if r.LastChecked != nil {
			utc := r.LastChecked.UTC()
			r.LastChecked = &utc
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Host < out[j].Host })
	return out
}

func expectedRecords(t *testing.T, proxies []models.Proxy, geo geodata.Handle) []models.Record {
	t.Helper()
	records, err := enrich(geo, proxies, models.NewRecord)
	require.NoError(t, err)
	return normalize(records)
}
