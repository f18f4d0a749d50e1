// Package geodatatest builds small GeoLite2-City style databases for tests.
package geodatatest

import (
	"net"
	"os"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

// City describes one network's entry.
type City struct {
	Network       string // CIDR
	City          string
	ContinentCode string
	ContinentName string
	CountryCode   string
	CountryName   string
	Latitude      float64
	Longitude     float64
	TimeZone      string
}

func (c City) value() mmdbtype.Map {
	return mmdbtype.Map{
		"city": mmdbtype.Map{
			"names": mmdbtype.Map{"en": mmdbtype.String(c.City)},
		},
		"continent": mmdbtype.Map{
			"code":  mmdbtype.String(c.ContinentCode),
			"names": mmdbtype.Map{"en": mmdbtype.String(c.ContinentName)},
		},
		"country": mmdbtype.Map{
			"iso_code": mmdbtype.String(c.CountryCode),
			"names":    mmdbtype.Map{"en": mmdbtype.String(c.CountryName)},
		},
		"location": mmdbtype.Map{
			"latitude":  mmdbtype.Float64(c.Latitude),
			"longitude": mmdbtype.Float64(c.Longitude),
			"time_zone": mmdbtype.String(c.TimeZone),
		},
	}
}

// Berlin is a ready-made entry for 9.8.7.0/24.
var Berlin = City{
	Network:       "9.8.7.0/24",
	City:          "Berlin",
	ContinentCode: "EU",
	ContinentName: "Europe",
	CountryCode:   "DE",
	CountryName:   "Germany",
	Latitude:      52.52,
	Longitude:     13.405,
	TimeZone:      "Europe/Berlin",
}

// Elsewhere is an entry none of the test proxies resolve to.
var Elsewhere = City{
	Network:       "5.6.7.0/24",
	City:          "Lisbon",
	ContinentCode: "EU",
	ContinentName: "Europe",
	CountryCode:   "PT",
	CountryName:   "Portugal",
	Latitude:      38.72,
	Longitude:     -9.14,
	TimeZone:      "Europe/Lisbon",
}

// WriteMMDB writes a database containing cities to path.
func WriteMMDB(t testing.TB, path string, cities ...City) {
	t.Helper()

	w, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: "GeoLite2-City",
		Description:  map[string]string{"en": "proxydump test database"},
		Languages:    []string{"en"},
		RecordSize:   24,
	})
	if err != nil {
		t.Fatalf("new mmdb writer: %s", err)
	}
	for _, c := range cities {
		_, network, err := net.ParseCIDR(c.Network)
		if err != nil {
			t.Fatalf("parse %s: %s", c.Network, err)
		}
		if err := w.Insert(network, c.value()); err != nil {
			t.Fatalf("insert %s: %s", c.Network, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %s", path, err)
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		t.Fatalf("write %s: %s", path, err)
	}
}
