package models

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/qauzy/proxydump/component/geodata"
	C "github.com/qauzy/proxydump/constant"
)

func TestNewRecord(t *testing.T) {
	checked := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := Proxy{
		Protocol:    C.SOCKS5,
		Host:        "1.2.3.4",
		Port:        1080,
		Username:    lo.ToPtr("u"),
		Password:    lo.ToPtr("p"),
		Timeout:     lo.ToPtr(0.123),
		ExitIP:      lo.ToPtr("9.8.7.6"),
		LastChecked: &checked,
	}
	geo := geodata.Record{
		"city":      map[string]any{"names": map[string]any{"en": "Berlin"}},
		"continent": map[string]any{"code": "EU", "names": map[string]any{"en": "Europe"}},
		"country":   map[string]any{"iso_code": "DE", "names": map[string]any{"en": "Germany"}},
		"location":  map[string]any{"latitude": 52.52, "longitude": 13.405, "time_zone": "Europe/Berlin"},
	}

	rec := NewRecord(p, geo)
	assert.Zero(t, rec.ID)
	assert.Equal(t, "socks5", rec.Protocol)
	assert.Equal(t, 0.123, *rec.Timeout, "table keeps the unrounded timeout")
	assert.Equal(t, "Berlin", *rec.City)
	assert.Equal(t, "Europe", *rec.ContinentName)
	assert.Equal(t, "EU", *rec.ContinentCode)
	assert.Equal(t, "Germany", *rec.CountryName)
	assert.Equal(t, "DE", *rec.CountryCode)
	assert.Equal(t, 52.52, *rec.Latitude)
	assert.Equal(t, 13.405, *rec.Longitude)
	assert.Equal(t, "Europe/Berlin", *rec.TimeZone)

	bare := NewRecord(p, nil)
	assert.Nil(t, bare.City)
	assert.Nil(t, bare.ContinentCode)
	assert.Nil(t, bare.Latitude)
	assert.Nil(t, bare.TimeZone)
	assert.Equal(t, C.ProxyTable, Record{}.TableName())
}

func TestNewEntryRoundsTimeout(t *testing.T) {
	e := NewEntry(Proxy{Protocol: C.HTTP, Timeout: lo.ToPtr(1.23456)}, nil)
	assert.Equal(t, 1.23, *e.Timeout)
	assert.Nil(t, e.Geolocation)

	e = NewEntry(Proxy{Protocol: C.HTTP}, nil)
	assert.Nil(t, e.Timeout)
}
