package models

import (
	"math"
	"time"

	"github.com/qauzy/proxydump/component/geodata"
	C "github.com/qauzy/proxydump/constant"
)

// Entry is the structured-file form of a proxy. The same shape is accepted
// as input by LoadProxies.
type Entry struct {
	Protocol    C.Protocol     `json:"protocol"`
	Username    *string        `json:"username"`
	Password    *string        `json:"password"`
	Host        string         `json:"host"`
	Port        int            `json:"port"`
	ExitIP      *string        `json:"exit_ip"`
	Timeout     *float64       `json:"timeout"`
	LastChecked *time.Time     `json:"last_checked"`
	Geolocation geodata.Record `json:"geolocation"`
}

func NewEntry(p Proxy, geo geodata.Record) Entry {
	var timeout *float64
	if p.Timeout != nil {
		rounded := math.Round(*p.Timeout*100) / 100
		timeout = &rounded
	}
	return Entry{
		Protocol:    p.Protocol,
		Username:    p.Username,
		Password:    p.Password,
		Host:        p.Host,
		Port:        p.Port,
		ExitIP:      p.ExitIP,
		Timeout:     timeout,
		LastChecked: p.LastChecked,
		Geolocation: geo,
	}
}

func (e Entry) Proxy() Proxy {
	return Proxy{
		Protocol:    e.Protocol,
		Host:        e.Host,
		Port:        e.Port,
		Username:    e.Username,
		Password:    e.Password,
		Timeout:     e.Timeout,
		ExitIP:      e.ExitIP,
		LastChecked: e.LastChecked,
	}
}
