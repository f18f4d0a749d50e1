package models

import (
	"time"

	"github.com/qauzy/proxydump/component/geodata"
	C "github.com/qauzy/proxydump/constant"
)

// Record is the flattened, enriched proxy stored in the proxies table.
// ID is a surrogate key without meaning across export runs.
type Record struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Protocol    string     `gorm:"column:protocol" json:"protocol"`
	Host        string     `gorm:"column:host" json:"host"`
	Port        int        `gorm:"column:port" json:"port"`
	Username    *string    `gorm:"column:username" json:"username"`
	Password    *string    `gorm:"column:password" json:"password"`
	Timeout     *float64   `gorm:"column:timeout" json:"timeout"`
	ExitIP      *string    `gorm:"column:exit_ip" json:"exit_ip"`
	LastChecked *time.Time `gorm:"column:last_checked" json:"last_checked"`

	City          *string  `gorm:"column:city" json:"city"`
	ContinentName *string  `gorm:"column:continent_name" json:"continent_name"`
	ContinentCode *string  `gorm:"column:continent_code" json:"continent_code"`
	CountryName   *string  `gorm:"column:country_name" json:"country_name"`
	CountryCode   *string  `gorm:"column:country_code" json:"country_code"`
	Latitude      *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64 `gorm:"column:longitude" json:"longitude"`
	TimeZone      *string  `gorm:"column:time_zone" json:"time_zone"`
}

func (Record) TableName() string {
	return C.ProxyTable
}

// NewRecord flattens a proxy and its geolocation record. A nil geo record
// leaves every geolocation column NULL.
func NewRecord(p Proxy, geo geodata.Record) Record {
	return Record{
		Protocol:      p.Protocol.String(),
		Host:          p.Host,
		Port:          p.Port,
		Username:      p.Username,
		Password:      p.Password,
		Timeout:       p.Timeout,
		ExitIP:        p.ExitIP,
		LastChecked:   p.LastChecked,
		City:          geo.City(),
		ContinentName: geo.ContinentName(),
		ContinentCode: geo.ContinentCode(),
		CountryName:   geo.CountryName(),
		CountryCode:   geo.CountryCode(),
		Latitude:      geo.Latitude(),
		Longitude:     geo.Longitude(),
		TimeZone:      geo.TimeZone(),
	}
}
