package geodata

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"

	"github.com/qauzy/proxydump/component/fs"
	"github.com/qauzy/proxydump/config"
	"github.com/qauzy/proxydump/log"
)

var ErrPermission = errors.New("can't grant read permission on geolocation database")

// Handle is an opened geolocation source. Callers must Close it on every
// path; the disabled variant makes both calls no-ops.
type Handle interface {
	// Lookup returns nil when ip is nil or has no entry.
	Lookup(ip *string) (Record, error)
	Close() error
}

type nopHandle struct{}

func (nopHandle) Lookup(*string) (Record, error) { return nil, nil }
func (nopHandle) Close() error                   { return nil }

// Nop returns a handle that never finds anything.
func Nop() Handle {
	return nopHandle{}
}

type mmdbHandle struct {
	reader *maxminddb.Reader
}

func (h *mmdbHandle) Lookup(ip *string) (Record, error) {
	if ip == nil {
		return nil, nil
	}
	addr := net.ParseIP(*ip)
	if addr == nil {
		log.Debugln("[GEO] skip lookup of invalid ip %q", *ip)
		return nil, nil
	}

	var record map[string]any
	_, ok, err := h.reader.LookupNetwork(addr, &record)
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup %s: %w", *ip, err)
	}
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (h *mmdbHandle) Close() error {
	return h.reader.Close()
}

// Open returns the nop handle when geolocation is disabled or the database is
// absent without a download source. Otherwise the file is made readable and
// opened; failing to grant read permission is fatal.
func Open(cfg *config.Geolocation) (Handle, error) {
	if cfg == nil || !cfg.Enable {
		return Nop(), nil
	}

	available, err := Init(cfg)
	if err != nil {
		return nil, err
	}
	if !available {
		log.Warnln("[GEO] %s not found, geolocation disabled for this run", cfg.Path)
		return Nop(), nil
	}

	if err := fs.AddPermission(cfg.Path, fs.UserRead); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrPermission, cfg.Path, err)
	}

	reader, err := maxminddb.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open geolocation database %s: %w", cfg.Path, err)
	}
	log.Debugln("[GEO] opened %s (%s)", cfg.Path, reader.Metadata.DatabaseType)
	return &mmdbHandle{reader: reader}, nil
}
