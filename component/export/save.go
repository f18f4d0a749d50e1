package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"

	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/component/sorting"
	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
	"github.com/qauzy/proxydump/models"
)

// SaveProxies runs every exporter enabled in cfg.Output. The geolocation
// handle is opened once for the run and closed on every path.
func SaveProxies(cfg *config.Config, storage *models.ProxyStorage) (err error) {
	runID := uuid.Must(uuid.NewV4())
	out := cfg.Output

	if err := os.MkdirAll(out.Path, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", out.Path, err)
	}

	geo := geodata.Nop()
	if out.JSON || out.SQLite {
		if geo, err = geodata.Open(cfg.Geolocation); err != nil {
			return err
		}
	}
	defer func() {
		if closeErr := geo.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close geolocation database: %w", closeErr)
		}
	}()

	log.Debugln("[Export] run %s: %d proxies", runID, storage.Len())

	if out.JSON {
		if err := ExportJSON(storage, out.Path, geo); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
	}

	if out.SQLite {
		if err := ExportSQLite(storage, geo, filepath.Join(out.Path, C.SQLiteFile)); err != nil {
			return fmt.Errorf("sqlite export: %w", err)
		}
	}

	if out.TXT {
		if err := ExportTXT(storage, out.Path, sorting.ForSpeed(cfg.General.SortBySpeed)); err != nil {
			return fmt.Errorf("txt export: %w", err)
		}
	}

	location := out.Path
	if abs, absErr := filepath.Abs(out.Path); absErr == nil {
		location = abs
	}
	if isDocker() {
		log.Infoln("[Export] run %s: proxies have been saved to ./out (%s in container)", runID, location)
	} else {
		log.Infoln("[Export] run %s: proxies have been saved to %s", runID, location)
	}
	return nil
}

func isDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
