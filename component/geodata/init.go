package geodata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/oschwald/maxminddb-golang"

	"github.com/qauzy/proxydump/component/fs"
	matHttp "github.com/qauzy/proxydump/component/http"
	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
)

// Init makes sure the database file exists, downloading it from cfg.URL when
// it is missing. It reports false when the file is missing and there is no
// download source.
func Init(cfg *config.Geolocation) (bool, error) {
	if _, err := os.Stat(cfg.Path); err == nil {
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if cfg.URL == "" {
		return false, nil
	}

	log.Infoln("[GEO] can't find %s, start download", cfg.Path)
	if err := downloadMMDB(cfg.URL, cfg.Path); err != nil {
		return false, fmt.Errorf("can't download MMDB: %w", err)
	}
	if !Verify(cfg.Path) {
		if err := os.Remove(cfg.Path); err != nil {
			return false, fmt.Errorf("can't remove invalid MMDB: %w", err)
		}
		return false, fmt.Errorf("downloaded MMDB %s is invalid", cfg.Path)
	}
	log.Infoln("[GEO] download %s finish", cfg.Path)
	return true, nil
}

// Verify reports whether path is a readable, well-formed MMDB file.
func Verify(path string) bool {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return false
	}
	defer reader.Close()
	return reader.Verify() == nil
}

func downloadMMDB(url, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*90)
	defer cancel()
	resp, err := matHttp.HttpRequest(ctx, url, http.MethodGet, http.Header{"User-Agent": {C.UA}}, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return fs.WriteAtomic(path, func(w io.Writer) error {
		_, err := io.Copy(w, resp.Body)
		return err
	})
}
