package executor

import (
	"fmt"
	"os"
	"sync"

	"github.com/qauzy/proxydump/component/export"
	"github.com/qauzy/proxydump/component/resource"
	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
	"github.com/qauzy/proxydump/models"
)

var mux sync.Mutex

func readConfig(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("configuration file %s is empty", path)
	}

	return data, err
}

// Parse config with default config path
func Parse() (*config.Config, error) {
	return ParseWithPath(C.Path.Config())
}

// ParseWithPath parse config with custom config path
func ParseWithPath(path string) (*config.Config, error) {
	buf, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	return ParseWithBytes(buf)
}

// ParseWithBytes config with buffer
func ParseWithBytes(buf []byte) (*config.Config, error) {
	return config.Parse(buf)
}

// LoadStorage reads the checked proxy list named by cfg.General.Input.
func LoadStorage(cfg *config.Config) (*models.ProxyStorage, error) {
	if cfg.General.Input == "" {
		return nil, config.ErrMissingInput
	}
	vehicle := resource.NewVehicle(cfg.General.Input)
	buf, err := vehicle.Read()
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", vehicle.Path(), err)
	}
	proxies, err := models.LoadProxies(buf)
	if err != nil {
		return nil, fmt.Errorf("parse input %s: %w", vehicle.Path(), err)
	}
	log.Infoln("[Input] loaded %d proxies from %s (%s)", len(proxies), vehicle.Path(), vehicle.Type())
	return models.NewProxyStorage(proxies...), nil
}

// ApplyConfig loads the input and runs one export.
func ApplyConfig(cfg *config.Config) error {
	mux.Lock()
	defer mux.Unlock()

	log.SetLevel(cfg.General.LogLevel)

	storage, err := LoadStorage(cfg)
	if err != nil {
		return err
	}
	return export.SaveProxies(cfg, storage)
}
