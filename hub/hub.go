package hub

import (
	"path/filepath"

	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/hub/executor"
	"github.com/qauzy/proxydump/hub/route"
	"github.com/qauzy/proxydump/log"
)

type Option func(*config.Config)

func WithExternalController(externalController string) Option {
	return func(cfg *config.Config) {
		cfg.General.ExternalController = externalController
	}
}

func WithInput(input string) Option {
	return func(cfg *config.Config) {
		cfg.General.Input = input
	}
}

func WithOutputPath(path string) Option {
	return func(cfg *config.Config) {
		cfg.Output.Path = path
	}
}

// Parse runs the first export and starts the external controller when one
// is configured. serving reports whether the controller was started.
func Parse(options ...Option) (serving bool, err error) {
	cfg, err := parse(options...)
	if err != nil {
		return false, err
	}

	if err := executor.ApplyConfig(cfg); err != nil {
		return false, err
	}

	if cfg.General.ExternalController == "" {
		return false, nil
	}
	if !cfg.Output.SQLite {
		log.Warnln("[API] external-controller needs output.sqlite, API not started")
		return false, nil
	}

	dbPath := filepath.Join(cfg.Output.Path, C.SQLiteFile)
	go func() {
		if err := route.Start(cfg.General.ExternalController, dbPath); err != nil {
			log.Errorln("[API] external controller listen error: %s", err)
		}
	}()
	return true, nil
}

// Reload re-reads the configuration and runs another export. A running
// external controller keeps serving and sees the new table once committed.
func Reload(options ...Option) error {
	cfg, err := parse(options...)
	if err != nil {
		return err
	}
	return executor.ApplyConfig(cfg)
}

func parse(options ...Option) (*config.Config, error) {
	cfg, err := executor.Parse()
	if err != nil {
		return nil, err
	}

	for _, option := range options {
		option(cfg)
	}
	return cfg, nil
}
