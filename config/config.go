package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
)

// ErrMissingInput is returned when neither the configuration nor an override
// names the checked proxy list.
var ErrMissingInput = errors.New("input is required")

// General config
type General struct {
	LogLevel           log.LogLevel `json:"log-level"`
	Input              string       `json:"input"`
	SortBySpeed        bool         `json:"sort-by-speed"`
	ExternalController string       `json:"external-controller"`
}

// Output selects the artifacts written by an export run.
type Output struct {
	Path   string `json:"path"`
	JSON   bool   `json:"json"`
	SQLite bool   `json:"sqlite"`
	TXT    bool   `json:"txt"`
}

// Geolocation config
type Geolocation struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// Config is the parsed configuration, passed explicitly to every component.
type Config struct {
	General     *General
	Output      *Output
	Geolocation *Geolocation
}

type RawOutput struct {
	Path   string `yaml:"path" json:"path"`
	JSON   bool   `yaml:"json" json:"json"`
	SQLite bool   `yaml:"sqlite" json:"sqlite"`
	TXT    bool   `yaml:"txt" json:"txt"`
}

type RawGeolocation struct {
	Enable bool   `yaml:"enable" json:"enable"`
	Path   string `yaml:"path" json:"path"`
	URL    string `yaml:"url" json:"url"`
}

type RawConfig struct {
	LogLevel           log.LogLevel   `yaml:"log-level" json:"log-level"`
	Input              string         `yaml:"input" json:"input"`
	SortBySpeed        bool           `yaml:"sort-by-speed" json:"sort-by-speed"`
	ExternalController string         `yaml:"external-controller" json:"external-controller"`
	Output             RawOutput      `yaml:"output" json:"output"`
	Geolocation        RawGeolocation `yaml:"geolocation" json:"geolocation"`
}

// Parse config
func Parse(buf []byte) (*Config, error) {
	rawCfg, err := UnmarshalRawConfig(buf)
	if err != nil {
		return nil, err
	}

	return ParseRawConfig(rawCfg)
}

func UnmarshalRawConfig(buf []byte) (*RawConfig, error) {
	// config with default value
	rawCfg := &RawConfig{
		LogLevel:    log.INFO,
		SortBySpeed: true,
		Output: RawOutput{
			Path:   "out",
			JSON:   true,
			SQLite: true,
			TXT:    true,
		},
		Geolocation: RawGeolocation{
			Enable: false,
			Path:   "GeoLite2-City.mmdb",
		},
	}

	if err := yaml.Unmarshal(buf, rawCfg); err != nil {
		return nil, err
	}

	return rawCfg, nil
}

func ParseRawConfig(rawCfg *RawConfig) (*Config, error) {
	config := &Config{}

	general, err := parseGeneral(rawCfg)
	if err != nil {
		return nil, err
	}
	config.General = general

	output, err := parseOutput(rawCfg)
	if err != nil {
		return nil, err
	}
	config.Output = output

	config.Geolocation = parseGeolocation(rawCfg)

	return config, nil
}

func parseGeneral(cfg *RawConfig) (*General, error) {
	input := cfg.Input
	if input != "" && !isURL(input) {
		input = C.Path.Resolve(input)
	}
	return &General{
		LogLevel:           cfg.LogLevel,
		Input:              input,
		SortBySpeed:        cfg.SortBySpeed,
		ExternalController: cfg.ExternalController,
	}, nil
}

func parseOutput(cfg *RawConfig) (*Output, error) {
	out := cfg.Output
	if out.Path == "" {
		return nil, errors.New("output.path is required")
	}
	if !out.JSON && !out.SQLite && !out.TXT {
		return nil, fmt.Errorf("at least one of output.json, output.sqlite, output.txt must be enabled")
	}
	return &Output{
		Path:   C.Path.Resolve(out.Path),
		JSON:   out.JSON,
		SQLite: out.SQLite,
		TXT:    out.TXT,
	}, nil
}

func parseGeolocation(cfg *RawConfig) *Geolocation {
	path := cfg.Geolocation.Path
	if path == "" {
		path = C.Path.MMDB()
	}
	return &Geolocation{
		Enable: cfg.Geolocation.Enable,
		Path:   C.Path.Resolve(path),
		URL:    cfg.Geolocation.URL,
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
