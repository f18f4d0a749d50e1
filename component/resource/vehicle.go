package resource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	matHttp "github.com/qauzy/proxydump/component/http"
)

type VehicleType int

const (
	File VehicleType = iota
	HTTP
)

func (v VehicleType) String() string {
	switch v {
	case File:
		return "File"
	case HTTP:
		return "HTTP"
	default:
		return "Unknown"
	}
}

// Vehicle fetches the raw checked proxy list.
type Vehicle interface {
	Type() VehicleType
	Path() string
	Read() ([]byte, error)
}

// NewVehicle picks an HTTP vehicle for http(s) URLs and a file vehicle otherwise.
func NewVehicle(source string) Vehicle {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPVehicle(source, nil)
	}
	return NewFileVehicle(source)
}

type FileVehicle struct {
	path string
}

func (f *FileVehicle) Type() VehicleType {
	return File
}

func (f *FileVehicle) Path() string {
	return f.path
}

func (f *FileVehicle) Read() ([]byte, error) {
	return os.ReadFile(f.path)
}

func NewFileVehicle(path string) *FileVehicle {
	return &FileVehicle{path: path}
}

type HTTPVehicle struct {
	url    string
	header http.Header
}

func (h *HTTPVehicle) Url() string {
	return h.url
}

func (h *HTTPVehicle) Type() VehicleType {
	return HTTP
}

func (h *HTTPVehicle) Path() string {
	return h.url
}

func (h *HTTPVehicle) Read() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	resp, err := matHttp.HttpRequest(ctx, h.url, http.MethodGet, h.header, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(resp.Status)
	}
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func NewHTTPVehicle(url string, header http.Header) *HTTPVehicle {
	return &HTTPVehicle{url: url, header: header}
}
