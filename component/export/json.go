package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/qauzy/proxydump/component/fs"
	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/component/sorting"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

// ExportJSON writes proxies.json (compact) and proxies_pretty.json
// (tab-indented), fastest proxies first. The two files are written
// concurrently and each is replaced atomically.
func ExportJSON(storage *models.ProxyStorage, outputPath string, geo geodata.Handle) error {
	proxies := sorting.Sorted(storage.All(), sorting.ByTimeout)
	entries, err := enrich(geo, proxies, models.NewEntry)
	if err != nil {
		return err
	}

	var eg errgroup.Group
	for _, target := range []struct {
		name   string
		indent string
	}{
		{C.JSONFile, ""},
		{C.PrettyJSONFile, "\t"},
	} {
		target := target
		path := filepath.Join(outputPath, target.name)
		eg.Go(func() error {
			err := fs.WriteAtomic(path, func(w io.Writer) error {
				var buf bytes.Buffer
				enc := json.NewEncoder(&buf)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", target.indent)
				if err := enc.Encode(entries); err != nil {
					return err
				}
				// Encode terminates the document with a newline
				_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
				return err
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
