package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qauzy/proxydump/component/geodata/geodatatest"
	"github.com/qauzy/proxydump/config"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

func testConfig(dir string, json, sqlite, txt bool) *config.Config {
	return &config.Config{
		General:     &config.General{SortBySpeed: true},
		Output:      &config.Output{Path: dir, JSON: json, SQLite: sqlite, TXT: txt},
		Geolocation: &config.Geolocation{},
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSaveProxiesDispatch(t *testing.T) {
	tests := []struct {
		name              string
		json, sqlite, txt bool
	}{
		{"json only", true, false, false},
		{"sqlite only", false, true, false},
		{"txt only", false, false, true},
		{"all", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			cfg := testConfig(dir, tt.json, tt.sqlite, tt.txt)
			require.NoError(t, SaveProxies(cfg, models.NewProxyStorage(sampleProxies()...)))

			assert.Equal(t, tt.json, exists(filepath.Join(dir, C.JSONFile)))
			assert.Equal(t, tt.json, exists(filepath.Join(dir, C.PrettyJSONFile)))
			assert.Equal(t, tt.sqlite, exists(filepath.Join(dir, C.SQLiteFile)))
			assert.Equal(t, tt.txt, exists(filepath.Join(dir, C.TXTDir, C.AllTXTFile)))
			assert.Equal(t, tt.txt, exists(filepath.Join(dir, C.AnonymousDir, C.AllTXTFile)))
		})
	}
}

func TestSaveProxiesDisabledGeoMatchesEmptyLookup(t *testing.T) {
	disabledDir := t.TempDir()
	require.NoError(t, SaveProxies(testConfig(disabledDir, true, true, false), models.NewProxyStorage(sampleProxies()...)))

	mmdb := filepath.Join(t.TempDir(), "city.mmdb")
	geodatatest.WriteMMDB(t, mmdb, geodatatest.Elsewhere)
	enabledDir := t.TempDir()
	cfg := testConfig(enabledDir, true, true, false)
	cfg.Geolocation = &config.Geolocation{Enable: true, Path: mmdb}
	require.NoError(t, SaveProxies(cfg, models.NewProxyStorage(sampleProxies()...)))

	assert.Equal(t, readText(t, disabledDir, C.JSONFile), readText(t, enabledDir, C.JSONFile))
	assert.Equal(t,
		readRecords(t, filepath.Join(disabledDir, C.SQLiteFile)),
		readRecords(t, filepath.Join(enabledDir, C.SQLiteFile)))
}

func TestSaveProxiesEnriches(t *testing.T) {
	dir := t.TempDir()
	mmdb := filepath.Join(t.TempDir(), "city.mmdb")
	geodatatest.WriteMMDB(t, mmdb, geodatatest.Berlin)
	cfg := testConfig(dir, false, true, false)
	cfg.Geolocation = &config.Geolocation{Enable: true, Path: mmdb}

	require.NoError(t, SaveProxies(cfg, models.NewProxyStorage(sampleProxies()...)))

	records := readRecords(t, filepath.Join(dir, C.SQLiteFile))
	require.Len(t, records, 4)
	require.NotNil(t, records[3].CountryName)
	assert.Equal(t, "Germany", *records[3].CountryName)
}

func TestSaveProxiesMissingDatabaseDegrades(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, true, false, false)
	cfg.Geolocation = &config.Geolocation{Enable: true, Path: filepath.Join(t.TempDir(), "missing.mmdb")}

	require.NoError(t, SaveProxies(cfg, models.NewProxyStorage(sampleProxies()...)))
	for _, e := range readJSON(t, filepath.Join(dir, C.JSONFile)) {
		assert.Nil(t, e["geolocation"])
	}
}

func TestSaveProxiesStopsOnExporterError(t *testing.T) {
	dir := t.TempDir()
	// a directory where the database file should be
	require.NoError(t, os.MkdirAll(filepath.Join(dir, C.SQLiteFile), 0o755))

	err := SaveProxies(testConfig(dir, false, true, true), models.NewProxyStorage(sampleProxies()...))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite export")
	assert.False(t, exists(filepath.Join(dir, C.TXTDir)), "later exporters are not run")
}
