package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/component/geodata/geodatatest"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

func readJSON(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestExportJSONCompactAndPretty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportJSON(models.NewProxyStorage(sampleProxies()...), dir, geodata.Nop()))

	compactRaw, err := os.ReadFile(filepath.Join(dir, C.JSONFile))
	require.NoError(t, err)
	prettyRaw, err := os.ReadFile(filepath.Join(dir, C.PrettyJSONFile))
	require.NoError(t, err)

	assert.NotContains(t, string(compactRaw), "\n")
	assert.False(t, strings.HasSuffix(string(prettyRaw), "\n"), "no trailing newline")
	assert.True(t, strings.HasSuffix(string(prettyRaw), "}\n]"))
	assert.Contains(t, string(prettyRaw), "\n\t{\n\t\t\"protocol\"")

	compact := readJSON(t, filepath.Join(dir, C.JSONFile))
	pretty := readJSON(t, filepath.Join(dir, C.PrettyJSONFile))
	assert.Equal(t, compact, pretty)
}

func TestExportJSONContent(t *testing.T) {
	dir := t.TempDir()
	geo := openGeo(t, geodatatest.Berlin)
	require.NoError(t, ExportJSON(models.NewProxyStorage(sampleProxies()...), dir, geo))

	entries := readJSON(t, filepath.Join(dir, C.JSONFile))
	require.Len(t, entries, 4)

	hosts := make([]string, 0, len(entries))
	for _, e := range entries {
		hosts = append(hosts, e["host"].(string))
	}
	assert.Equal(t, []string{"5.5.5.5", "2.2.2.2", "1.2.3.4", "4.4.4.4"}, hosts)

	first := entries[0]
	assert.Equal(t, "socks5", first["protocol"])
	assert.Equal(t, "u", first["username"])
	assert.Equal(t, "p", first["password"])
	assert.Equal(t, float64(1080), first["port"])
	assert.Equal(t, "9.8.7.6", first["exit_ip"])
	assert.Equal(t, 0.5, first["timeout"])
	assert.Equal(t, "2024-05-01T11:00:00Z", first["last_checked"])
	geo0 := first["geolocation"].(map[string]any)
	assert.Equal(t, "Berlin", geo0["city"].(map[string]any)["names"].(map[string]any)["en"])

	assert.Equal(t, 2.35, entries[2]["timeout"], "timeout rounded to two decimals")
	assert.Nil(t, entries[2]["geolocation"], "lookup miss")

	last := entries[3]
	assert.Nil(t, last["timeout"])
	assert.Nil(t, last["last_checked"])
	assert.Nil(t, last["exit_ip"])
	assert.Nil(t, last["username"])
	assert.Nil(t, last["geolocation"])
	assert.Contains(t, last, "geolocation")
}

func TestExportJSONReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportJSON(models.NewProxyStorage(sampleProxies()...), dir, geodata.Nop()))
	require.NoError(t, ExportJSON(models.NewProxyStorage(), dir, geodata.Nop()))

	assert.Empty(t, readJSON(t, filepath.Join(dir, C.JSONFile)))
	assert.Empty(t, readJSON(t, filepath.Join(dir, C.PrettyJSONFile)))

	raw, err := os.ReadFile(filepath.Join(dir, C.JSONFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestExportJSONFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportJSON(models.NewProxyStorage(sampleProxies()...), dir, geodata.Nop()))

	err := ExportJSON(models.NewProxyStorage(sampleProxies()...), dir, failOn("9.8.7.6"))
	require.ErrorIs(t, err, errLookup)
	assert.Len(t, readJSON(t, filepath.Join(dir, C.JSONFile)), 4)
	assert.Len(t, readJSON(t, filepath.Join(dir, C.PrettyJSONFile)), 4)
}
