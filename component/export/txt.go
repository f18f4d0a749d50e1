package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/qauzy/proxydump/component/sorting"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

// ExportTXT rebuilds the proxies/ and proxies_anonymous/ trees. Each holds
// all.txt with protocol prefixes and one <protocol>.txt per protocol without.
// The directories are removed before they are rewritten, so a concurrent
// reader can observe a missing or partial tree.
func ExportTXT(storage *models.ProxyStorage, outputPath string, key sorting.Key) error {
	all := sorting.Sorted(storage.All(), key)
	groups := storage.Grouped()
	for i := range groups {
		groups[i].Proxies = sorting.Sorted(groups[i].Proxies, key)
	}

	for _, folder := range []struct {
		name          string
		anonymousOnly bool
	}{
		{C.TXTDir, false},
		{C.AnonymousDir, true},
	} {
		dir := filepath.Join(outputPath, folder.name)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}

		text := proxyList(all, folder.anonymousOnly, true)
		if err := writeText(filepath.Join(dir, C.AllTXTFile), text); err != nil {
			return err
		}
		for _, group := range groups {
			text := proxyList(group.Proxies, folder.anonymousOnly, false)
			if err := writeText(filepath.Join(dir, group.Protocol.String()+".txt"), text); err != nil {
				return err
			}
		}
	}
	return nil
}

func proxyList(proxies []models.Proxy, anonymousOnly, includeProtocol bool) string {
	if anonymousOnly {
		proxies = lo.Filter(proxies, func(p models.Proxy, _ int) bool {
			return p.IsAnonymous()
		})
	}
	lines := lo.Map(proxies, func(p models.Proxy, _ int) string {
		return p.String(includeProtocol)
	})
	return strings.Join(lines, "\n")
}

func writeText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
