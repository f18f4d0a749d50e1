package route

import (
	"net/http"
	"slices"

	"github.com/go-chi/render"
	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gorm.io/gorm"

	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

// nullKey stands in for a NULL continent or country.
const nullKey = "null"

// StatRow is the projection of a proxies row that /stats aggregates.
type StatRow struct {
	Protocol      string
	ContinentName *string
	CountryName   *string
}

type ProtocolStats struct {
	TotalCount   int                                 `json:"total_count"`
	ByContinents *orderedmap.OrderedMap[string, int] `json:"by_continents"`
	ByCountry    *orderedmap.OrderedMap[string, int] `json:"by_country"`
}

func getStats(db *gorm.DB) http.HandlerFunc {
	protocols := lo.Map(C.Protocols, func(p C.Protocol, _ int) string {
		return p.String()
	})
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []StatRow
		err := db.WithContext(r.Context()).
			Model(&models.Record{}).
			Select("protocol", "continent_name", "country_name").
			Where("protocol IN ?", protocols).
			Find(&rows).Error
		if err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, newError(err.Error()))
			return
		}
		render.JSON(w, r, Aggregate(rows))
	}
}

// Aggregate counts rows per protocol, continent and country. Protocols keep
// first-seen order; the per-key counts are sorted by count descending, ties
// in first-seen order.
func Aggregate(rows []StatRow) *orderedmap.OrderedMap[string, *ProtocolStats] {
	type counters struct {
		total      int
		continents *orderedmap.OrderedMap[string, int]
		countries  *orderedmap.OrderedMap[string, int]
	}
	byProto := orderedmap.New[string, *counters]()
	for _, row := range rows {
		c, ok := byProto.Get(row.Protocol)
		if !ok {
			c = &counters{
				continents: orderedmap.New[string, int](),
				countries:  orderedmap.New[string, int](),
			}
			byProto.Set(row.Protocol, c)
		}
		c.total++
		increment(c.continents, keyOf(row.ContinentName))
		increment(c.countries, keyOf(row.CountryName))
	}

	stats := orderedmap.New[string, *ProtocolStats]()
	for pair := byProto.Oldest(); pair != nil; pair = pair.Next() {
		stats.Set(pair.Key, &ProtocolStats{
			TotalCount:   pair.Value.total,
			ByContinents: sortedByCount(pair.Value.continents),
			ByCountry:    sortedByCount(pair.Value.countries),
		})
	}
	return stats
}

func keyOf(v *string) string {
	if v == nil {
		return nullKey
	}
	return *v
}

func increment(m *orderedmap.OrderedMap[string, int], key string) {
	n, _ := m.Get(key)
	m.Set(key, n+1)
}

func sortedByCount(m *orderedmap.OrderedMap[string, int]) *orderedmap.OrderedMap[string, int] {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, entry{pair.Key, pair.Value})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.count - a.count
	})

	out := orderedmap.New[string, int]()
	for _, e := range entries {
		out.Set(e.key, e.count)
	}
	return out
}
