package geodata

// Record is a decoded MMDB entry, e.g. a GeoLite2-City record. A nil Record
// means no data and yields nil for every field.
type Record map[string]any

func (r Record) City() *string {
	return r.str("city", "names", "en")
}

func (r Record) ContinentName() *string {
	return r.str("continent", "names", "en")
}

func (r Record) ContinentCode() *string {
	return r.str("continent", "code")
}

func (r Record) CountryName() *string {
	return r.str("country", "names", "en")
}

func (r Record) CountryCode() *string {
	return r.str("country", "iso_code")
}

func (r Record) Latitude() *float64 {
	return r.float("location", "latitude")
}

func (r Record) Longitude() *float64 {
	return r.float("location", "longitude")
}

func (r Record) TimeZone() *string {
	return r.str("location", "time_zone")
}

func (r Record) get(keys ...string) any {
	var cur any = map[string]any(r)
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func (r Record) str(keys ...string) *string {
	v, ok := r.get(keys...).(string)
	if !ok {
		return nil
	}
	return &v
}

func (r Record) float(keys ...string) *float64 {
	switch v := r.get(keys...).(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
