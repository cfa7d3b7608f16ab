// Package projection restricts entity data to a caller-declared public
// field allowlist before serialization.
package projection

// Project returns a sparse copy of fields containing only the allowed
// keys, in whatever values the entity currently holds (including
// computed fields such as fullname or a recency alias). Allowed names
// the entity does not carry are silently ignored.
func Project(fields map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(allowed))
	for _, key := range allowed {
		if v, ok := fields[key]; ok {
			out[key] = v
		}
	}
	return out
}
