package headers

import (
	"net/http"
	"strings"
)

// ParseHeaders converts "Key: Value" strings from --header flags into a map
// keyed by canonical header name. Entries without a colon or with an empty
// key are skipped; a repeated header keeps its last value.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	return m
}
