package app

import (
	"net/url"
	"strings"
)

// pgxOnlyParams are accepted by pgx but forwarded by lib/pq to the server as runtime parameters.
var pgxOnlyParams = []string{"disable_prepared_binary_result", "default_query_exec_mode"}

// normalizeDBURL adapts a shared connection string for lib/pq.
// With disablePreparedBinaryResult off, parameters are sent in binary via lib/pq's binary_parameters mode.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	changed := false
	for _, key := range pgxOnlyParams {
		if query.Has(key) {
			query.Del(key)
			changed = true
		}
	}
	if !disablePreparedBinaryResult && query.Get("binary_parameters") == "" {
		query.Set("binary_parameters", "yes")
		changed = true
	}
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
