package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/langpal/langpal-api/internal/models"
)

// renderCSV writes the header line followed by one line per entry, joined by "\n" with no
// trailing newline. Every value is wrapped in double quotes. Embedded quotes are doubled only
// when escape is set; otherwise values are written verbatim.
func renderCSV(dataset Dataset, entries []models.KVEntry, escape bool) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(dataset.Header, ","))

	for _, entry := range entries {
		values := make([]string, len(dataset.Fields))
		for i, field := range dataset.Fields {
			values[i] = quote(fieldValue(entry, field), escape)
		}
		lines = append(lines, strings.Join(values, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(value string, escape bool) string {
	if escape {
		value = strings.ReplaceAll(value, `"`, `""`)
	}
	return `"` + value + `"`
}

// fieldValue renders one stored field. Email and timestamp fall back to the key when the
// record lacks them; other missing fields are empty.
func fieldValue(entry models.KVEntry, field string) string {
	raw, ok := entry.Value[field]
	if !ok || raw == nil {
		if _, email, timestamp, parsed := models.SplitKey(entry.Key); parsed {
			switch field {
			case "email":
				return email
			case "timestamp":
				return timestamp
			}
		}
		return ""
	}

	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
