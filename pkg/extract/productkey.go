package extract

import (
	"strconv"
	"strings"
)

// ProductKey builds the grouping key for an item from its normalized
// manufacturer, part number and pack quantity. When all three are absent the
// key falls back to the lower-cased raw name with spaces replaced.
func ProductKey(manufacturer, partNumber string, packQuantity int, rawName string) string {
	parts := make([]string, 0, 3)
	if manufacturer != "" {
		parts = append(parts, manufacturer)
	}
	if partNumber != "" {
		parts = append(parts, partNumber)
	}
	if packQuantity > 0 {
		parts = append(parts, "pack_"+strconv.Itoa(packQuantity))
	}

	if len(parts) == 0 {
		return slug(rawName)
	}
	return strings.Join(parts, "_")
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
