package dataprocessing

import (
	"fmt"
	"strings"
)

// maxSheetNameLen is the destination format's sheet-name limit.
const maxSheetNameLen = 31

// sheetNameReplacer substitutes the characters the destination format
// forbids in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	`\`, "_", `/`, "_", `:`, "_", `?`, "_", `*`, "_", `[`, "_", `]`, "_", `|`, "_",
)

// SanitizeSheetName derives a legal sheet name from a grouping key:
// forbidden characters become underscores and the result is trimmed and
// truncated to the destination's maximum length. Empty keys map to
// "Unknown". Pure; consumed by the presentation layer.
func SanitizeSheetName(name string) string {
	s := strings.TrimSpace(sheetNameReplacer.Replace(name))
	if s == "" {
		return "Unknown"
	}
	runes := []rune(s)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	return string(runes)
}

// StoreSheetName derives the sheet name of one store partition in
// "code_name" form.
func StoreSheetName(storeCode, storeName string) string {
	return SanitizeSheetName(storeCode + "_" + storeName)
}

// SheetNamer hands out unique sheet names within one workbook. Distinct
// grouping keys can sanitize or truncate to the same name; collisions get a
// numeric suffix so every partition keeps its own sheet.
type SheetNamer struct {
	used map[string]bool
}

// NewSheetNamer creates a namer scoped to one workbook.
func NewSheetNamer() *SheetNamer {
	return &SheetNamer{used: make(map[string]bool)}
}

// Unique returns name if it is still free, otherwise the first free
// "name_N" variant (N >= 2), truncating the base so the result stays within
// the sheet-name limit.
func (n *SheetNamer) Unique(name string) string {
	if !n.used[name] {
		n.used[name] = true
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate := string(base) + suffix
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}
