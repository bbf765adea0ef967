package registry

import (
	"strings"
	"unicode"
)

// VariantTag normalises a variant name to its snake_case tag. Legacy
// qualified type names are accepted: the namespace and the family suffix are
// dropped, so "Xylem.Graphics.Patchwork.AxisOverheadPatchworkConnector" with
// suffix "PatchworkConnector" becomes "axis_overhead".
func VariantTag(name, suffix string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if suffix != "" && name != suffix {
		name = strings.TrimSuffix(name, suffix)
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
