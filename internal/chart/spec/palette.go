package spec

// Built-in color palettes. Hex values render through lipgloss, which
// degrades them to the nearest terminal color when truecolor is
// unavailable.
var palettes = map[string][]string{
	"default": {"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de", "#3ba272", "#fc8452", "#9a60b4"},
	"vibrant": {"#ff595e", "#ffca3a", "#8ac926", "#1982c4", "#6a4c93", "#ff924c"},
	"pastel":  {"#a8dadc", "#f1faee", "#ffb4a2", "#cdb4db", "#b5e48c", "#ffd6a5"},
	"cool":    {"#012a4a", "#2a6f97", "#468faf", "#61a5c2", "#89c2d9", "#a9d6e5"},
	"warm":    {"#6a040f", "#9d0208", "#d00000", "#e85d04", "#f48c06", "#ffba08"},
	"mono":    {"#f8f9fa", "#dee2e6", "#adb5bd", "#6c757d", "#495057", "#212529"},
	"earth":   {"#582f0e", "#7f4f24", "#936639", "#a68a64", "#b6ad90", "#656d4a"},
}

// Palette resolves a named palette, falling back to the default
// qualitative palette for unknown names. The returned slice is a copy.
func Palette(name string) []string {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}
	return append([]string(nil), p...)
}

// PaletteNames lists the built-in palette names, default first.
func PaletteNames() []string {
	return []string{"default", "vibrant", "pastel", "cool", "warm", "mono", "earth"}
}
