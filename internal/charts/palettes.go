package charts

// Named color palettes offered by the chart customization widget. The
// qualitative sets follow the usual ColorBrewer/plotly hex values; the
// last three are house palettes.
var palettes = map[string][]string{
	"default": {"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F"},
	"viridis": {"#440154", "#482878", "#3E4989", "#31688E", "#26828E", "#1F9E89", "#35B779", "#6ECE58", "#B5DE2B", "#FDE725"},
	"plasma":  {"#0D0887", "#46039F", "#7201A8", "#9C179E", "#BD3786", "#D8576B", "#ED7953", "#FB9F3A", "#FDCA26", "#F0F921"},
	"blues":   {"#F7FBFF", "#DEEBF7", "#C6DBEF", "#9ECAE1", "#6BAED6", "#4292C6", "#2171B5", "#08519C", "#08306B"},
	"reds":    {"#FFF5F0", "#FEE0D2", "#FCBBA1", "#FC9272", "#FB6A4A", "#EF3B2C", "#CB181D", "#A50F15", "#67000D"},
	"greens":  {"#F7FCF5", "#E5F5E0", "#C7E9C0", "#A1D99B", "#74C476", "#41AB5D", "#238B45", "#006D2C", "#00441B"},
	"pastel":  {"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F", "#9EB9F3", "#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7"},
	"set1":    {"#E41A1C", "#377EB8", "#4DAF4A", "#984EA3", "#FF7F00", "#FFFF33", "#A65628", "#F781BF", "#999999"},
	"set2":    {"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3", "#A6D854", "#FFD92F", "#E5C494", "#B3B3B3"},
	"set3":    {"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3", "#FDB462", "#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD"},
	"dark2":   {"#1B9E77", "#D95F02", "#7570B3", "#E7298A", "#66A61E", "#E6AB02", "#A6761D", "#666666"},
	"ocean":   {"#006994", "#13A5B7", "#26C9DE", "#B8E6F0"},
	"sunset":  {"#FF6B35", "#F7931E", "#FFD23F", "#06FFA5"},
	"forest":  {"#2D5016", "#4F7942", "#74A478", "#A8DADC"},
}

// PaletteNames lists the available palette names.
func PaletteNames() []string {
	return []string{
		"default", "viridis", "plasma", "blues", "reds", "greens",
		"pastel", "set1", "set2", "set3", "dark2", "ocean", "sunset", "forest",
	}
}

// Palette resolves a palette by name, falling back to the default set.
func Palette(name string) []string {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["default"]
}
