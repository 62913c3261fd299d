package card

// Icon is the visual for an icon category.
type Icon struct {
	// Material is the Material Symbols ligature name.
	Material string `json:"material"`
	// Glyph is a single-cell stand-in for terminals.
	Glyph string `json:"glyph"`
}

var icons = map[IconCategory]Icon{
	"favorite":  {Material: "favorite_border", Glyph: "♡"},
	"completed": {Material: "check_circle_outline", Glyph: "✓"},
	"saved":     {Material: "bookmark_border", Glyph: "⚑"},
}

// IconFor returns the icon of category c.
func IconFor(c IconCategory) (Icon, bool) {
	icon, ok := icons[c]
	return icon, ok
}
