package style

import "slices"

// TextLevel is a typographic scale step.
type TextLevel string

// FontWeight is a named font weight.
type FontWeight string

// IconPosition anchors the action icon inside the card.
type IconPosition string

// ImagePosition places the image relative to the card content.
type ImagePosition string

// ImageFit is the object-fit mode of an image.
type ImageFit string

// ContentPosition aligns the text content inside the card.
type ContentPosition string

// IconVariant is the visual variant of the icon button.
type IconVariant string

// IconSize is the size of the icon button.
type IconSize string

var (
	TextLevels       = []TextLevel{"h1", "h2", "h3", "h4", "title-lg", "title-md", "title-sm", "body-lg", "body-md", "body-sm", "body-xs"}
	FontWeights      = []FontWeight{"light", "regular", "medium", "bold"}
	IconPositions    = []IconPosition{"top-left", "top-right", "bottom-left", "bottom-right", "top-center", "bottom-center"}
	ImagePositions   = []ImagePosition{"top", "bottom", "left", "right", "center", "background"}
	ImageFits        = []ImageFit{"fill", "contain", "cover", "none", "scale-down"}
	ContentPositions = []ContentPosition{"top", "left", "right", "bottom"}
	IconVariants     = []IconVariant{"plain", "outlined", "soft", "solid"}
	IconSizes        = []IconSize{"sm", "md", "lg"}
)

// enum is implemented by every named value set above so validation can
// check membership without knowing the concrete type.
type enum interface {
	Valid() bool
	Options() []string
}

func (v TextLevel) Valid() bool       { return slices.Contains(TextLevels, v) }
func (v FontWeight) Valid() bool      { return slices.Contains(FontWeights, v) }
func (v IconPosition) Valid() bool    { return slices.Contains(IconPositions, v) }
func (v ImagePosition) Valid() bool   { return slices.Contains(ImagePositions, v) }
func (v ImageFit) Valid() bool        { return slices.Contains(ImageFits, v) }
func (v ContentPosition) Valid() bool { return slices.Contains(ContentPositions, v) }
func (v IconVariant) Valid() bool     { return slices.Contains(IconVariants, v) }
func (v IconSize) Valid() bool        { return slices.Contains(IconSizes, v) }

func (TextLevel) Options() []string       { return names(TextLevels) }
func (FontWeight) Options() []string      { return names(FontWeights) }
func (IconPosition) Options() []string    { return names(IconPositions) }
func (ImagePosition) Options() []string   { return names(ImagePositions) }
func (ImageFit) Options() []string        { return names(ImageFits) }
func (ContentPosition) Options() []string { return names(ContentPositions) }
func (IconVariant) Options() []string     { return names(IconVariants) }
func (IconSize) Options() []string        { return names(IconSizes) }

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
