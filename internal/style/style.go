// Package style defines the card style tree and the cascade that resolves it.
package style

// CornerRadius holds one radius per corner.
type CornerRadius struct {
	TopLeft     *string `json:"topLeft,omitempty"     css:"length"`
	TopRight    *string `json:"topRight,omitempty"    css:"length"`
	BottomLeft  *string `json:"bottomLeft,omitempty"  css:"length"`
	BottomRight *string `json:"bottomRight,omitempty" css:"length"`
}

// Padding holds one padding per side.
type Padding struct {
	Top    *string `json:"paddingTop,omitempty"    css:"length"`
	Right  *string `json:"paddingRight,omitempty"  css:"length"`
	Bottom *string `json:"paddingBottom,omitempty" css:"length"`
	Left   *string `json:"paddingLeft,omitempty"   css:"length"`
}

// Margin holds one margin per side.
type Margin struct {
	Top    *string `json:"marginTop,omitempty"    css:"length"`
	Right  *string `json:"marginRight,omitempty"  css:"length"`
	Bottom *string `json:"marginBottom,omitempty" css:"length"`
	Left   *string `json:"marginLeft,omitempty"   css:"length"`
}

// TextStyle is the typography of one text role.
type TextStyle struct {
	Level      *TextLevel  `json:"level,omitempty"`
	Font       *string     `json:"font,omitempty"     css:"font"`
	FontWeight *FontWeight `json:"fontWeight,omitempty"`
	FontSize   *string     `json:"fontSize,omitempty" css:"length"`
	Color      *string     `json:"color,omitempty"    css:"color"`
	Margin     *Margin     `json:"margin,omitempty"`
}

// ContentStyle groups the typography of every text role of a card.
type ContentStyle struct {
	Heading  *TextStyle       `json:"heading,omitempty"`
	Title    *TextStyle       `json:"title,omitempty"`
	Subtitle *TextStyle       `json:"subtitle,omitempty"`
	Body     *TextStyle       `json:"body,omitempty"`
	Links    *TextStyle       `json:"links,omitempty"`
	Position *ContentPosition `json:"position,omitempty"`
}

// CardStyle is the style of the card frame itself.
type CardStyle struct {
	Height          *string       `json:"height,omitempty"          css:"length"`
	Width           *string       `json:"width,omitempty"           css:"length"`
	BackgroundColor *string       `json:"backgroundColor,omitempty" css:"color"`
	CornerRadius    *CornerRadius `json:"cornerRadius,omitempty"`
	Resizable       *bool         `json:"resizable,omitempty"`
}

// ImageStyle is the style of a card image.
type ImageStyle struct {
	Position        *ImagePosition `json:"position,omitempty"`
	Fit             *ImageFit      `json:"fit,omitempty"`
	Padding         *Padding       `json:"padding,omitempty"`
	CornerRadius    *CornerRadius  `json:"cornerRadius,omitempty"`
	GradientOverlay *bool          `json:"gradientOverlay,omitempty"`
}

// IconStyle is the style of the action icon button.
type IconStyle struct {
	Variant   *IconVariant  `json:"variant,omitempty"`
	Size      *IconSize     `json:"size,omitempty"`
	Position  *IconPosition `json:"position,omitempty"`
	Padding   *Padding      `json:"padding,omitempty"`
	Disabled  *bool         `json:"disabled,omitempty"`
	AriaLabel *string       `json:"ariaLabel,omitempty"`
}

// Template is one cascade tier: the built-in default, the user's global
// settings, a named template, or the parts of an inline block that apply to
// every card.
type Template struct {
	CardStyle        *CardStyle    `json:"cardStyle,omitempty"`
	ImageStyle       *ImageStyle   `json:"imageStyle,omitempty"`
	ContentStyle     *ContentStyle `json:"contentStyle,omitempty"`
	IconStyle        *IconStyle    `json:"iconStyle,omitempty"`
	HorizontalScroll *bool         `json:"horizontalScroll,omitempty"`
}

// Tier names a position in the cascade, lowest precedence first.
type Tier int

const (
	TierDefault Tier = iota
	TierGlobal
	TierTemplate
	TierInline
)

func (t Tier) String() string {
	switch t {
	case TierDefault:
		return "default"
	case TierGlobal:
		return "global"
	case TierTemplate:
		return "template"
	case TierInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Ptr returns a pointer to v. Style trees mark presence with pointers, so
// literals need one.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Role returns the typography of the named text role ("heading", "title",
// "subtitle", "body" or "links"). It returns nil for an unknown role or a
// nil receiver.
func (c *ContentStyle) Role(name string) *TextStyle {
	if c == nil {
		return nil
	}
	switch name {
	case "heading":
		return c.Heading
	case "title":
		return c.Title
	case "subtitle":
		return c.Subtitle
	case "body":
		return c.Body
	case "links":
		return c.Links
	}
	return nil
}

// Roles lists the text roles in display order.
var Roles = []string{"heading", "title", "subtitle", "body", "links"}

// Card returns the card style of t, nil-safe.
func (t *Template) Card() *CardStyle {
	if t == nil {
		return nil
	}
	return t.CardStyle
}

// Image returns the image style of t, nil-safe.
func (t *Template) Image() *ImageStyle {
	if t == nil {
		return nil
	}
	return t.ImageStyle
}

// Content returns the content style of t, nil-safe.
func (t *Template) Content() *ContentStyle {
	if t == nil {
		return nil
	}
	return t.ContentStyle
}

// Icon returns the icon style of t, nil-safe.
func (t *Template) Icon() *IconStyle {
	if t == nil {
		return nil
	}
	return t.IconStyle
}
