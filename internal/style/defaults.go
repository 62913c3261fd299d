package style

// Default returns the built-in cascade tier. Every field is set, so merging
// any number of sparse tiers on top of it yields a complete style tree.
// Each call returns a fresh tree that the caller may modify.
func Default() *Template {
	return &Template{
		CardStyle: &CardStyle{
			Height:          Ptr("200px"),
			Width:           Ptr("200px"),
			BackgroundColor: Ptr("#F8F8FF"),
			CornerRadius:    uniformRadius("8px"),
			Resizable:       Ptr(true),
		},
		ImageStyle: &ImageStyle{
			Position: Ptr(ImagePosition("center")),
			Fit:      Ptr(ImageFit("cover")),
			Padding: &Padding{
				Top:    Ptr("0px"),
				Right:  Ptr("0px"),
				Bottom: Ptr("0px"),
				Left:   Ptr("0px"),
			},
			CornerRadius:    uniformRadius("0px"),
			GradientOverlay: Ptr(false),
		},
		ContentStyle: &ContentStyle{
			Heading:  textStyle("body-xs", "Karla", "regular", "12px", "#707070"),
			Title:    textStyle("title-md", "Encode Sans SC", "bold", "16px", "#000000"),
			Subtitle: textStyle("body-sm", "Assistant", "regular", "11px", "#707070"),
			Body:     textStyle("body-sm", "Assistant", "regular", "11px", "#707070"),
			Links:    textStyle("body-xs", "Karla", "regular", "12px", "#39383A"),
			Position: Ptr(ContentPosition("top")),
		},
		IconStyle: &IconStyle{
			Variant:  Ptr(IconVariant("plain")),
			Size:     Ptr(IconSize("md")),
			Position: Ptr(IconPosition("top-right")),
			Padding: &Padding{
				Top:    Ptr("0px"),
				Right:  Ptr("0px"),
				Bottom: Ptr("0px"),
				Left:   Ptr("0px"),
			},
			Disabled:  Ptr(false),
			AriaLabel: Ptr("Action Icon"),
		},
		HorizontalScroll: Ptr(false),
	}
}

func uniformRadius(r string) *CornerRadius {
	return &CornerRadius{
		TopLeft:     Ptr(r),
		TopRight:    Ptr(r),
		BottomLeft:  Ptr(r),
		BottomRight: Ptr(r),
	}
}

func textStyle(level, font, weight, size, color string) *TextStyle {
	return &TextStyle{
		Level:      Ptr(TextLevel(level)),
		Font:       Ptr(font),
		FontWeight: Ptr(FontWeight(weight)),
		FontSize:   Ptr(size),
		Color:      Ptr(color),
		Margin: &Margin{
			Top:    Ptr("0px"),
			Right:  Ptr("0px"),
			Bottom: Ptr("0px"),
			Left:   Ptr("0px"),
		},
	}
}
