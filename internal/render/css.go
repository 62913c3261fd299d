// Package render draws resolved card views as HTML or terminal text.
package render

import (
	"strings"

	"github.com/gorewood/cardview/internal/style"
)

// decls is an ordered list of CSS declarations.
type decls []string

func (d *decls) add(prop, value string) {
	if value == "" {
		return
	}
	*d = append(*d, prop+": "+value)
}

func (d decls) String() string {
	return strings.Join(d, "; ")
}

// radius renders a corner radius in CSS shorthand order.
func radius(r *style.CornerRadius) string {
	if r == nil {
		return ""
	}
	return strings.Join([]string{
		orZero(r.TopLeft), orZero(r.TopRight), orZero(r.BottomRight), orZero(r.BottomLeft),
	}, " ")
}

// padding renders padding in CSS shorthand order.
func padding(p *style.Padding) string {
	if p == nil {
		return ""
	}
	return strings.Join([]string{orZero(p.Top), orZero(p.Right), orZero(p.Bottom), orZero(p.Left)}, " ")
}

func margin(m *style.Margin) string {
	if m == nil {
		return ""
	}
	return strings.Join([]string{orZero(m.Top), orZero(m.Right), orZero(m.Bottom), orZero(m.Left)}, " ")
}

func orZero(p *string) string {
	if p == nil || *p == "" {
		return "0"
	}
	return *p
}

var fontWeights = map[style.FontWeight]string{
	"light":   "300",
	"regular": "400",
	"medium":  "500",
	"bold":    "700",
}

// textDecls renders typography.
func textDecls(t style.TextStyle) decls {
	var d decls
	if font := style.Deref(t.Font); font != "" {
		d.add("font-family", quoteFont(font))
	}
	d.add("font-weight", fontWeights[style.Deref(t.FontWeight)])
	d.add("font-size", style.Deref(t.FontSize))
	d.add("color", style.Deref(t.Color))
	d.add("margin", margin(t.Margin))
	return d
}

// quoteFont quotes family names that contain spaces.
func quoteFont(font string) string {
	if strings.ContainsAny(font, " ") && !strings.ContainsAny(font, `"',`) {
		return `"` + font + `"`
	}
	return font
}

// iconOffsets places the action icon inside the card, using the icon
// padding as the inset from the anchoring edges.
func iconOffsets(pos style.IconPosition, p *style.Padding) decls {
	var top, right, bottom, left string
	if p != nil {
		top, right, bottom, left = orZero(p.Top), orZero(p.Right), orZero(p.Bottom), orZero(p.Left)
	} else {
		top, right, bottom, left = "0", "0", "0", "0"
	}

	var d decls
	switch pos {
	case "top-left":
		d.add("top", top)
		d.add("left", left)
	case "bottom-left":
		d.add("bottom", bottom)
		d.add("left", left)
	case "bottom-right":
		d.add("bottom", bottom)
		d.add("right", right)
	case "top-center":
		d.add("top", top)
		d.add("left", "50%")
		d.add("transform", "translateX(-50%)")
	case "bottom-center":
		d.add("bottom", bottom)
		d.add("left", "50%")
		d.add("transform", "translateX(-50%)")
	default:
		d.add("top", top)
		d.add("right", right)
	}
	return d
}

// contentAlign aligns the text content box inside the card.
func contentAlign(pos style.ContentPosition) decls {
	var d decls
	switch pos {
	case "top":
		d.add("align-self", "flex-start")
	case "bottom":
		d.add("align-self", "flex-end")
		d.add("margin-top", "auto")
	case "left":
		d.add("align-self", "flex-start")
		d.add("text-align", "left")
		d.add("width", "100%")
	case "right":
		d.add("align-self", "flex-end")
		d.add("text-align", "right")
		d.add("width", "100%")
	default:
		d.add("align-self", "stretch")
	}
	return d
}
