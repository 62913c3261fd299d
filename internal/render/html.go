package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/style"
)

// ErrorMessage is the text shown in place of a block that failed to parse.
const ErrorMessage = "Failed to render cards. Please check your syntax. Error: "

const gradient = "linear-gradient(to top, rgba(0,0,0,0.4), rgba(0,0,0,0) 200px), " +
	"linear-gradient(to top, rgba(0,0,0,0.8), rgba(0,0,0,0) 300px)"

// ErrorState returns the one-line message shown instead of a block's cards.
func ErrorState(err error) string {
	return ErrorMessage + err.Error()
}

// HTML writes view as an HTML fragment.
func HTML(w io.Writer, view *card.View) error {
	doc := newDocument()
	ViewElement(&doc.Element, view)
	return write(w, doc)
}

// ErrorHTML writes the error state of a block as an HTML fragment.
func ErrorHTML(w io.Writer, err error) error {
	doc := newDocument()
	ErrorElement(&doc.Element, err)
	return write(w, doc)
}

// Page is one block of a standalone HTML document: either a view or the
// error that replaced it.
type Page struct {
	View *card.View
	Err  error
}

// HTMLDocument writes a complete HTML page holding every block in order.
func HTMLDocument(w io.Writer, title string, blocks []Page) error {
	doc := newDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(title)
	link := head.CreateElement("link")
	link.CreateAttr("rel", "stylesheet")
	link.CreateAttr("href", "https://fonts.googleapis.com/icon?family=Material+Icons+Outlined")

	body := html.CreateElement("body")
	for _, b := range blocks {
		section := body.CreateElement("section")
		if b.Err != nil {
			ErrorElement(section, b.Err)
			continue
		}
		ViewElement(section, b.View)
	}
	return write(w, doc)
}

// ErrorElement appends the error state of a block to parent.
func ErrorElement(parent *etree.Element, err error) {
	div := parent.CreateElement("div")
	div.CreateAttr("class", "cardview-error")
	div.CreateAttr("style", "color: red;")
	div.SetText(ErrorState(err))
}

// ViewElement appends the container of a resolved view to parent.
func ViewElement(parent *etree.Element, view *card.View) {
	var d decls
	d.add("display", "flex")
	d.add("gap", "16px")
	if view.HorizontalScroll {
		d.add("flex-wrap", "nowrap")
		d.add("overflow-x", "auto")
	} else {
		d.add("flex-wrap", "wrap")
	}

	container := parent.CreateElement("div")
	container.CreateAttr("class", "cardview")
	container.CreateAttr("style", d.String())
	for i := range view.Cards {
		cardElement(container, &view.Cards[i])
	}
}

func cardElement(parent *etree.Element, c *card.Resolved) {
	s := c.Style
	var d decls
	d.add("display", "flex")
	d.add("flex-direction", direction(c))
	d.add("position", "relative")
	d.add("overflow", "hidden")
	d.add("box-sizing", "border-box")
	d.add("width", style.Deref(s.Width))
	d.add("height", style.Deref(s.Height))
	d.add("background-color", style.Deref(s.BackgroundColor))
	d.add("border-radius", radius(s.CornerRadius))
	if style.Deref(s.Resizable) {
		d.add("resize", "both")
	} else {
		d.add("resize", "none")
	}

	div := parent.CreateElement("div")
	div.CreateAttr("class", "cardview-card")
	div.CreateAttr("style", d.String())

	imageFirst := c.Image == nil || style.Deref(c.Image.Style.Position) != "bottom"
	if c.Image != nil && imageFirst {
		imageElement(div, c.Image)
	}
	if c.Content != nil {
		contentElement(div, c.Content)
	}
	if c.Image != nil && !imageFirst {
		imageElement(div, c.Image)
	}
	if len(c.Metadata.Tags) > 0 {
		tags := div.CreateElement("div")
		tags.CreateAttr("class", "cardview-tags")
		for _, tag := range c.Metadata.Tags {
			span := tags.CreateElement("span")
			span.CreateAttr("class", "cardview-tag")
			span.SetText(tag)
		}
	}
	if c.ActionIcon != nil {
		iconElement(div, c.ActionIcon)
	}
}

// direction lays out image and content along the image position.
func direction(c *card.Resolved) string {
	if c.Image == nil {
		return "column"
	}
	switch style.Deref(c.Image.Style.Position) {
	case "left":
		return "row"
	case "right":
		return "row-reverse"
	}
	return "column"
}

func imageElement(parent *etree.Element, img *card.ResolvedImage) {
	s := img.Style
	background := style.Deref(s.Position) == "background"

	var wrap decls
	if background {
		wrap.add("position", "absolute")
		wrap.add("inset", "0")
		wrap.add("z-index", "0")
	} else {
		wrap.add("position", "relative")
		wrap.add("flex", "1 1 0")
		wrap.add("min-height", "0")
		wrap.add("min-width", "0")
	}
	wrap.add("padding", padding(s.Padding))
	wrap.add("box-sizing", "border-box")

	div := parent.CreateElement("div")
	div.CreateAttr("class", "cardview-image")
	div.CreateAttr("style", wrap.String())

	var d decls
	d.add("display", "block")
	d.add("width", "100%")
	d.add("height", "100%")
	d.add("object-fit", string(style.Deref(s.Fit)))
	d.add("border-radius", radius(s.CornerRadius))

	el := div.CreateElement("img")
	el.CreateAttr("src", img.Src)
	el.CreateAttr("alt", "")
	el.CreateAttr("loading", "lazy")
	el.CreateAttr("style", d.String())

	if style.Deref(s.GradientOverlay) {
		overlay := div.CreateElement("div")
		overlay.CreateAttr("class", "cardview-gradient")
		overlay.CreateAttr("style", "position: absolute; inset: 0; background: "+gradient)
	}
}

func contentElement(parent *etree.Element, c *card.ResolvedContent) {
	d := decls{"display: flex", "flex-direction: column", "position: relative", "z-index: 1", "padding: 8px"}
	d = append(d, contentAlign(c.Position)...)

	div := parent.CreateElement("div")
	div.CreateAttr("class", "cardview-content")
	div.CreateAttr("style", d.String())

	if c.Heading != nil {
		textElement(div, c.Heading, "")
	}

	rest := div
	if c.Expandable {
		details := div.CreateElement("details")
		details.CreateAttr("class", "cardview-expandable")
		summary := details.CreateElement("summary")
		summary.CreateAttr("style", "cursor: pointer")
		if c.Title != nil {
			textElement(summary, c.Title, c.Link)
		}
		if c.Subtitle != nil {
			textElement(summary, c.Subtitle, "")
		}
		rest = details
	} else {
		if c.Title != nil {
			textElement(div, c.Title, c.Link)
		}
		if c.Subtitle != nil {
			textElement(div, c.Subtitle, "")
		}
	}

	if c.Body != nil {
		textElement(rest, c.Body, "")
	}
	for i, item := range c.List {
		linkElement(rest, item, i < len(c.List)-1)
	}
}

// textElement renders a text section; headings get heading tags, other
// levels a paragraph carrying the level as a class.
func textElement(parent *etree.Element, t *card.ResolvedText, href string) {
	level := style.Deref(t.Typography.Level)
	tag := "p"
	if strings.HasPrefix(string(level), "h") {
		tag = string(level)
	}
	el := parent.CreateElement(tag)
	el.CreateAttr("class", "cardview-"+string(level))
	el.CreateAttr("style", textDecls(t.Typography).String())

	if href == "" {
		el.SetText(t.Text)
		return
	}
	a := el.CreateElement("a")
	a.CreateAttr("href", href)
	a.CreateAttr("data-href", href)
	a.CreateAttr("style", "color: inherit")
	a.SetText(t.Text)
}

func linkElement(parent *etree.Element, item card.ResolvedLink, rule bool) {
	div := parent.CreateElement("div")
	div.CreateAttr("style", "margin-bottom: 8px")

	a := div.CreateElement("a")
	a.CreateAttr("class", "cardview-link")
	a.CreateAttr("href", item.Link)
	a.CreateAttr("style", textDecls(item.Typography).String())
	if item.Icon != "" {
		icon := a.CreateElement("span")
		icon.CreateAttr("class", "material-icons-outlined")
		icon.CreateAttr("aria-hidden", "true")
		icon.SetText(item.Icon)
		a.CreateText(" ")
	}
	a.CreateText(item.Text)

	if rule {
		hr := div.CreateElement("hr")
		hr.CreateAttr("style", "border: none; border-top: 1px solid #DDDDDD; margin: 8px 0")
	}
}

func iconElement(parent *etree.Element, icon *card.ResolvedIcon) {
	s := icon.Style
	d := decls{"position: absolute", "z-index: 2"}
	d = append(d, iconOffsets(style.Deref(s.Position), s.Padding)...)

	btn := parent.CreateElement("button")
	btn.CreateAttr("type", "button")
	btn.CreateAttr("class", fmt.Sprintf("cardview-action cardview-action-%s cardview-action-%s",
		style.Deref(s.Variant), style.Deref(s.Size)))
	btn.CreateAttr("aria-label", style.Deref(s.AriaLabel))
	btn.CreateAttr("data-category", string(icon.Category))
	btn.CreateAttr("style", d.String())
	if style.Deref(s.Disabled) {
		btn.CreateAttr("disabled", "disabled")
	}
	glyph := btn.CreateElement("span")
	glyph.CreateAttr("class", "material-icons-outlined")
	glyph.SetText(icon.Icon.Material)
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	return doc
}

// voidElements never take a closing tag.
var voidElements = map[string]bool{"img": true, "hr": true, "meta": true, "link": true, "br": true}

// closeEmpty gives every empty non-void element an empty text child so it
// is written with an explicit end tag rather than self-closed.
func closeEmpty(e *etree.Element) {
	for _, child := range e.ChildElements() {
		closeEmpty(child)
	}
	if e.Tag != "" && len(e.Child) == 0 && !voidElements[e.Tag] {
		e.CreateText("")
	}
}

func write(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	closeEmpty(&doc.Element)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}
