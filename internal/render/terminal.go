package render

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/style"
)

// Terminal cell geometry used to convert CSS pixels.
const (
	cellWidthPx  = 8
	cellHeightPx = 16

	minCardCols = 16
	minCardRows = 3
	maxCardRows = 40

	defaultWidth = 80
)

// TerminalOptions configures Terminal.
type TerminalOptions struct {
	// Width is the available width in cells; 0 means 80.
	Width int
	// Color enables colours and text attributes.
	Color bool
}

// Terminal writes view as boxes of text.
func Terminal(w io.Writer, view *card.View, opts TerminalOptions) error {
	if _, err := io.WriteString(w, TerminalString(view, opts)+"\n"); err != nil {
		return fmt.Errorf("writing cards: %w", err)
	}
	return nil
}

// TerminalError returns the error state for terminals.
func TerminalError(err error, color bool) string {
	s := lipgloss.NewStyle()
	if color {
		s = s.Foreground(lipgloss.Color("9"))
	}
	return s.Render(ErrorState(err))
}

// TerminalString renders view. Cards flow left to right and wrap at the
// available width unless the view scrolls horizontally.
func TerminalString(view *card.View, opts TerminalOptions) string {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	if len(view.Cards) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(view.Cards))
	for i := range view.Cards {
		boxes = append(boxes, terminalCard(&view.Cards[i], width, opts.Color))
	}
	if view.HorizontalScroll {
		return lipgloss.JoinHorizontal(lipgloss.Top, spaced(boxes)...)
	}

	var rows []string
	var row []string
	used := 0
	for _, box := range boxes {
		w := lipgloss.Width(box)
		if len(row) > 0 && used+1+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(row)...))
			row, used = nil, 0
		}
		if len(row) > 0 {
			used++
		}
		row = append(row, box)
		used += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(row)...))
	return strings.Join(rows, "\n")
}

// spaced puts a one-column gap between boxes.
func spaced(boxes []string) []string {
	out := make([]string, 0, 2*len(boxes))
	for i, b := range boxes {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

func terminalCard(c *card.Resolved, maxWidth int, color bool) string {
	cols := cells(style.Deref(c.Style.Width), cellWidthPx, 200)
	cols = max(minCardCols, min(cols, maxWidth-2))
	rows := max(minCardRows, min(cells(style.Deref(c.Style.Height), cellHeightPx, 200), maxCardRows))

	border := lipgloss.NormalBorder()
	if px, ok := style.Pixels(style.Deref(c.Style.CornerRadius.TopLeft)); ok && px > 0 {
		border = lipgloss.RoundedBorder()
	}

	box := lipgloss.NewStyle().
		Border(border).
		Width(cols).
		Height(rows).
		MaxHeight(rows + 2).
		Padding(0, 1)

	var bg *colorful.Color
	if color {
		box = box.BorderForeground(lipgloss.Color("8"))
		if col, ok := parseColor(style.Deref(c.Style.BackgroundColor)); ok {
			bg = &col
			box = box.Background(lipgloss.Color(col.Hex()))
		}
	}

	inner := cols - 2
	body := cardBody(c, inner, color, bg)
	if c.Content != nil {
		switch c.Content.Position {
		case "right":
			box = box.Align(lipgloss.Right)
		case "bottom":
			box = box.AlignVertical(lipgloss.Bottom)
		}
	}
	return box.Render(body)
}

// cardBody lays out the lines of one card inside inner columns.
func cardBody(c *card.Resolved, inner int, color bool, bg *colorful.Color) string {
	var text []string
	if c.Content != nil {
		text = contentLines(c.Content, color, bg)
	}
	if len(c.Metadata.Tags) > 0 {
		tags := make([]string, len(c.Metadata.Tags))
		for i, t := range c.Metadata.Tags {
			tags[i] = "#" + t
		}
		text = append(text, dim(strings.Join(tags, " "), color))
	}

	var parts []string
	if c.ActionIcon != nil && isTop(c.ActionIcon) {
		parts = append(parts, iconLine(c.ActionIcon, inner))
	}

	content := strings.Join(text, "\n")
	if c.Image != nil {
		img := imageLine(c.Image, color)
		switch style.Deref(c.Image.Style.Position) {
		case "bottom":
			content = joinLines(content, img)
		case "left", "right":
			imgCol := lipgloss.NewStyle().Width(max(inner/3, 6)).Render(img)
			textCol := lipgloss.NewStyle().Width(max(inner-lipgloss.Width(imgCol)-1, 1)).Render(content)
			if style.Deref(c.Image.Style.Position) == "left" {
				content = lipgloss.JoinHorizontal(lipgloss.Top, imgCol, " ", textCol)
			} else {
				content = lipgloss.JoinHorizontal(lipgloss.Top, textCol, " ", imgCol)
			}
		default:
			content = joinLines(img, content)
		}
	}
	if content != "" {
		parts = append(parts, content)
	}

	if c.ActionIcon != nil && !isTop(c.ActionIcon) {
		parts = append(parts, iconLine(c.ActionIcon, inner))
	}
	return strings.Join(parts, "\n")
}

func contentLines(c *card.ResolvedContent, color bool, bg *colorful.Color) []string {
	var lines []string
	if c.Heading != nil {
		lines = append(lines, textLine(c.Heading, color, bg))
	}
	if c.Title != nil {
		title := textLine(c.Title, color, bg)
		if c.Expandable {
			title = "▸ " + title
		}
		lines = append(lines, title)
	}
	if c.Subtitle != nil {
		lines = append(lines, textLine(c.Subtitle, color, bg))
	}
	if c.Expandable {
		return lines
	}
	if c.Body != nil {
		lines = append(lines, textLine(c.Body, color, bg))
	}
	for _, item := range c.List {
		s := textStyle(item.Typography, color, bg)
		if color {
			s = s.Underline(true)
		}
		lines = append(lines, "• "+s.Render(item.Text))
	}
	return lines
}

func textLine(t *card.ResolvedText, color bool, bg *colorful.Color) string {
	return textStyle(t.Typography, color, bg).Render(t.Text)
}

// textStyle maps typography onto terminal attributes. Sizes and families
// have no terminal equivalent; weight becomes bold or faint.
func textStyle(t style.TextStyle, color bool, bg *colorful.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if !color {
		return s
	}
	switch style.Deref(t.FontWeight) {
	case "bold", "medium":
		s = s.Bold(true)
	case "light":
		s = s.Faint(true)
	}
	if fg, ok := parseColor(style.Deref(t.Color)); ok && readable(fg, bg) {
		s = s.Foreground(lipgloss.Color(fg.Hex()))
	}
	return s
}

func imageLine(img *card.ResolvedImage, color bool) string {
	name := path.Base(img.Src)
	if name == "." || name == "/" {
		name = img.Src
	}
	label := "▧ " + name
	if style.Deref(img.Style.Position) == "background" {
		label += " (background)"
	}
	return dim(label, color)
}

func iconLine(icon *card.ResolvedIcon, inner int) string {
	glyph := icon.Icon.Glyph
	if glyph == "" {
		glyph = "•"
	}
	s := lipgloss.NewStyle().Width(inner)
	switch style.Deref(icon.Style.Position) {
	case "top-left", "bottom-left":
		s = s.Align(lipgloss.Left)
	case "top-center", "bottom-center":
		s = s.Align(lipgloss.Center)
	default:
		s = s.Align(lipgloss.Right)
	}
	return s.Render(glyph)
}

func isTop(icon *card.ResolvedIcon) bool {
	return strings.HasPrefix(string(style.Deref(icon.Style.Position)), "top")
}

func dim(s string, color bool) string {
	if !color {
		return s
	}
	return lipgloss.NewStyle().Faint(true).Render(s)
}

func joinLines(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n" + b
}

// cells converts a CSS length to terminal cells, falling back to
// fallbackPx for lengths that are not in pixels.
func cells(value string, cellPx, fallbackPx float64) int {
	px, ok := style.Pixels(value)
	if !ok {
		px = fallbackPx
	}
	return int(px / cellPx)
}

// parseColor reads a hex colour.
func parseColor(value string) (colorful.Color, bool) {
	c, err := colorful.Hex(value)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// readable reports whether fg stands out against bg.
func readable(fg colorful.Color, bg *colorful.Color) bool {
	if bg == nil {
		return true
	}
	return fg.DistanceCIEDE2000(*bg) > 0.1
}
