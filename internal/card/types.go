// Package card parses cardview blocks and resolves every card against the
// style cascade.
package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"

	"github.com/gorewood/cardview/internal/style"
)

// Block is one parsed cardview block.
type Block struct {
	// Template is nil when the block names none.
	Template *TemplateRef `json:"template,omitempty"`
	Cards    []Card       `json:"cards"`
}

// TemplateRef is either a template name or path (Name) or an inline
// template object (Inline).
type TemplateRef struct {
	Name   string
	Inline *style.Template
}

var errTemplateKind = errors.New("template must be a string or an object")

// UnmarshalJSON implements json.Unmarshaler.
func (r *TemplateRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errTemplateKind
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.Name)
	case '{':
		r.Inline = new(style.Template)
		return json.Unmarshal(data, r.Inline)
	}
	return errTemplateKind
}

// MarshalJSON implements json.Marshaler.
func (r TemplateRef) MarshalJSON() ([]byte, error) {
	if r.Inline != nil {
		return json.Marshal(r.Inline)
	}
	return json.Marshal(r.Name)
}

// Card is one inline card descriptor. Every field is optional.
type Card struct {
	Style      *style.CardStyle `json:"style,omitempty"`
	Image      *Image           `json:"image,omitempty"`
	Content    *Content         `json:"content,omitempty"`
	ActionIcon *ActionIcon      `json:"actionIcon,omitempty"`
	Metadata   *Metadata        `json:"metadata,omitempty"`
}

// Image is the card image.
type Image struct {
	Src   string            `json:"src"`
	Style *style.ImageStyle `json:"style,omitempty"`
}

// Content is the text content of a card.
type Content struct {
	Link       NoteLink               `json:"link,omitzero"`
	Heading    *TextSection           `json:"heading,omitempty"`
	Title      *TextSection           `json:"title,omitempty"`
	Subtitle   *TextSection           `json:"subtitle,omitempty"`
	Body       *TextSection           `json:"body,omitempty"`
	List       []LinkItem             `json:"list,omitempty"`
	Position   *style.ContentPosition `json:"position,omitempty"`
	Expandable *bool                  `json:"expandable,omitempty"`
}

// Section returns the text section of the named role, or nil.
func (c *Content) Section(role string) *TextSection {
	switch role {
	case "heading":
		return c.Heading
	case "title":
		return c.Title
	case "subtitle":
		return c.Subtitle
	case "body":
		return c.Body
	}
	return nil
}

// sectionRoles are the text roles a card's content can fill.
var sectionRoles = []string{"heading", "title", "subtitle", "body"}

// NoteLink is the note a card's title links to. Blocks written for older
// versions carry a boolean here; it is accepted and names no note.
type NoteLink struct {
	Path string
}

// IsZero reports whether the link names no note.
func (l NoteLink) IsZero() bool {
	return l.Path == ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *NoteLink) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		l.Path = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &l.Path)
	}
	return errors.New("link must be a note path")
}

// MarshalJSON implements json.Marshaler.
func (l NoteLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Path)
}

// TextSection is one text role of a card.
type TextSection struct {
	Text       string           `json:"text"`
	Typography *style.TextStyle `json:"typography,omitempty"`
}

// LinkItem is one entry of a card's link list.
type LinkItem struct {
	Icon       string           `json:"icon,omitempty"`
	Text       string           `json:"text"`
	Link       string           `json:"link"`
	Typography *style.TextStyle `json:"typography,omitempty"`
}

// ActionIcon is the icon button of a card. Its style fields sit beside the
// category in the block and go through the icon cascade.
type ActionIcon struct {
	Category IconCategory `json:"category"`
	style.IconStyle
}

// IconCategory selects the icon glyph.
type IconCategory string

// IconCategories lists the known categories.
var IconCategories = []IconCategory{"favorite", "completed", "saved"}

// Valid reports whether c is a known category.
func (c IconCategory) Valid() bool { return slices.Contains(IconCategories, c) }

// Metadata holds card metadata.
type Metadata struct {
	Tags []string `json:"tags"`
}
