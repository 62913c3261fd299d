package card

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/gorewood/cardview/internal/style"
	"github.com/gorewood/cardview/internal/template"
	"github.com/gorewood/cardview/internal/vault"
)

// TemplateSource looks up named templates.
type TemplateSource interface {
	Load(ctx context.Context, ref string) (*template.Template, error)
}

// Options configures a Resolver. Every field is optional.
type Options struct {
	// Vault resolves image paths and names note links. Without one, image
	// sources pass through and note links stay as written.
	Vault vault.Vault
	// Templates resolves string template references.
	Templates TemplateSource
	// Global is the user's settings tier.
	Global *style.Template
	Logger *zap.Logger
}

// Resolver turns block source into fully styled cards.
type Resolver struct {
	vault     vault.Vault
	templates TemplateSource
	global    *style.Template
	log       *zap.Logger
}

// NewResolver returns a Resolver for opts.
func NewResolver(opts Options) *Resolver {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		vault:     opts.Vault,
		templates: opts.Templates,
		global:    opts.Global,
		log:       log,
	}
}

// View is a resolved block, ready to render.
type View struct {
	// Template names the template applied, if any.
	Template         string     `json:"template,omitempty"`
	HorizontalScroll bool       `json:"horizontalScroll"`
	Cards            []Resolved `json:"cards"`
}

// WriteJSON writes v as indented JSON.
func (v *View) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Resolved is one card with every style field present.
type Resolved struct {
	Style      style.CardStyle  `json:"style"`
	Image      *ResolvedImage   `json:"image,omitempty"`
	Content    *ResolvedContent `json:"content,omitempty"`
	ActionIcon *ResolvedIcon    `json:"actionIcon,omitempty"`
	Metadata   Metadata         `json:"metadata"`
}

// ResolvedImage is a card image with its resource URL.
type ResolvedImage struct {
	Src   string           `json:"src"`
	Style style.ImageStyle `json:"style"`
}

// ResolvedContent is the text content of a card.
type ResolvedContent struct {
	// Link is the URI the title opens, empty for none.
	Link       string                `json:"link,omitempty"`
	Heading    *ResolvedText         `json:"heading,omitempty"`
	Title      *ResolvedText         `json:"title,omitempty"`
	Subtitle   *ResolvedText         `json:"subtitle,omitempty"`
	Body       *ResolvedText         `json:"body,omitempty"`
	List       []ResolvedLink        `json:"list,omitempty"`
	Position   style.ContentPosition `json:"position"`
	Expandable bool                  `json:"expandable"`
}

// Sections returns the present text sections in display order with their
// roles.
func (c *ResolvedContent) Sections() []RoleText {
	var out []RoleText
	for _, rt := range []RoleText{
		{"heading", c.Heading},
		{"title", c.Title},
		{"subtitle", c.Subtitle},
		{"body", c.Body},
	} {
		if rt.Text != nil {
			out = append(out, rt)
		}
	}
	return out
}

// RoleText pairs a text section with its role.
type RoleText struct {
	Role string
	Text *ResolvedText
}

// ResolvedText is a text section with its full typography.
type ResolvedText struct {
	Text       string          `json:"text"`
	Typography style.TextStyle `json:"typography"`
}

// ResolvedLink is a list entry with its URI and typography.
type ResolvedLink struct {
	Icon       string          `json:"icon,omitempty"`
	Text       string          `json:"text"`
	Link       string          `json:"link"`
	Typography style.TextStyle `json:"typography"`
}

// ResolvedIcon is an action icon with its style and visual.
type ResolvedIcon struct {
	Category IconCategory    `json:"category"`
	Icon     Icon            `json:"icon"`
	Style    style.IconStyle `json:"style"`
}

// Resolve parses, validates and resolves one block. Any parse or validation
// problem aborts before a card is resolved; the error is a *ContentError.
func (r *Resolver) Resolve(ctx context.Context, source string) (*View, error) {
	block, err := ParseBlock(source)
	if err != nil {
		return nil, err
	}
	return r.ResolveBlock(ctx, block)
}

// ResolveBlock validates and resolves an already parsed block.
func (r *Resolver) ResolveBlock(ctx context.Context, block *Block) (*View, error) {
	if err := Validate(block); err != nil {
		return nil, err
	}

	tmpl := r.NormalizeTemplate(ctx, block.Template)
	tiers := tiers{def: style.Default(), global: r.global, tmpl: tmpl}

	view := &View{
		HorizontalScroll: style.Deref(style.Merge(tiers.def, tiers.global, tiers.tmpl).HorizontalScroll),
		Cards:            make([]Resolved, 0, len(block.Cards)),
	}
	if block.Template != nil && block.Template.Inline == nil {
		view.Template = block.Template.Name
	}
	for i := range block.Cards {
		view.Cards = append(view.Cards, r.resolveCard(&block.Cards[i], tiers))
	}
	r.log.Debug("Resolved block", zap.Int("cards", len(view.Cards)), zap.String("template", view.Template))
	return view, nil
}

// NormalizeTemplate turns a template reference into a style tier. An inline
// object is used as is. A name is looked up through the template source;
// when that fails the problem is logged and an empty tier is returned.
func (r *Resolver) NormalizeTemplate(ctx context.Context, ref *TemplateRef) *style.Template {
	switch {
	case ref == nil:
		return &style.Template{}
	case ref.Inline != nil:
		return ref.Inline
	case ref.Name == "" || r.templates == nil:
		return &style.Template{}
	}

	loaded, err := r.templates.Load(ctx, ref.Name)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			r.log.Warn("Template not found", zap.String("template", ref.Name))
		} else {
			r.log.Warn("Unable to load template", zap.String("template", ref.Name), zap.Error(err))
		}
		return &style.Template{}
	}
	r.log.Debug("Loaded template", zap.String("template", loaded.Name), zap.String("source", loaded.Source), zap.String("path", loaded.Path))
	return loaded.Style
}

// tiers holds the three shared cascade tiers below a card's inline values.
type tiers struct {
	def, global, tmpl *style.Template
}

func (r *Resolver) resolveCard(c *Card, t tiers) Resolved {
	out := Resolved{
		Style:    style.Cascade(t.def.Card(), t.global.Card(), t.tmpl.Card(), c.Style),
		Metadata: Metadata{Tags: []string{}},
	}
	if c.Image != nil {
		out.Image = &ResolvedImage{
			Src:   r.resourcePath(c.Image.Src),
			Style: style.Cascade(t.def.Image(), t.global.Image(), t.tmpl.Image(), c.Image.Style),
		}
	}
	if c.Content != nil {
		out.Content = r.resolveContent(c.Content, t)
	}
	if ic := c.ActionIcon; ic != nil {
		icon, _ := IconFor(ic.Category)
		out.ActionIcon = &ResolvedIcon{
			Category: ic.Category,
			Icon:     icon,
			Style:    style.Cascade(t.def.Icon(), t.global.Icon(), t.tmpl.Icon(), &ic.IconStyle),
		}
	}
	if c.Metadata != nil && c.Metadata.Tags != nil {
		out.Metadata.Tags = append(out.Metadata.Tags, c.Metadata.Tags...)
	}
	return out
}

func (r *Resolver) resolveContent(c *Content, t tiers) *ResolvedContent {
	def, global, tmpl := t.def.Content(), t.global.Content(), t.tmpl.Content()
	text := func(role string) *ResolvedText {
		s := c.Section(role)
		if s == nil {
			return nil
		}
		return &ResolvedText{
			Text:       s.Text,
			Typography: style.Cascade(def.Role(role), global.Role(role), tmpl.Role(role), s.Typography),
		}
	}

	position := style.Cascade(def, global, tmpl, &style.ContentStyle{Position: c.Position}).Position
	out := &ResolvedContent{
		Heading:    text("heading"),
		Title:      text("title"),
		Subtitle:   text("subtitle"),
		Body:       text("body"),
		Position:   style.Deref(position),
		Expandable: style.Deref(c.Expandable),
	}
	if !c.Link.IsZero() {
		out.Link = r.noteURI(c.Link.Path)
	}
	for _, item := range c.List {
		out.List = append(out.List, ResolvedLink{
			Icon:       item.Icon,
			Text:       item.Text,
			Link:       r.noteURI(item.Link),
			Typography: style.Cascade(def.Role("links"), global.Role("links"), tmpl.Role("links"), item.Typography),
		})
	}
	return out
}

// resourcePath maps an image reference to a loadable URL. External URLs
// pass through; a vault path that does not exist is logged and passed
// through unchanged.
func (r *Resolver) resourcePath(src string) string {
	if src == "" || isExternal(src) || r.vault == nil {
		return src
	}
	p, err := r.vault.ResourcePath(strings.TrimPrefix(src, "/"))
	if err != nil {
		r.log.Warn("File not found", zap.String("path", src), zap.Error(err))
		return src
	}
	return p
}

// noteURI maps a note path to a URI opening it in the vault. External URLs
// pass through.
func (r *Resolver) noteURI(p string) string {
	if p == "" || isExternal(p) || r.vault == nil {
		return p
	}
	return vault.NoteURI(r.vault.Name(), p)
}

// isExternal reports whether ref is an absolute URL rather than a vault
// path.
func isExternal(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme != "" && len(u.Scheme) > 1
}
