package card

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/gorewood/cardview/internal/style"
)

// Validate checks every inline style value of the block. All problems are
// reported together as one ContentError.
func Validate(b *Block) error {
	var errs error
	if b.Template != nil && b.Template.Inline != nil {
		errs = multierr.Append(errs, style.Validate(b.Template.Inline, "template"))
	}
	for i := range b.Cards {
		errs = multierr.Append(errs, validateCard(&b.Cards[i], fmt.Sprintf("cards[%d]", i)))
	}
	if errs == nil {
		return nil
	}
	return &ContentError{Err: errs}
}

func validateCard(c *Card, prefix string) error {
	var errs error
	errs = multierr.Append(errs, style.Validate(c.Style, prefix+".style"))
	if c.Image != nil {
		errs = multierr.Append(errs, style.Validate(c.Image.Style, prefix+".image.style"))
	}
	if c.Content != nil {
		errs = multierr.Append(errs, validateContent(c.Content, prefix+".content"))
	}
	if ic := c.ActionIcon; ic != nil {
		if !ic.Category.Valid() {
			errs = multierr.Append(errs, &style.FieldError{
				Path:  prefix + ".actionIcon.category",
				Value: string(ic.Category),
				Want:  "one of " + categoryNames(),
			})
		}
		errs = multierr.Append(errs, style.Validate(&ic.IconStyle, prefix+".actionIcon"))
	}
	return errs
}

func validateContent(c *Content, prefix string) error {
	var errs error
	for _, role := range sectionRoles {
		if s := c.Section(role); s != nil {
			errs = multierr.Append(errs, style.Validate(s.Typography, prefix+"."+role+".typography"))
		}
	}
	for i := range c.List {
		errs = multierr.Append(errs, style.Validate(c.List[i].Typography, fmt.Sprintf("%s.list[%d].typography", prefix, i)))
	}
	if c.Position != nil && !c.Position.Valid() {
		errs = multierr.Append(errs, &style.FieldError{
			Path:  prefix + ".position",
			Value: string(*c.Position),
			Want:  "one of " + strings.Join(c.Position.Options(), ", "),
		})
	}
	return errs
}

func categoryNames() string {
	names := make([]string, len(IconCategories))
	for i, c := range IconCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
