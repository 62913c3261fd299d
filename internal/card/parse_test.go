package card

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/gorewood/cardview/internal/style"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantCards    int
		wantTemplate string
		wantInline   bool
	}{
		{name: "empty array", source: `[]`, wantCards: 0},
		{name: "array", source: `[{}, {"style":{"width":"10px"}}]`, wantCards: 2},
		{name: "fenced", source: "```cardview\n[{}]\n```", wantCards: 1},
		{name: "fenced without info", source: "```\n[{}]\n```\n", wantCards: 1},
		{name: "object with name", source: `{"template":"wide","cards":[{}]}`, wantCards: 1, wantTemplate: "wide"},
		{name: "object with inline", source: `{"template":{"cardStyle":{"height":"1px"}},"cards":[]}`, wantInline: true},
		{name: "null template", source: `{"template":null,"cards":[{}]}`, wantCards: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := ParseBlock(tt.source)
			if err != nil {
				t.Fatalf("ParseBlock() error = %v", err)
			}
			if len(block.Cards) != tt.wantCards {
				t.Errorf("len(Cards) = %d, want %d", len(block.Cards), tt.wantCards)
			}
			switch {
			case tt.wantTemplate != "":
				if block.Template == nil || block.Template.Name != tt.wantTemplate {
					t.Errorf("Template = %+v, want name %q", block.Template, tt.wantTemplate)
				}
			case tt.wantInline:
				if block.Template == nil || block.Template.Inline == nil {
					t.Fatalf("Template = %+v, want inline", block.Template)
				}
				if got := style.Deref(block.Template.Inline.Card().Height); got != "1px" {
					t.Errorf("inline height = %q", got)
				}
			default:
				if block.Template != nil {
					t.Errorf("Template = %+v, want nil", block.Template)
				}
			}
		})
	}
}

func TestParseBlock_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "empty", source: "  \n", want: "empty block"},
		{name: "not json", source: `[{]`, want: "invalid JSON at line 1"},
		{name: "syntax error line", source: "[\n{},\n{\"style\": }\n]", want: "invalid JSON at line 3"},
		{name: "string", source: `"not an array"`, want: "parsed content is not an array"},
		{name: "number", source: `42`, want: "parsed content is not an array"},
		{name: "object without cards", source: `{"template":"wide"}`, want: "parsed content is not an array"},
		{name: "object with cards object", source: `{"cards":{}}`, want: "parsed content is not an array"},
		{name: "entry not object", source: `[{}, "card", {}]`, want: "card at index 1 is not an object"},
		{name: "entry null", source: `[null]`, want: "card at index 0 is not an object"},
		{name: "wrong field type", source: `[{"style":{"resizable":"yes"}}]`, want: "card at index 0: style.resizable"},
		{name: "template number", source: `{"template":3,"cards":[]}`, want: "template must be a string or an object"},
		{name: "link number", source: `[{"content":{"link":7}}]`, want: "link must be a note path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := ParseBlock(tt.source)
			if err == nil {
				t.Fatal("ParseBlock() expected error")
			}
			if block != nil {
				t.Errorf("ParseBlock() returned %d cards alongside an error", len(block.Cards))
			}
			if !IsContentError(err) {
				t.Errorf("error %T is not a ContentError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNoteLink(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`[{"content":{"link":"Notes/A.md"}}]`, "Notes/A.md"},
		{`[{"content":{"link":true}}]`, ""},
		{`[{"content":{"link":false}}]`, ""},
		{`[{"content":{}}]`, ""},
	}
	for _, tt := range tests {
		block, err := ParseBlock(tt.source)
		if err != nil {
			t.Fatalf("ParseBlock(%s) error = %v", tt.source, err)
		}
		if got := block.Cards[0].Content.Link.Path; got != tt.want {
			t.Errorf("ParseBlock(%s) link = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[]", "[]"},
		{"```cardview\n[1]\n```", "[1]\n"},
		{"  ```cardview\r\n[1]\r\n```  ", "[1]\r\n"},
		{"```json\n[1]\n```", "```json\n[1]\n```"},
		{"```cardview", ""},
	}
	for _, tt := range tests {
		if got := StripFence(tt.in); got != tt.want {
			t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	block, err := ParseBlock(`{
		"template": {"imageStyle": {"fit": "stretch"}},
		"cards": [
			{"style": {"width": "wide"}},
			{
				"content": {
					"title": {"text": "T", "typography": {"fontWeight": "heavy"}},
					"list": [{"text": "x", "link": "y", "typography": {"color": "12px"}}],
					"position": "middle"
				},
				"actionIcon": {"category": "starred", "size": "xl"}
			},
			{"image": {"src": "a.png", "style": {"position": "left"}}}
		]
	}`)
	if err != nil {
		t.Fatalf("ParseBlock() error = %v", err)
	}

	err = Validate(block)
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if !IsContentError(err) {
		t.Errorf("Validate() error %T is not a ContentError", err)
	}

	var paths []string
	for _, e := range multierr.Errors(errors.Unwrap(err)) {
		var fe *style.FieldError
		if !errors.As(e, &fe) {
			t.Fatalf("problem %v is %T, want *style.FieldError", e, e)
		}
		paths = append(paths, fe.Path)
	}
	want := []string{
		"template.imageStyle.fit",
		"cards[0].style.width",
		"cards[1].content.title.typography.fontWeight",
		"cards[1].content.list[0].typography.color",
		"cards[1].content.position",
		"cards[1].actionIcon.category",
		"cards[1].actionIcon.size",
	}
	if strings.Join(paths, "\n") != strings.Join(want, "\n") {
		t.Errorf("problem paths:\n%s\nwant:\n%s", strings.Join(paths, "\n"), strings.Join(want, "\n"))
	}
}

func TestValidate_OK(t *testing.T) {
	block, err := ParseBlock(`[{"style":{"resizable":false},"actionIcon":{"category":"saved"}}]`)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(block); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
