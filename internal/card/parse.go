package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ContentError reports a malformed block. The whole block is rejected; no
// card of it is rendered.
type ContentError struct {
	Err error
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ContentError) Unwrap() error {
	return e.Err
}

func contentErrorf(format string, args ...any) *ContentError {
	return &ContentError{Err: fmt.Errorf(format, args...)}
}

// IsContentError reports whether err is, or wraps, a ContentError.
func IsContentError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce)
}

// ParseBlock decodes the body of a cardview block. A surrounding
// ```cardview fence is stripped when present. The body is a JSON array of
// cards or an object with a "cards" array and an optional "template".
func ParseBlock(source string) (*Block, error) {
	data := []byte(strings.TrimSpace(StripFence(source)))
	if len(data) == 0 {
		return nil, contentErrorf("empty block")
	}
	if !json.Valid(data) {
		var v any
		return nil, &ContentError{Err: jsonError(data, json.Unmarshal(data, &v))}
	}

	var (
		items    []json.RawMessage
		template json.RawMessage
	)
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, &ContentError{Err: jsonError(data, err)}
		}
	case '{':
		var obj struct {
			Template json.RawMessage `json:"template"`
			Cards    json.RawMessage `json:"cards"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, &ContentError{Err: jsonError(data, err)}
		}
		cards := bytes.TrimSpace(obj.Cards)
		if len(cards) == 0 || cards[0] != '[' {
			return nil, contentErrorf("parsed content is not an array")
		}
		if err := json.Unmarshal(cards, &items); err != nil {
			return nil, &ContentError{Err: jsonError(data, err)}
		}
		template = obj.Template
	default:
		return nil, contentErrorf("parsed content is not an array")
	}

	block := &Block{Cards: make([]Card, 0, len(items))}
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, contentErrorf("card at index %d is not an object", i)
		}
		var c Card
		if err := json.Unmarshal(item, &c); err != nil {
			return nil, contentErrorf("card at index %d: %s", i, describe(err))
		}
		block.Cards = append(block.Cards, c)
	}

	if t := bytes.TrimSpace(template); len(t) > 0 && !bytes.Equal(t, []byte("null")) {
		block.Template = new(TemplateRef)
		if err := json.Unmarshal(t, block.Template); err != nil {
			return nil, contentErrorf("template: %s", describe(err))
		}
	}
	return block, nil
}

// StripFence removes a surrounding ```cardview fence from source.
func StripFence(source string) string {
	s := strings.TrimSpace(source)
	if !strings.HasPrefix(s, "```") {
		return source
	}
	first, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return ""
	}
	info := strings.TrimSpace(strings.TrimLeft(first, "`"))
	if info != "" && info != "cardview" {
		return source
	}
	rest = strings.TrimRight(rest, " \t\r\n")
	rest = strings.TrimSuffix(rest, "```")
	return rest
}

// jsonError turns a decoding error into a message with a line number.
func jsonError(data []byte, err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line := 1 + bytes.Count(data[:min(int(syntax.Offset), len(data))], []byte("\n"))
		return fmt.Errorf("invalid JSON at line %d: %s", line, syntax.Error())
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		line := 1 + bytes.Count(data[:min(int(typ.Offset), len(data))], []byte("\n"))
		return fmt.Errorf("invalid JSON at line %d: %s", line, describe(err))
	}
	return fmt.Errorf("invalid JSON: %w", err)
}

// describe renders decoding errors in terms of block fields.
func describe(err error) string {
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) && typ.Field != "" {
		return fmt.Sprintf("%s: cannot use %s as %s", typ.Field, typ.Value, typ.Type)
	}
	return err.Error()
}
