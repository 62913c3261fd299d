package style

import (
	"bytes"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssToken is one significant token of a property value.
type cssToken struct {
	tt   css.TokenType
	data []byte
}

// lexValue splits a CSS property value into tokens, dropping whitespace.
func lexValue(value string) []cssToken {
	lexer := css.NewLexer(parse.NewInputString(value))
	var tokens []cssToken
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return tokens
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		tokens = append(tokens, cssToken{tt: tt, data: bytes.Clone(data)})
	}
}

// IsLength reports whether value is a single CSS length: a dimension, a
// percentage, a unitless zero, "auto", or a function such as calc().
func IsLength(value string) bool {
	tokens := lexValue(value)
	if len(tokens) == 0 {
		return false
	}
	first := tokens[0]
	if first.tt == css.FunctionToken {
		return isFunction(tokens)
	}
	if len(tokens) != 1 {
		return false
	}
	switch first.tt {
	case css.DimensionToken, css.PercentageToken:
		return true
	case css.NumberToken:
		n, err := strconv.ParseFloat(string(first.data), 64)
		return err == nil && n == 0
	case css.IdentToken:
		return strings.EqualFold(string(first.data), "auto")
	}
	return false
}

// IsColor reports whether value looks like a CSS colour: a hash, a named
// colour or keyword, or a function such as rgb().
func IsColor(value string) bool {
	tokens := lexValue(value)
	if len(tokens) == 0 {
		return false
	}
	switch tokens[0].tt {
	case css.FunctionToken:
		return isFunction(tokens)
	case css.HashToken, css.IdentToken:
		return len(tokens) == 1
	}
	return false
}

// IsFontFamily reports whether value is a comma-separated list of family
// names, each a quoted string or a run of identifiers.
func IsFontFamily(value string) bool {
	tokens := lexValue(value)
	if len(tokens) == 0 {
		return false
	}
	idents, quoted := 0, false
	for _, tok := range tokens {
		switch tok.tt {
		case css.IdentToken:
			if quoted {
				return false
			}
			idents++
		case css.StringToken:
			if quoted || idents > 0 {
				return false
			}
			quoted = true
		case css.CommaToken:
			if idents == 0 && !quoted {
				return false
			}
			idents, quoted = 0, false
		default:
			return false
		}
	}
	return idents > 0 || quoted
}

// isFunction reports whether tokens are exactly one balanced function call
// whose arguments are numbers, identifiers, operators or nested calls.
func isFunction(tokens []cssToken) bool {
	depth := 0
	for i, tok := range tokens {
		switch tok.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i == len(tokens)-1
			}
		case css.NumberToken, css.DimensionToken, css.PercentageToken,
			css.IdentToken, css.HashToken, css.DelimToken, css.CommaToken:
		default:
			return false
		}
		if depth <= 0 {
			return false
		}
	}
	return false
}

// Pixels converts a px (or unitless) length to a number of pixels. Other
// units, percentages and functions report false.
func Pixels(value string) (float64, bool) {
	tokens := lexValue(value)
	if len(tokens) != 1 {
		return 0, false
	}
	tok := tokens[0]
	switch tok.tt {
	case css.NumberToken:
		n, err := strconv.ParseFloat(string(tok.data), 64)
		return n, err == nil
	case css.DimensionToken:
		num, unit := splitDimension(string(tok.data))
		if !strings.EqualFold(unit, "px") {
			return 0, false
		}
		n, err := strconv.ParseFloat(num, 64)
		return n, err == nil
	}
	return 0, false
}

// splitDimension separates "12.5px" into "12.5" and "px".
func splitDimension(dim string) (string, string) {
	i := strings.IndexFunc(dim, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	})
	if i < 0 {
		return dim, ""
	}
	return dim[:i], dim[i:]
}
