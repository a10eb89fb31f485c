package syntax

import (
	"fmt"

	"assertgen/source"
)

type ParseFunc[T any] func(*Parser) (T, *Error)

type Parser struct {
	Path   string
	Source string
	base   source.Location
	tokens []*Token
	index  int
}

func NewParser(path string, text string, base source.Location) (*Parser, *Error) {
	parser := &Parser{
		Path:   path,
		Source: text,
		base:   base,
	}

	var err *Error
	parser.tokens, err = Tokenize(path, text, base)
	if err != nil {
		return nil, err
	}

	return parser, nil
}

func (parser *Parser) Spanned() func() source.Span {
	index := parser.index

	return func() source.Span {
		start := parser.eofSpan()
		if index < len(parser.tokens) {
			start = parser.tokens[index].span
		}

		end := parser.eofSpan()
		if parser.index > 0 {
			end = parser.tokens[parser.index-1].span
		}

		return source.JoinSpans(start, end, parser.Source)
	}
}

func (parser *Parser) backtrack(index int) {
	parser.index = index
}

// IsEmpty reports whether every token has been consumed.
func (parser *Parser) IsEmpty() bool {
	return parser.index >= len(parser.tokens)
}

// Peek returns the next token without consuming it, or nil at the end.
func (parser *Parser) Peek() *Token {
	if parser.IsEmpty() {
		return nil
	}

	return parser.tokens[parser.index]
}

// Tokens returns the tokens consumed since `start`, as returned by Mark.
func (parser *Parser) Tokens(start int) []*Token {
	return parser.tokens[start:parser.index]
}

// Mark returns the current position for use with Tokens.
func (parser *Parser) Mark() int {
	return parser.index
}

// CurrentSpan is the span of the next token, or the empty span just past the
// last token when there is none.
func (parser *Parser) CurrentSpan() source.Span {
	if parser.index < len(parser.tokens) {
		return parser.tokens[parser.index].span
	}

	return parser.eofSpan()
}

// StartSpan is the empty span at the beginning of the text.
func (parser *Parser) StartSpan() source.Span {
	return source.PointSpan(parser.Path, source.NullLocation().Offset(parser.base))
}

func (parser *Parser) Error(message string) *Error {
	return parser.ErrorWithReason(message, "")
}

func (parser *Parser) ErrorWithReason(message string, reason string) *Error {
	return &Error{
		Message: message,
		Reason:  reason,
		Span:    parser.CurrentSpan(),
	}
}

type TokenConfig struct {
	Name   string
	Reason string
}

func (parser *Parser) Token(kind string, configs ...TokenConfig) (string, *Error) {
	var config TokenConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	expected := config.Name
	if expected == "" {
		expected = tokenNames[kind]
	}

	if parser.index >= len(parser.tokens) {
		return "", &Error{
			Message: fmt.Sprintf("Expected %s, but found the end of the input", expected),
			Reason:  config.Reason,
			Span:    parser.eofSpan(),
		}
	}

	token := parser.tokens[parser.index]

	if token.kind != kind {
		return "", &Error{
			Message: fmt.Sprintf("Expected %s, but found %s", expected, tokenNames[token.kind]),
			Reason:  config.Reason,
			Span:    token.span,
		}
	}

	parser.index += 1

	return token.value, nil
}

// eofSpan is the empty span right after the last token.
func (parser *Parser) eofSpan() source.Span {
	if len(parser.tokens) == 0 {
		return parser.StartSpan()
	}

	return source.PointSpan(parser.Path, parser.tokens[len(parser.tokens)-1].span.End)
}

func (parser *Parser) Finish() *Error {
	if parser.index < len(parser.tokens) {
		token := parser.tokens[parser.index]
		return parser.Error(fmt.Sprintf("Unexpected %s", tokenNames[token.kind]))
	}

	return nil
}

// ParseOptional runs `f` and rewinds to where it started if it fails, so the
// caller can try something else at the same position.
func ParseOptional[T any](parser *Parser, f ParseFunc[T]) (T, bool) {
	start := parser.index

	result, err := f(parser)
	if err != nil {
		parser.backtrack(start)

		var zero T
		return zero, false
	}

	return result, true
}

type Many[T any, S any] struct {
	Value     T
	Separator S
}

func ParseMany[T any, S any](parser *Parser, min int, f ParseFunc[T], separator ParseFunc[S]) ([]Many[T, S], *Error) {
	first := true

	var results []Many[T, S]
	for {
		start := parser.index

		var separatorResult S
		if !first {
			var ok bool
			separatorResult, ok = ParseOptional(parser, separator)
			if !ok {
				break
			}
		}

		result, ok := ParseOptional(parser, f)
		if !ok {
			parser.backtrack(start)
			break
		}

		results = append(results, Many[T, S]{
			Value:     result,
			Separator: separatorResult,
		})

		first = false
	}

	if len(results) < min {
		return nil, parser.Error(fmt.Sprintf("Expected at least %d items", min))
	}

	return results, nil
}
