package syntax

import (
	"fmt"
	"go/token"

	"assertgen/source"

	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type Token struct {
	kind  string
	value string
	span  source.Span
}

func (token *Token) Kind() string {
	return token.kind
}

func (token *Token) Value() string {
	return token.value
}

func (token *Token) Span() source.Span {
	return token.span
}

type tokenRule struct {
	kind    string
	pattern string
	name    string
	skip    bool
}

// Rules are tried in order; lexmachine prefers the longest match and breaks
// ties by position, so `Unknown` must stay last.
var rules = []tokenRule{
	{kind: "Space", pattern: `[ \t\r\n]+`, name: "", skip: true},
	{kind: "Comma", pattern: `,`, name: "`,`"},
	{kind: "Period", pattern: `\.`, name: "`.`"},
	{kind: "LeftBracket", pattern: `\[`, name: "`[`"},
	{kind: "RightBracket", pattern: `\]`, name: "`]`"},
	{kind: "LeftParenthesis", pattern: `\(`, name: "`(`"},
	{kind: "RightParenthesis", pattern: `\)`, name: "`)`"},
	{kind: "LeftBrace", pattern: `\{`, name: "`{`"},
	{kind: "RightBrace", pattern: `\}`, name: "`}`"},
	{kind: "Star", pattern: `\*`, name: "`*`"},
	{kind: "Tilde", pattern: `~`, name: "`~`"},
	{kind: "Pipe", pattern: `\|`, name: "`|`"},
	{kind: "Semicolon", pattern: `;`, name: "`;`"},
	{kind: "Colon", pattern: `:`, name: "`:`"},
	{kind: "Number", pattern: `[0-9][0-9A-Za-z_]*`, name: "a number"},
	{kind: "Name", pattern: `[A-Za-z_][A-Za-z0-9_]*`, name: "a name"},
	{kind: "Unknown", pattern: `.`, name: "an unexpected character"},
}

var lexer *lex.Lexer

var tokenIds = make(map[string]int, len(rules))
var tokenKinds = make([]string, 0, len(rules))
var tokenNames = make(map[string]string, len(rules))

func tokenAction(id int) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (any, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lex.Scanner, *machines.Match) (any, error) {
	return nil, nil
}

func init() {
	lexer = lex.NewLexer()

	for _, rule := range rules {
		tokenNames[rule.kind] = rule.name

		if rule.skip {
			lexer.Add([]byte(rule.pattern), skip)
			continue
		}

		id := len(tokenKinds)
		tokenIds[rule.kind] = id
		tokenKinds = append(tokenKinds, rule.kind)
		lexer.Add([]byte(rule.pattern), tokenAction(id))
	}

	err := lexer.CompileNFA()
	if err != nil {
		panic(err)
	}
}

// Tokenize splits `text` into tokens. Spans are reported relative to `base`,
// the location of `text` within the file at `path`.
func Tokenize(path string, text string, base source.Location) ([]*Token, *Error) {
	scanner, err := lexer.Scanner([]byte(text))
	if err != nil {
		panic(err)
	}

	var tokens []*Token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			location := source.Location{Line: 1, Column: 1, Index: scanner.TC}
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				location = source.Location{Line: ui.FailLine, Column: ui.FailColumn, Index: ui.FailTC}
			}

			return nil, &Error{
				Message: "Unexpected character",
				Reason:  err.Error(),
				Span:    source.PointSpan(path, location.Offset(base)),
			}
		}

		tok := tok.(*lex.Token)
		startIndex := tok.TC
		endIndex := startIndex + len(tok.Lexeme)

		start := source.Location{
			Index:  startIndex,
			Line:   tok.StartLine,
			Column: tok.StartColumn,
		}

		end := source.Location{
			Index:  endIndex,
			Line:   tok.EndLine,
			Column: tok.EndColumn + 1,
		}

		span := source.Span{
			Path:   path,
			Start:  start.Offset(base),
			End:    end.Offset(base),
			Source: text[startIndex:endIndex],
		}

		tokens = append(tokens, &Token{
			kind:  tokenKinds[tok.Type],
			value: tok.Value.(string),
			span:  span,
		})
	}

	return tokens, nil
}

// TokenIsWord reports whether two adjacent tokens of this kind need a space
// between them to be read back as two tokens.
func TokenIsWord(kind string) bool {
	return kind == "Name" || kind == "Number"
}

func TokenIsOpening(kind string) bool {
	return kind == "LeftBracket" || kind == "LeftParenthesis" || kind == "LeftBrace"
}

func TokenIsClosing(kind string) bool {
	return kind == "RightBracket" || kind == "RightParenthesis" || kind == "RightBrace"
}

func closingFor(kind string) string {
	switch kind {
	case "LeftBracket":
		return "RightBracket"
	case "LeftParenthesis":
		return "RightParenthesis"
	case "LeftBrace":
		return "RightBrace"
	default:
		panic(fmt.Sprintf("not an opening token: %s", kind))
	}
}

// NameIsIdentifier reports whether a `Name` token can be used as a Go
// identifier, which excludes keywords.
func NameIsIdentifier(name string) bool {
	return !token.IsKeyword(name)
}
