package syntax

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"

	"assertgen/source"
)

// Generics is a bracketed list of Go type arguments, eg. `[int, map[string]bool]`.
type Generics struct {
	Arguments []TypeArgument
	Span      source.Span
	tokens    []*Token
}

type TypeArgument struct {
	Type string
	Span source.Span
}

// Tokens returns every token of the list, brackets and commas included, in
// the order they were written.
func (generics *Generics) Tokens() []*Token {
	return generics.tokens
}

func (generics *Generics) String() string {
	if generics == nil {
		return ""
	}

	types := make([]string, 0, len(generics.Arguments))
	for _, argument := range generics.Arguments {
		types = append(types, argument.Type)
	}

	return "[" + strings.Join(types, ", ") + "]"
}

func ParseGenerics(parser *Parser) (*Generics, *Error) {
	span := parser.Spanned()
	start := parser.Mark()

	if _, err := parser.Token("LeftBracket"); err != nil {
		return nil, err
	}

	many, err := ParseMany(parser, 1, ParseTypeArgument, ParseComma)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token("RightBracket"); err != nil {
		return nil, err
	}

	arguments := make([]TypeArgument, 0, len(many))
	for _, item := range many {
		arguments = append(arguments, item.Value)
	}

	return &Generics{
		Arguments: arguments,
		Span:      span(),
		tokens:    parser.Tokens(start),
	}, nil
}

// ParseTypeArgument consumes tokens up to the next `,` or `]` that is not
// nested inside brackets, parentheses or braces.
func ParseTypeArgument(parser *Parser) (TypeArgument, *Error) {
	span := parser.Spanned()
	start := parser.Mark()

	var closing []string
	for {
		token := parser.Peek()
		if token == nil {
			return TypeArgument{}, parser.Error("Expected `]` to close the type arguments")
		}

		if len(closing) == 0 && (token.kind == "Comma" || token.kind == "RightBracket") {
			break
		}

		if TokenIsOpening(token.kind) {
			closing = append(closing, closingFor(token.kind))
		} else if TokenIsClosing(token.kind) {
			if len(closing) == 0 || closing[len(closing)-1] != token.kind {
				return TypeArgument{}, parser.Error(fmt.Sprintf("Unexpected %s", tokenNames[token.kind]))
			}

			closing = closing[:len(closing)-1]
		}

		parser.index += 1
	}

	tokens := parser.Tokens(start)
	if len(tokens) == 0 {
		return TypeArgument{}, parser.Error("Expected a type argument")
	}

	rendered := renderTokens(tokens)
	if reason := checkType(rendered); reason != "" {
		return TypeArgument{}, &Error{
			Message: fmt.Sprintf("Expected a type argument, but found `%s`", rendered),
			Reason:  reason,
			Span:    span(),
		}
	}

	return TypeArgument{
		Type: rendered,
		Span: span(),
	}, nil
}

// checkType returns why `text` is not a Go type, or "" if it is one.
func checkType(text string) string {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return err.Error()
	}

	if !isType(expr) {
		return "not a type"
	}

	return ""
}

func isType(expr ast.Expr) bool {
	switch expr := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := expr.X.(*ast.Ident)
		return ok
	case *ast.ParenExpr:
		return isType(expr.X)
	case *ast.StarExpr:
		return isType(expr.X)
	case *ast.IndexExpr:
		return isType(expr.X) && isType(expr.Index)
	case *ast.IndexListExpr:
		for _, index := range expr.Indices {
			if !isType(index) {
				return false
			}
		}

		return isType(expr.X)
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	default:
		return false
	}
}

func renderTokens(tokens []*Token) string {
	var s strings.Builder

	var previous *Token
	for _, token := range tokens {
		if previous != nil && needsSpace(previous.kind, token.kind) {
			s.WriteByte(' ')
		}

		s.WriteString(token.value)
		previous = token
	}

	return s.String()
}

func needsSpace(previous string, next string) bool {
	switch {
	case previous == "Comma":
		return true
	case TokenIsWord(previous) && TokenIsWord(next):
		return true
	case previous == "RightParenthesis":
		return TokenIsWord(next) || next == "Star" || next == "LeftParenthesis" || next == "LeftBracket"
	default:
		return false
	}
}
