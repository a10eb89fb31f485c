package syntax

import (
	"fmt"

	"assertgen/source"
)

type Ident struct {
	Name string
	Span source.Span
}

func (ident Ident) String() string {
	return ident.Name
}

func ParseIdent(parser *Parser) (Ident, *Error) {
	span := parser.Spanned()

	if token := parser.Peek(); token != nil && token.kind == "Name" && !NameIsIdentifier(token.value) {
		return Ident{}, parser.Error(fmt.Sprintf("Expected an identifier, but found the keyword `%s`", token.value))
	}

	name, err := parser.Token("Name", TokenConfig{Name: "an identifier"})
	if err != nil {
		return Ident{}, err
	}

	return Ident{
		Name: name,
		Span: span(),
	}, nil
}

func ParseComma(parser *Parser) (struct{}, *Error) {
	_, err := parser.Token("Comma")
	if err != nil {
		return struct{}{}, err
	}

	return struct{}{}, nil
}
