package syntax

import "assertgen/source"

// Args are the arguments of a register directive: the type being parsed,
// its optional type arguments and the error type its parser reports.
type Args struct {
	Parsable Ident
	Generics *Generics
	Error    Ident
}

// Args = Ident [Generics] "," Ident
func ParseArgs(parser *Parser) (Args, *Error) {
	if parser.IsEmpty() {
		return Args{}, ArgsErrorEmpty.At(parser.StartSpan(), nil)
	}

	parsable, err := ParseIdent(parser)
	if err != nil {
		return Args{}, ArgsErrorNotIdent.At(err.Span, err)
	}

	if parser.IsEmpty() {
		return Args{}, ArgsErrorSingle.At(parser.CurrentSpan(), nil)
	}

	// Generics are optional; on failure the parser is left at the token after
	// the parsable type so the comma check reports the position.
	generics, _ := ParseOptional(parser, ParseGenerics)

	if _, err := ParseComma(parser); err != nil {
		return Args{}, ArgsErrorNotComma.At(err.Span, err)
	}

	if parser.IsEmpty() {
		return Args{}, ArgsErrorInvalidOmit.At(parser.CurrentSpan(), nil)
	}

	errorType, err := ParseIdent(parser)
	if err != nil {
		return Args{}, ArgsErrorNotIdent.At(err.Span, err)
	}

	if !parser.IsEmpty() {
		return Args{}, ArgsErrorTooMany.At(parser.CurrentSpan(), nil)
	}

	return Args{
		Parsable: parsable,
		Generics: generics,
		Error:    errorType,
	}, nil
}

// ParseArgsAt parses directive arguments found at `base` in the file at `path`.
func ParseArgsAt(path string, text string, base source.Location) (Args, *Error) {
	return ParseAt(path, text, base, ParseArgs)
}

// Parse makes Args usable with assertparse.Assert.
func (Args) Parse(path string, text string) (Args, error) {
	args, err := Parse(path, text, ParseArgs)
	if err != nil {
		return Args{}, err
	}

	return args, nil
}

// Type is the parsable type as written in Go, type arguments included.
func (args Args) Type() string {
	return args.Parsable.Name + args.Generics.String()
}

func (args Args) String() string {
	return args.Type() + ", " + args.Error.Name
}
