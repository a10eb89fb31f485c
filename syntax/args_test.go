package syntax

import (
	"errors"
	"testing"

	"assertgen/source"

	"github.com/stretchr/testify/require"
)

//go:generate go run .. generate Args, ArgsError

func TestArgsEmpty(t *testing.T) {
	newAssert().ErrorAt(t, "", ArgsErrorEmpty, 0)
}

func TestArgsBlank(t *testing.T) {
	newAssert().ErrorAt(t, "  \t ", ArgsErrorEmpty, 0)
}

func TestArgsNotIdentFirst(t *testing.T) {
	newAssert().ErrorAt(t, "1", ArgsErrorNotIdent, 0)
}

func TestArgsLeadingComma(t *testing.T) {
	newAssert().ErrorAt(t, ",Mock", ArgsErrorNotIdent, 0)
}

func TestArgsKeyword(t *testing.T) {
	newAssert().ErrorAt(t, "map, MockError", ArgsErrorNotIdent, 0)
}

func TestArgsSingle(t *testing.T) {
	newAssert().ErrorAt(t, "Mock", ArgsErrorSingle, 4)
}

func TestArgsNotComma(t *testing.T) {
	newAssert().ErrorAt(t, "Mock.", ArgsErrorNotComma, 4)
}

func TestArgsSpaceSeparated(t *testing.T) {
	newAssert().ErrorAt(t, "Mock MockError", ArgsErrorNotComma, 5)
}

func TestArgsUnknownCharacter(t *testing.T) {
	newAssert().ErrorAt(t, "Mock#MockError", ArgsErrorNotComma, 4)
}

func TestArgsGenericsWithoutComma(t *testing.T) {
	newAssert().ErrorAt(t, "Mock[int]", ArgsErrorNotComma, 9)
}

func TestArgsUnclosedGenerics(t *testing.T) {
	newAssert().ErrorAt(t, "Mock[int, MockError", ArgsErrorNotComma, 4)
}

func TestArgsEmptyGenerics(t *testing.T) {
	newAssert().ErrorAt(t, "Mock[], MockError", ArgsErrorNotComma, 4)
}

func TestArgsMismatchedGenerics(t *testing.T) {
	newAssert().ErrorAt(t, "Mock[map[string)int], MockError", ArgsErrorNotComma, 4)
}

func TestArgsMalformedTypeArguments(t *testing.T) {
	for _, text := range []string{
		"Mock[;], MockError",
		"Mock[#], MockError",
		"Mock[1 2], MockError",
		"Mock[:], MockError",
		"Mock[1], MockError",
		"Mock[int, a + b], MockError",
	} {
		newAssert().ErrorAt(t, text, ArgsErrorNotComma, 4)
	}
}

func TestArgsCompositeTypeArguments(t *testing.T) {
	newAssert().Ok(t, "Mock[[4]int, chan<- error, func(int) (string, error), struct{ A, B int }, List[T]], MockError", func(args Args) {
		require.Len(t, args.Generics.Arguments, 5)
		require.Equal(t, "func(int) (string, error)", args.Generics.Arguments[2].Type)
		require.Equal(t, "List[T]", args.Generics.Arguments[4].Type)
	})
}

func TestArgsInvalidOmit(t *testing.T) {
	newAssert().ErrorAt(t, "Mock,", ArgsErrorInvalidOmit, 5)
}

func TestArgsNotIdentSecond(t *testing.T) {
	newAssert().ErrorAt(t, "Mock,1", ArgsErrorNotIdent, 5)
}

func TestArgsDoubleComma(t *testing.T) {
	newAssert().ErrorAt(t, "Mock,,MockError", ArgsErrorNotIdent, 5)
}

func TestArgsOk(t *testing.T) {
	newAssert().Ok(t, "Mock,MockError", func(args Args) {
		require.Equal(t, "Mock", args.Parsable.Name)
		require.Equal(t, "MockError", args.Error.Name)
		require.Nil(t, args.Generics)
	})
}

func TestArgsOkWithSpaces(t *testing.T) {
	newAssert().Ok(t, "  Mock ,\n MockError ", func(args Args) {
		require.Equal(t, "Mock", args.Parsable.Name)
		require.Equal(t, "MockError", args.Error.Name)
		require.Nil(t, args.Generics)
	})
}

func TestArgsOkWithGenerics(t *testing.T) {
	newAssert().Ok(t, "Mock[int],MockError", func(args Args) {
		require.Equal(t, "Mock", args.Parsable.Name)
		require.Equal(t, "MockError", args.Error.Name)
		require.NotNil(t, args.Generics)
		require.Equal(t, "[int]", args.Generics.String())
	})
}

func TestArgsTooMany(t *testing.T) {
	newAssert().ErrorAt(t, "Mock,MockError,Something", ArgsErrorTooMany, 14)
}

func TestArgsGenericsOnError(t *testing.T) {
	newAssert().ErrorAt(t, "Mock, MockError[int]", ArgsErrorTooMany, 15)
}

func TestArgsGenericsTokensAreVerbatim(t *testing.T) {
	text := "Mock[map[string]int, *bytes.Buffer], MockError"

	args, err := Parse("test", text, ParseArgs)
	require.Nil(t, err)

	var values []string
	for _, token := range args.Generics.Tokens() {
		values = append(values, token.Value())
	}

	require.Equal(t, []string{"[", "map", "[", "string", "]", "int", ",", "*", "bytes", ".", "Buffer", "]"}, values)
	require.Equal(t, "[map[string]int, *bytes.Buffer]", args.Generics.String())
	require.Equal(t, "[map[string]int, *bytes.Buffer]", args.Generics.Span.Source)
	require.Len(t, args.Generics.Arguments, 2)
	require.Equal(t, "map[string]int", args.Generics.Arguments[0].Type)
	require.Equal(t, "*bytes.Buffer", args.Generics.Arguments[1].Type)
}

func TestArgsSpans(t *testing.T) {
	args, err := Parse("mock_test.go", "Mock[int], MockError", ParseArgs)
	require.Nil(t, err)

	require.Equal(t, "Mock", args.Parsable.Span.Source)
	require.Equal(t, 0, args.Parsable.Span.Start.Index)
	require.Equal(t, 4, args.Parsable.Span.End.Index)
	require.Equal(t, "mock_test.go", args.Parsable.Span.Path)

	require.Equal(t, "MockError", args.Error.Span.Source)
	require.Equal(t, 11, args.Error.Span.Start.Index)
	require.Equal(t, 20, args.Error.Span.End.Index)
}

func TestArgsReparseIsIdempotent(t *testing.T) {
	for _, text := range []string{"Mock, MockError", "Mock[int, string], MockError"} {
		first, err := Parse("test", text, ParseArgs)
		require.Nil(t, err)

		second, err := Parse("test", text, ParseArgs)
		require.Nil(t, err)

		require.Equal(t, first, second)
	}
}

func TestArgsErrorsPartition(t *testing.T) {
	kinds := []ArgsError{
		ArgsErrorEmpty,
		ArgsErrorNotComma,
		ArgsErrorSingle,
		ArgsErrorNotIdent,
		ArgsErrorInvalidOmit,
		ArgsErrorTooMany,
	}

	inputs := []string{
		"", "1", "Mock", "Mock.", "Mock,", "Mock,1", "Mock,MockError,Something", "Mock[", "a b c", "Mock,MockError[]",
		"Mock[;], MockError", "Mock[#], MockError", "Mock[1 2], MockError", "Mock[:], MockError",
	}
	for _, text := range inputs {
		_, err := Parse("test", text, ParseArgs)
		require.NotNil(t, err, text)

		matched := 0
		for _, kind := range kinds {
			if errors.Is(err, kind) {
				matched++
			}
		}

		require.Equal(t, 1, matched, "%q matched %d kinds", text, matched)
	}
}

func TestArgsErrorReason(t *testing.T) {
	_, err := Parse("test", "Mock,1", ParseArgs)
	require.NotNil(t, err)

	require.Equal(t, ArgsErrorNotIdent, err.Kind)
	require.Equal(t, "Expected an identifier", err.Message)
	require.Equal(t, "Expected an identifier, but found a number", err.Reason)
	require.Equal(t, "test:1:6: Expected an identifier", err.Error())
}

func TestArgsErrorAtBase(t *testing.T) {
	_, err := ParseArgsAt("mock_test.go", "Mock,", source.Location{Line: 3, Column: 21, Index: 0})
	require.NotNil(t, err)

	require.Equal(t, ArgsErrorInvalidOmit, err.Kind)
	require.Equal(t, 5, err.Span.Start.Index)
	require.Equal(t, 3, err.Span.Start.Line)
	require.True(t, err.Span.IsEmpty())
}

func TestArgsString(t *testing.T) {
	args, err := Parse("test", "Mock[ int ,string ],MockError", ParseArgs)
	require.Nil(t, err)

	require.Equal(t, "Mock[int, string]", args.Type())
	require.Equal(t, "Mock[int, string], MockError", args.String())
}

func TestArgsErrorKindNames(t *testing.T) {
	require.Equal(t, "TooMany", ArgsErrorTooMany.String())
	require.Equal(t, "ArgsError(0)", ArgsError(0).String())
	require.Equal(t, "Expected two identifiers as arguments", ArgsErrorEmpty.Error())
}
