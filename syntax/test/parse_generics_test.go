package test

import (
	"testing"

	"assertgen/syntax"
)

func TestParseSingleTypeArgument(t *testing.T) {
	syntax.TestParse(t, syntax.ParseGenerics, "[int]")
}

func TestParseMultipleTypeArguments(t *testing.T) {
	syntax.TestParse(t, syntax.ParseGenerics, "[int, string, error]")
}

func TestParseStructTypeArgument(t *testing.T) {
	syntax.TestParse(t, syntax.ParseGenerics, "[struct{ A, B int }]")
}

func TestParseIdent(t *testing.T) {
	syntax.TestParse(t, syntax.ParseIdent, "MockError")
}

func TestParseKeywordIdent(t *testing.T) {
	syntax.TestParseError(t, syntax.ParseIdent, "func")
}

func TestParseUnclosedGenerics(t *testing.T) {
	syntax.TestParseError(t, syntax.ParseGenerics, "[int")
}

func TestParseInvalidTypeArgument(t *testing.T) {
	syntax.TestParseError(t, syntax.ParseGenerics, "[1 2]")
}
