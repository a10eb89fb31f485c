// Package assertparse provides test assertions for parsers.
//
// A fixture binding Assert to a parsable type and its error type is usually
// generated with `assertgen`:
//
//	//go:generate go run assertgen generate Args, ArgsError
//
// which produces
//
//	type Assert = assertparse.Assert[Args, ArgsError]
//
//	func newAssert() Assert {
//		return assertparse.MakeAssert[Args, ArgsError]()
//	}
package assertparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Parsable is implemented by types that can be parsed from text. Parse is
// called on the zero value.
type Parsable[P any] interface {
	Parse(path string, text string) (P, error)
}

// Assert checks the behaviour of P's parser. Errors are matched against E
// with errors.Is.
type Assert[P Parsable[P], E error] struct {
	path string
}

// MakeAssert returns an Assert whose parses report the path "test".
func MakeAssert[P Parsable[P], E error]() Assert[P, E] {
	return Assert[P, E]{path: "test"}
}

// WithPath returns a copy of the Assert that passes `path` to Parse.
func (a Assert[P, E]) WithPath(path string) Assert[P, E] {
	a.path = path
	return a
}

func (a Assert[P, E]) parse(text string) (P, error) {
	var parsable P
	return parsable.Parse(a.path, text)
}

// Ok fails the test unless `text` parses. The result is passed to `check`
// when it is not nil.
func (a Assert[P, E]) Ok(t testing.TB, text string, check func(P)) {
	t.Helper()

	result, err := a.parse(text)
	require.NoError(t, err, "parsing %q", text)

	if check != nil {
		check(result)
	}
}

// Error fails the test unless parsing `text` fails with `kind`.
func (a Assert[P, E]) Error(t testing.TB, text string, kind E) {
	t.Helper()

	_, err := a.parse(text)
	require.Error(t, err, "parsing %q", text)
	require.ErrorIs(t, err, kind, "parsing %q", text)
}

type positioned interface {
	Offset() int
}

// ErrorAt is like Error but also checks the byte offset the error points at.
// The error must implement `Offset() int`.
func (a Assert[P, E]) ErrorAt(t testing.TB, text string, kind E, offset int) {
	t.Helper()

	_, err := a.parse(text)
	require.Error(t, err, "parsing %q", text)
	require.ErrorIs(t, err, kind, "parsing %q", text)

	var p positioned
	require.True(t, errors.As(err, &p), "error %q has no position", err)
	require.Equal(t, offset, p.Offset(), "offset of %q in %q", err, text)
}
