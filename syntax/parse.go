package syntax

import (
	"reflect"
	"testing"

	"assertgen/source"

	"github.com/gkampitakis/go-snaps/snaps"
)

func Parse[T any](path string, text string, f ParseFunc[T]) (T, *Error) {
	return ParseAt(path, text, source.NullLocation(), f)
}

func ParseAt[T any](path string, text string, base source.Location, f ParseFunc[T]) (T, *Error) {
	var result T

	parser, err := NewParser(path, text, base)
	if err == nil {
		result, err = f(parser)
	}
	if err == nil {
		err = parser.Finish()
	}

	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// TestParse snapshots the result of parsing `text` with `f`, with spans and
// tokens removed so the snapshot only shows structure.
func TestParse[T any](t *testing.T, f ParseFunc[T], text string) {
	result, err := Parse("test", text, f)
	if err != nil {
		t.Fatalf("%s", err)
	}

	var removeSpans func(value reflect.Value)
	removeSpans = func(value reflect.Value) {
		switch value.Kind() {
		case reflect.Pointer, reflect.Interface:
			if !value.IsNil() {
				removeSpans(value.Elem())
			}
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				removeSpans(value.Index(i))
			}
		case reflect.Struct:
			if value.CanAddr() {
				if generics, ok := value.Addr().Interface().(*Generics); ok {
					generics.tokens = nil
				}
			}

			for i := 0; i < value.NumField(); i++ {
				field := value.Field(i)
				if !field.CanSet() {
					continue
				}

				if field.Type() == reflect.TypeOf(source.Span{}) {
					field.Set(reflect.Zero(field.Type()))
				} else {
					removeSpans(field)
				}
			}
		}
	}

	removeSpans(reflect.ValueOf(&result))

	snaps.MatchSnapshot(t, result)
}

// TestParseError snapshots the error produced by parsing `text` with `f`.
func TestParseError[T any](t *testing.T, f ParseFunc[T], text string) {
	_, err := Parse("test", text, f)
	if err == nil {
		t.Fatalf("expected %q to fail to parse", text)
	}

	snaps.MatchSnapshot(t, err.String(), err.Reason)
}
