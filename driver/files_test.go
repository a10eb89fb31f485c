package driver

import (
	"os"
	"path/filepath"
	"testing"

	"assertgen/codegen"
	"assertgen/syntax"

	"github.com/stretchr/testify/require"
)

func TestScanSource(t *testing.T) {
	src := "package mock\n\n//assertgen:register Mock[int], MockError\ntype Mock[T any] struct{}\n"

	directives, err := ScanSource("mock.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, directives, 1)

	directive := directives[0]
	require.Nil(t, directive.Error)
	require.Equal(t, "mock", directive.Package)
	require.Equal(t, "Mock[int], MockError", directive.Args.String())
	require.Equal(t, 3, directive.Span.Start.Line)
	require.Equal(t, 1, directive.Span.Start.Column)

	require.Equal(t, "Mock", directive.Args.Parsable.Span.Source)
	require.Equal(t, 3, directive.Args.Parsable.Span.Start.Line)
	require.Equal(t, 22, directive.Args.Parsable.Span.Start.Column)
}

func TestScanSourceIgnoresOtherComments(t *testing.T) {
	src := "package mock\n\n// assertgen:register Mock, MockError\n//assertgen:registered Mock, MockError\n/* //assertgen:register Mock, MockError */\n"

	directives, err := ScanSource("mock.go", []byte(src))
	require.NoError(t, err)
	require.Empty(t, directives)
}

func TestScanSourceSyntaxError(t *testing.T) {
	src := "package mock\n\n\t//assertgen:register Mock,\n"

	directives, err := ScanSource("mock.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, directives, 1)

	syntaxError := directives[0].Error
	require.NotNil(t, syntaxError)
	require.Equal(t, syntax.ArgsErrorInvalidOmit, syntaxError.Kind)
	require.Equal(t, 3, syntaxError.Span.Start.Line)
	require.Equal(t, 28, syntaxError.Span.Start.Column)
}

func TestScanSourceEmptyDirective(t *testing.T) {
	directives, err := ScanSource("mock.go", []byte("package mock\n\n//assertgen:register\n"))
	require.NoError(t, err)
	require.Len(t, directives, 1)
	require.Equal(t, syntax.ArgsErrorEmpty, directives[0].Error.Kind)
}

func TestScanSourceDuplicate(t *testing.T) {
	src := "package mock\n\n//assertgen:register Mock, MockError\n\n//assertgen:register Other, OtherError\n"

	directives, err := ScanSource("mock.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, directives, 2)

	require.Nil(t, directives[0].Error)
	require.NotNil(t, directives[1].Error)
	require.Equal(t, "Expected only one register directive per package", directives[1].Error.Message)
	require.Equal(t, 5, directives[1].Error.Span.Start.Line)
}

func TestScanSourceInvalidGo(t *testing.T) {
	_, err := ScanSource("mock.go", []byte("package"))
	require.Error(t, err)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mock.go"), []byte("package mock\n\ntype Mock struct{}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mock_test.go"), []byte("package mock\n\n//assertgen:register Mock, MockError\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assert_gen_test.go"), []byte("package mock\n\n//assertgen:register Stale, StaleError\n"), 0644))

	results, syntaxErrors, err := ScanDir(dir, codegen.Options{})
	require.NoError(t, err)
	require.Empty(t, syntaxErrors)
	require.Len(t, results, 1)

	require.Equal(t, filepath.Join(dir, "assert_gen_test.go"), results[0].Output)
	require.Contains(t, string(results[0].Code), "type Assert = assertparse.Assert[Mock, MockError]")
}

func TestScanDirDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package mock\n\n//assertgen:register Mock, MockError\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_test.go"), []byte("package mock\n\n//assertgen:register Other, OtherError\n"), 0644))

	results, syntaxErrors, err := ScanDir(dir, codegen.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, syntaxErrors, 1)
	require.Equal(t, filepath.Join(dir, "b_test.go"), syntaxErrors[0].Span.Path)
}

func TestScanDirExternalTestPackage(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package mock\n\n//assertgen:register Mock, MockError\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_test.go"), []byte("package mock_test\n\n//assertgen:register Other, OtherError\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assert_gen_ext_test.go"), []byte("package mock_test\n\n//assertgen:register Stale, StaleError\n"), 0644))

	results, syntaxErrors, err := ScanDir(dir, codegen.Options{})
	require.NoError(t, err)
	require.Empty(t, syntaxErrors)
	require.Len(t, results, 2)

	require.Equal(t, filepath.Join(dir, "assert_gen_test.go"), results[0].Output)
	require.Contains(t, string(results[0].Code), "package mock\n")

	require.Equal(t, filepath.Join(dir, "assert_gen_ext_test.go"), results[1].Output)
	require.Contains(t, string(results[1].Code), "package mock_test\n")
}

func TestScanDirDuplicateOutput(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package mock\n\n//assertgen:register Mock, MockError\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package other\n\n//assertgen:register Other, OtherError\n"), 0644))

	results, syntaxErrors, err := ScanDir(dir, codegen.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, syntaxErrors, 1)
	require.Equal(t, "Expected only one register directive per package", syntaxErrors[0].Message)
	require.Equal(t, filepath.Join(dir, "b.go"), syntaxErrors[0].Span.Path)
}
