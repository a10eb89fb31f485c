package driver

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"assertgen/codegen"
	"assertgen/colors"
	"assertgen/source"
	"assertgen/syntax"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("assertgen.driver")

// Request describes one `go generate` invocation.
type Request struct {
	// Path is the file containing the directive ($GOFILE).
	Path string
	// Line is the line of the directive ($GOLINE), or 0 if unknown.
	Line int
	// Args are the directive arguments as split by `go generate`.
	Args []string
	// Output defaults to OutputPath(Path, Options.Package) next to Path.
	Output  string
	Options codegen.Options
}

type Result struct {
	Args   syntax.Args
	Output string
	Code   []byte
}

// Write stores the generated code at its output path.
func (result Result) Write() error {
	return WriteFile(result.Output, result.Code)
}

// OutputPath is the file name generated code for `goFile` in package `pkg`
// is written to. Fixtures for test files are only compiled into tests, and
// external test packages get a file of their own.
func OutputPath(goFile string, pkg string) string {
	if !strings.HasSuffix(goFile, "_test.go") {
		return "assert_gen.go"
	}

	if strings.HasSuffix(pkg, "_test") {
		return "assert_gen_ext_test.go"
	}

	return "assert_gen_test.go"
}

// generatedFiles are skipped when scanning for directives.
var generatedFiles = []string{"assert_gen.go", "assert_gen_test.go", "assert_gen_ext_test.go"}

// Generate parses the arguments of `request` and synthesizes the fixture.
// A *syntax.Error is returned when the arguments are malformed; the error
// result is reserved for I/O and formatting failures.
func Generate(request Request) (Result, *syntax.Error, error) {
	text := strings.Join(request.Args, " ")

	var host string
	if request.Path != "" {
		b, err := os.ReadFile(request.Path)
		if err != nil {
			log.Debugf("cannot read %s, columns will be approximate: %v", request.Path, err)
		} else {
			host = string(b)
		}
	}

	base := Locate(host, request.Line, text)
	log.Debugf("arguments %q located at %s:%d:%d", text, request.Path, base.Line, base.Column)

	args, syntaxError := syntax.ParseArgsAt(request.Path, text, base)
	if syntaxError != nil {
		return Result{}, syntaxError, nil
	}

	options := request.Options
	if options.Package == "" && host != "" {
		options.Package = packageName(request.Path, host)
	}

	output := request.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(request.Path), OutputPath(request.Path, options.Package))
	}

	code, err := codegen.NewCodegen(output, options).Bytes(args)
	if err != nil {
		return Result{}, nil, err
	}

	return Result{
		Args:   args,
		Output: output,
		Code:   code,
	}, nil, nil
}

// Locate finds where `text` is written on line `line` of `host`, so spans
// point into the host file. Whitespace inside `text` may differ from the
// host, since `go generate` splits arguments on spaces; in that case, or if
// the line is unknown, the arguments are assumed to start the line.
func Locate(host string, line int, text string) source.Location {
	if line < 1 {
		return source.NullLocation()
	}

	base := source.Location{Line: line, Column: 1}

	lines := strings.Split(host, "\n")
	if line > len(lines) {
		return base
	}

	content := strings.TrimSuffix(lines[line-1], "\r")
	if text == "" {
		base.Column = len(content) + 1
		return base
	}

	if index := strings.LastIndex(content, text); index >= 0 {
		base.Column = index + 1
	}

	return base
}

func packageName(path string, host string) string {
	file, err := parser.ParseFile(token.NewFileSet(), path, host, parser.PackageClauseOnly)
	if err != nil {
		log.Debugf("cannot read package clause of %s: %v", path, err)
		return ""
	}

	return file.Name.Name
}

// Describe summarizes a result for progress output.
func Describe(result Result) string {
	return fmt.Sprintf("%s for %s", result.Output, colors.Code(result.Args.String()))
}
