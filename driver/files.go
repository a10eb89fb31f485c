package driver

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"assertgen/codegen"
	"assertgen/source"
	"assertgen/syntax"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const RegisterDirective = "//assertgen:register"

// WriteFile replaces `path` with `data` without leaving a partially written
// file behind if writing fails.
func WriteFile(path string, data []byte) error {
	id, err := gonanoid.New()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id))

	err = os.WriteFile(tmp, data, 0644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Infof("wrote %s", path)

	return nil
}

// Directive is an `//assertgen:register` comment.
type Directive struct {
	Package string
	Path    string
	// Span covers the whole comment.
	Span source.Span
	Text string
	Args syntax.Args
	// Error is set if the arguments could not be parsed, or if the package
	// already has a directive.
	Error *syntax.Error
}

// ScanSource finds the register directives in the Go file `src`.
func ScanSource(path string, src []byte) ([]Directive, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var directives []Directive
	for _, group := range file.Comments {
		for _, comment := range group.List {
			directive, ok := parseDirective(fset, path, file, comment)
			if ok {
				directives = append(directives, directive)
			}
		}
	}

	markDuplicates(directives)

	return directives, nil
}

func parseDirective(fset *token.FileSet, path string, file *ast.File, comment *ast.Comment) (Directive, bool) {
	rest, ok := strings.CutPrefix(comment.Text, RegisterDirective)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return Directive{}, false
	}

	start := fset.Position(comment.Pos())
	end := fset.Position(comment.End())

	directive := Directive{
		Package: file.Name.Name,
		Path:    path,
		Span: source.Span{
			Path:   path,
			Start:  source.Location{Line: start.Line, Column: start.Column, Index: start.Offset},
			End:    source.Location{Line: end.Line, Column: end.Column, Index: end.Offset},
			Source: comment.Text,
		},
		Text: rest,
	}

	base := source.Location{Line: start.Line, Column: start.Column + len(RegisterDirective)}
	directive.Args, directive.Error = syntax.ParseArgsAt(path, rest, base)

	return directive, true
}

// markDuplicates rejects every directive after the first one generating
// into the same file.
func markDuplicates(directives []Directive) {
	seen := map[string]bool{}
	for i := range directives {
		directive := &directives[i]
		output := directive.Output()
		if seen[output] {
			directive.Error = &syntax.Error{
				Message: "Expected only one register directive per package",
				Span:    directive.Span,
			}
		}

		seen[output] = true
	}
}

// ScanDir reads the directives of every Go file in `dir` and generates a
// fixture for each valid one. Previously generated files are ignored.
func ScanDir(dir string, options codegen.Options) ([]Result, []*syntax.Error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var directives []Directive
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".go" || slices.Contains(generatedFiles, name) {
			continue
		}

		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}

		found, err := ScanSource(path, src)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning %s: %w", path, err)
		}

		log.Debugf("%s: %d directive(s)", path, len(found))
		directives = append(directives, found...)
	}

	markDuplicates(directives)

	var results []Result
	var syntaxErrors []*syntax.Error
	for _, directive := range directives {
		if directive.Error != nil {
			syntaxErrors = append(syntaxErrors, directive.Error)
			continue
		}

		result, err := directive.Generate(options)
		if err != nil {
			return nil, nil, err
		}

		results = append(results, result)
	}

	return results, syntaxErrors, nil
}

// Output is the file the directive's fixture is written to.
func (directive Directive) Output() string {
	return filepath.Join(filepath.Dir(directive.Path), OutputPath(directive.Path, directive.Package))
}

// Generate synthesizes the fixture for a valid directive. The package
// defaults to the one the directive is written in.
func (directive Directive) Generate(options codegen.Options) (Result, error) {
	if directive.Error != nil {
		return Result{}, directive.Error
	}

	if options.Package == "" {
		options.Package = directive.Package
	}

	output := directive.Output()

	code, err := codegen.NewCodegen(output, options).Bytes(directive.Args)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Args:   directive.Args,
		Output: output,
		Code:   code,
	}, nil
}
