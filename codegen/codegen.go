package codegen

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"assertgen/source"
	"assertgen/syntax"

	"golang.org/x/tools/imports"
)

const (
	DefaultHelperImport = "assertgen/assertparse"
	DefaultTypeName     = "Assert"
	DefaultFixtureName  = "newAssert"
)

type Options struct {
	Package        string `json:"package"`
	HelperImport   string `json:"helperImport,omitempty"`
	HelperName     string `json:"helperName,omitempty"`
	TypeName       string `json:"typeName,omitempty"`
	FixtureName    string `json:"fixtureName,omitempty"`
	LineDirectives bool   `json:"lineDirectives,omitempty"`
}

// WithDefaults fills in every option left empty.
func (options Options) WithDefaults() Options {
	if options.HelperImport == "" {
		options.HelperImport = DefaultHelperImport
	}

	if options.HelperName == "" {
		options.HelperName = path.Base(options.HelperImport)
	}

	if options.TypeName == "" {
		options.TypeName = DefaultTypeName
	}

	if options.FixtureName == "" {
		options.FixtureName = DefaultFixtureName
	}

	return options
}

func (options Options) validate() error {
	for _, name := range []struct {
		option string
		value  string
	}{
		{"package", options.Package},
		{"helper name", options.HelperName},
		{"type name", options.TypeName},
		{"fixture name", options.FixtureName},
	} {
		if !token.IsIdentifier(name.value) {
			return fmt.Errorf("invalid %s %q", name.option, name.value)
		}
	}

	if options.TypeName == options.FixtureName {
		return fmt.Errorf("type and fixture are both named %q", options.TypeName)
	}

	return nil
}

type Codegen struct {
	OutputPath string
	Options    Options

	output strings.Builder
}

func NewCodegen(outputPath string, options Options) *Codegen {
	return &Codegen{
		OutputPath: outputPath,
		Options:    options.WithDefaults(),
	}
}

func (c *Codegen) WriteLine() {
	c.output.WriteByte('\n')
}

func (c *Codegen) WriteString(s string) {
	_, err := c.output.WriteString(s)
	if err != nil {
		panic(err)
	}
}

func (c *Codegen) Writef(format string, args ...any) {
	c.WriteString(fmt.Sprintf(format, args...))
}

// WriteLineDirective makes the compiler report errors in the next line at
// `span`, the directive the code was generated from.
func (c *Codegen) WriteLineDirective(span source.Span) {
	if !c.Options.LineDirectives || span.Path == "" {
		return
	}

	c.Writef("//line %s:%d:%d", span.Path, span.Start.Line, span.Start.Column)
	c.WriteLine()
}

// String generates the fixture source for `args`.
func (c *Codegen) String(args syntax.Args) (string, error) {
	b, err := c.Bytes(args)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (c *Codegen) Bytes(args syntax.Args) ([]byte, error) {
	if err := c.Options.validate(); err != nil {
		return nil, err
	}

	c.output.Reset()
	c.write(args)

	formatted, err := imports.Process(c.OutputPath, []byte(c.output.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code for %s: %w", args, err)
	}

	return formatted, nil
}

func (c *Codegen) write(args syntax.Args) {
	options := c.Options
	instance := fmt.Sprintf("%s.Assert[%s, %s]", options.HelperName, args.Type(), args.Error.Name)
	span := args.Parsable.Span

	if span.Path != "" {
		c.Writef("// Code generated by assertgen from %s. DO NOT EDIT.", path.Base(span.Path))
	} else {
		c.WriteString("// Code generated by assertgen. DO NOT EDIT.")
	}
	c.WriteLine()
	c.WriteLine()

	c.Writef("package %s", options.Package)
	c.WriteLine()
	c.WriteLine()

	if options.HelperName == path.Base(options.HelperImport) {
		c.Writef("import %q", options.HelperImport)
	} else {
		c.Writef("import %s %q", options.HelperName, options.HelperImport)
	}
	c.WriteLine()
	c.WriteLine()

	c.Writef("// %s checks parsing of %s values.", options.TypeName, args.Parsable.Name)
	c.WriteLine()
	c.WriteLineDirective(span)
	c.Writef("type %s = %s", options.TypeName, instance)
	c.WriteLine()
	c.WriteLine()

	c.Writef("// %s returns a fresh %s fixture.", options.FixtureName, options.TypeName)
	c.WriteLine()
	c.WriteString("//")
	c.WriteLine()
	c.WriteString("//assertgen:fixture")
	c.WriteLine()
	c.WriteLineDirective(span)
	c.Writef("func %s() %s {", options.FixtureName, options.TypeName)
	c.WriteLine()
	c.Writef("\treturn %s.MakeAssert[%s, %s]()", options.HelperName, args.Type(), args.Error.Name)
	c.WriteLine()
	c.WriteString("}")
	c.WriteLine()
}
