package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"assertgen/codegen"
	"assertgen/colors"
	"assertgen/driver"
	"assertgen/lsp"
	"assertgen/server"
	"assertgen/syntax"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("assertgen")

var errDiagnostics = errors.New("invalid directive arguments")

type Context struct{}

type CodegenFlags struct {
	HelperImport   string `help:"Import path of the assertion helper package."`
	HelperName     string `help:"Name the helper package is imported as."`
	TypeName       string `help:"Name of the generated type alias."`
	FixtureName    string `help:"Name of the generated fixture function."`
	LineDirectives bool   `help:"Point compiler errors in generated code at the directive."`
}

func (flags CodegenFlags) options(pkg string) codegen.Options {
	return codegen.Options{
		Package:        pkg,
		HelperImport:   flags.HelperImport,
		HelperName:     flags.HelperName,
		TypeName:       flags.TypeName,
		FixtureName:    flags.FixtureName,
		LineDirectives: flags.LineDirectives,
	}
}

type GenerateCmd struct {
	CodegenFlags `embed:""`

	File    string   `env:"GOFILE" help:"File containing the directive."`
	Line    int      `env:"GOLINE" help:"Line of the directive."`
	Package string   `env:"GOPACKAGE" help:"Package the fixture belongs to."`
	Output  string   `short:"o" help:"Output file."`
	Args    []string `arg:"" optional:"" name:"args" help:"Directive arguments, eg. Mock[int], MockError."`
}

func (cmd *GenerateCmd) Run(ctx *Context) error {
	result, syntaxError, err := driver.Generate(driver.Request{
		Path:    cmd.File,
		Line:    cmd.Line,
		Args:    cmd.Args,
		Output:  cmd.Output,
		Options: cmd.options(cmd.Package),
	})
	if err != nil {
		return err
	}

	if syntaxError != nil {
		host := strings.Join(cmd.Args, " ")
		if cmd.File != "" {
			host = readHost(cmd.File)
		}

		driver.WriteDiagnostic(os.Stderr, syntaxError, host)
		return errDiagnostics
	}

	return result.Write()
}

type ScanCmd struct {
	CodegenFlags `embed:""`

	DryRun bool     `short:"n" help:"Print generated code instead of writing it."`
	Dirs   []string `arg:"" optional:"" name:"dir" type:"existingdir" help:"Package directories to scan."`
}

func (cmd *ScanCmd) Run(ctx *Context) error {
	dirs := cmd.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var syntaxErrors []*syntax.Error
	for _, dir := range dirs {
		results, errs, err := driver.ScanDir(dir, cmd.options(""))
		if err != nil {
			return err
		}

		syntaxErrors = append(syntaxErrors, errs...)

		for _, result := range results {
			if cmd.DryRun {
				fmt.Printf("// %s\n%s\n", result.Output, result.Code)
				continue
			}

			err := result.Write()
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "%s %s\n", colors.Title("Generated"), driver.Describe(result))
		}
	}

	hosts := map[string]string{}
	for _, err := range syntaxErrors {
		if _, ok := hosts[err.Span.Path]; !ok {
			hosts[err.Span.Path] = readHost(err.Span.Path)
		}
	}

	if driver.WriteDiagnostics(os.Stderr, syntaxErrors, hosts) > 0 {
		return errDiagnostics
	}

	return nil
}

type FormatCmd struct {
	Args []string `arg:"" name:"args" help:"Directive arguments to format."`
}

func (cmd *FormatCmd) Run(ctx *Context) error {
	text := strings.Join(cmd.Args, " ")

	formatted, syntaxError := syntax.Format(text)
	if syntaxError != nil {
		driver.WriteDiagnostic(os.Stderr, syntaxError, text)
		return errDiagnostics
	}

	fmt.Println(formatted)

	return nil
}

type LspCmd struct {
	CodegenFlags `embed:""`

	Stdio bool `required:""`
}

func (cmd *LspCmd) Run(ctx *Context) error {
	return lsp.Run(lsp.Options{
		Codegen: cmd.options(""),
	})
}

type ServerCmd struct {
	Lambda bool `cmd:""`
}

func (cmd *ServerCmd) Run(ctx *Context) error {
	color.NoColor = true
	return server.Run(cmd.Lambda)
}

var cli struct {
	Verbose int `short:"v" type:"counter" help:"Log more, repeat for more detail."`

	Generate GenerateCmd `cmd:"" help:"Generate a fixture from go:generate arguments."`
	Scan     ScanCmd     `cmd:"" help:"Generate fixtures for the register directives in packages."`
	Format   FormatCmd   `cmd:"" help:"Print directive arguments in their canonical spelling."`
	Lsp      LspCmd      `cmd:"" help:"Run the language server."`
	Server   ServerCmd   `cmd:"" help:"Run the playground server."`
}

func main() {
	// Default to server if running as Lambda function
	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		commonlog.Configure(1, nil)
		err := (&ServerCmd{Lambda: true}).Run(&Context{})
		if err != nil {
			log.Criticalf("%s", err)
			os.Exit(1)
		}
		return
	}

	ctx := kong.Parse(&cli,
		kong.Name("assertgen"),
		kong.Description("Generates parser test fixtures."),
		kong.Configuration(kong.JSON, ".assertgen.json"),
	)

	commonlog.Configure(cli.Verbose, nil)

	err := ctx.Run(&Context{})
	ctx.FatalIfErrorf(err)
}

// readHost returns the contents of `path`, or nothing if it cannot be read.
func readHost(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("cannot read %s: %v", path, err)
		return ""
	}

	return string(b)
}
