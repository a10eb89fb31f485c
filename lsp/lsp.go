package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"sync"

	"assertgen/codegen"
	"assertgen/driver"
	"assertgen/source"
	"assertgen/syntax"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var log = commonlog.GetLogger("assertgen.lsp")

type Options struct {
	Codegen codegen.Options
}

var (
	handler       protocol.Handler
	options       Options
	workspacePath = ""

	lock       sync.Mutex
	sources    = map[protocol.DocumentUri]string{}
	directives = map[protocol.DocumentUri][]driver.Directive{}

	tokenTypes = []string{"type", "typeParameter"}
)

const (
	tokenType = iota
	tokenTypeParameter
)

func Run(opts Options) error {
	commonlog.Configure(2, nil)

	options = opts

	handler = protocol.Handler{
		Initialize:                     initialize,
		Shutdown:                       shutdown,
		SetTrace:                       setTrace,
		TextDocumentDidOpen:            didOpen,
		TextDocumentDidChange:          didChange,
		TextDocumentDidClose:           didClose,
		TextDocumentHover:              hover,
		TextDocumentSemanticTokensFull: semanticTokens,
		TextDocumentFormatting:         format,
	}

	server := server.NewServer(&handler, "assertgen", false)

	return server.RunStdio()
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if len(params.WorkspaceFolders) > 0 {
		workspacePath = path(params.WorkspaceFolders[0].URI)
	}

	capabilities := handler.CreateServerCapabilities()

	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}

	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes: tokenTypes,
		},
		Full: true,
	}

	capabilities.HoverProvider = true

	return protocol.InitializeResult{Capabilities: capabilities}, nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func didOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	update(context, params.TextDocument.URI, params.TextDocument.Text)

	return nil
}

func didChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			update(context, params.TextDocument.URI, whole.Text)
		}
	}

	return nil
}

func didClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	lock.Lock()
	defer lock.Unlock()

	delete(sources, params.TextDocument.URI)
	delete(directives, params.TextDocument.URI)

	return nil
}

func update(context *glsp.Context, uri protocol.DocumentUri, source string) {
	diagnostics := check(uri, source)

	context.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// check rescans the document and returns its diagnostics. Documents that
// are not valid Go keep the directives found the last time they were.
func check(uri protocol.DocumentUri, source string) []protocol.Diagnostic {
	lock.Lock()
	defer lock.Unlock()

	sources[uri] = source

	found, err := driver.ScanSource(path(uri), []byte(source))
	if err != nil {
		log.Debugf("%s: %v", uri, err)
		found = directives[uri]
	} else {
		directives[uri] = found
	}

	diagnostics := []protocol.Diagnostic{}
	for _, directive := range found {
		if directive.Error != nil {
			diagnostics = append(diagnostics, convertError(directive.Error))
		}
	}

	return diagnostics
}

func hover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return getHover(params.TextDocument.URI, params.Position), nil
}

func getHover(uri protocol.DocumentUri, position protocol.Position) *protocol.Hover {
	lock.Lock()
	defer lock.Unlock()

	for _, directive := range directives[uri] {
		r := convertSpan(directive.Span)
		if !contains(r, position) {
			continue
		}

		var value string
		if directive.Error != nil {
			value = directive.Error.Message
			if directive.Error.Reason != "" {
				value += "\n\n" + directive.Error.Reason
			}
		} else {
			result, err := directive.Generate(options.Codegen)
			if err != nil {
				value = err.Error()
			} else {
				value = fmt.Sprintf("```go\n%s```", result.Code)
			}
		}

		return &protocol.Hover{
			Range: &r,
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: value,
			},
		}
	}

	return nil
}

func semanticTokens(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	tokens := getSemanticTokens(params.TextDocument.URI)
	return &tokens, nil
}

type semanticToken struct {
	line   uint32
	start  uint32
	length uint32
	kind   uint32
}

// getSemanticTokens highlights the types named by valid directives. Starts
// and lengths are byte counts, like convertSpan.
func getSemanticTokens(uri protocol.DocumentUri) protocol.SemanticTokens {
	lock.Lock()
	defer lock.Unlock()

	var tokens []semanticToken
	add := func(span source.Span, kind uint32) {
		// Don't highlight across lines
		if span.Start.Line != span.End.Line || span.IsEmpty() {
			return
		}

		tokens = append(tokens, semanticToken{
			line:   uint32(span.Start.Line - 1),
			start:  uint32(span.Start.Column - 1),
			length: uint32(span.End.Column - span.Start.Column),
			kind:   kind,
		})
	}

	for _, directive := range directives[uri] {
		if directive.Error != nil {
			continue
		}

		add(directive.Args.Parsable.Span, tokenType)
		if directive.Args.Generics != nil {
			for _, argument := range directive.Args.Generics.Arguments {
				add(argument.Span, tokenTypeParameter)
			}
		}
		add(directive.Args.Error.Span, tokenType)
	}

	slices.SortStableFunc(tokens, func(left semanticToken, right semanticToken) int {
		if left.line != right.line {
			return int(left.line) - int(right.line)
		}

		return int(left.start) - int(right.start)
	})

	return protocol.SemanticTokens{Data: encodeTokens(tokens)}
}

// encodeTokens writes each token relative to the previous one, as
// [line delta, start delta, length, type, modifiers].
func encodeTokens(tokens []semanticToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, 5*len(tokens))

	var line, start uint32
	for _, token := range tokens {
		if token.line != line {
			start = 0
		}

		data = append(data,
			protocol.UInteger(token.line-line),
			protocol.UInteger(token.start-start),
			protocol.UInteger(token.length),
			protocol.UInteger(token.kind),
			0,
		)

		line = token.line
		start = token.start
	}

	return data
}

func format(context *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return getEdits(params.TextDocument.URI), nil
}

// getEdits rewrites the arguments of every valid directive in their
// canonical spelling.
func getEdits(uri protocol.DocumentUri) []protocol.TextEdit {
	lock.Lock()
	defer lock.Unlock()

	edits := []protocol.TextEdit{}
	for _, directive := range directives[uri] {
		if directive.Error != nil {
			continue
		}

		formatted := " " + directive.Args.String()
		if formatted == directive.Text {
			continue
		}

		start := directive.Span.Start
		start.Column += len(driver.RegisterDirective)

		r := convertSpan(source.Span{Start: start, End: directive.Span.End})

		edits = append(edits, protocol.TextEdit{
			Range:   r,
			NewText: formatted,
		})
	}

	return edits
}

func path(uri protocol.DocumentUri) string {
	parsed, err := url.Parse(string(uri))
	if err != nil {
		return ""
	}

	if workspacePath == "" {
		return parsed.Path
	}

	path, err := filepath.Rel(workspacePath, parsed.Path)
	if err != nil {
		return ""
	}

	return path
}

// convertSpan converts 1-based lines and columns, with exclusive ends, to
// 0-based LSP positions. Columns are bytes while LSP counts UTF-16 units, so
// positions shift if non-ASCII text precedes a directive on its line.
func convertSpan(span source.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(span.Start.Line - 1),
			Character: uint32(span.Start.Column - 1),
		},
		End: protocol.Position{
			Line:      uint32(span.End.Line - 1),
			Character: uint32(span.End.Column - 1),
		},
	}
}

func contains(r protocol.Range, position protocol.Position) bool {
	return r.Start.Line == position.Line &&
		r.Start.Character <= position.Character &&
		r.End.Line == position.Line &&
		r.End.Character >= position.Character
}

func convertError(err *syntax.Error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	diagnosticSource := "assertgen"

	message := err.Message
	if err.Reason != "" {
		message += " (" + err.Reason + ")"
	}

	diagnostic := protocol.Diagnostic{
		Severity: &severity,
		Range:    convertSpan(err.Span),
		Message:  message,
		Source:   &diagnosticSource,
	}

	if err.Kind != 0 {
		diagnostic.Code = &protocol.IntegerOrString{Value: err.Kind.String()}
	}

	return diagnostic
}
