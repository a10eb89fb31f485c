package server

import (
	"assertgen/codegen"
	"assertgen/source"
	"assertgen/syntax"
)

type GenerateRequest struct {
	Args    string          `json:"args"`
	Options codegen.Options `json:"options"`
}

type GenerateResponse struct {
	*GenerateResponseSuccess
	*GenerateResponseFailure
}

type GenerateResponseSuccess struct {
	Code string `json:"code"`
}

type GenerateResponseFailure struct {
	Diagnostics []ResponseDiagnostic `json:"diagnostics"`
}

type ResponseDiagnostic struct {
	Location source.Span `json:"location"`
	Message  string      `json:"message"`
	Reason   string      `json:"reason,omitempty"`
	Kind     string      `json:"kind,omitempty"`
}

func (request *GenerateRequest) handle() (GenerateResponse, error) {
	args, syntaxError := syntax.Parse("", request.Args, syntax.ParseArgs)
	if syntaxError != nil {
		diagnostic := ResponseDiagnostic{
			Location: syntaxError.Span,
			Message:  syntaxError.Message,
			Reason:   syntaxError.Reason,
		}

		if syntaxError.Kind != 0 {
			diagnostic.Kind = syntaxError.Kind.String()
		}

		return GenerateResponse{
			GenerateResponseFailure: &GenerateResponseFailure{
				Diagnostics: []ResponseDiagnostic{diagnostic},
			},
		}, nil
	}

	options := request.Options
	if options.Package == "" {
		options.Package = "playground"
	}

	code, err := codegen.NewCodegen("assert_gen.go", options).String(args)
	if err != nil {
		return GenerateResponse{}, err
	}

	return GenerateResponse{
		GenerateResponseSuccess: &GenerateResponseSuccess{Code: code},
	}, nil
}
