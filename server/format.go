package server

import (
	"assertgen/syntax"
)

type FormatRequest struct {
	Args string `json:"args"`
}

type FormatResponse struct {
	Args string `json:"args"`
}

func (request *FormatRequest) handle() (FormatResponse, error) {
	formatted, err := syntax.Format(request.Args)
	if err != nil {
		// Return the original arguments if they can't be parsed
		return FormatResponse{Args: request.Args}, nil
	}

	return FormatResponse{Args: formatted}, nil
}
