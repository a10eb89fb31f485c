package syntax

// Format rewrites directive arguments in their canonical spelling, eg.
// `Mock[ int ],MockError` becomes `Mock[int], MockError`.
func Format(text string) (string, *Error) {
	args, err := Parse("", text, ParseArgs)
	if err != nil {
		return "", err
	}

	return args.String(), nil
}
