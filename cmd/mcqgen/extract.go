package main

import (
	"fmt"

	apperrors "mcq-generator/pkg/errors"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	text, err := deps.Extractor.Extract(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apperrors.FromDomain(err).Message)
		return err
	}

	fmt.Fprint(deps.Stdout, text)
	return nil
}
