package main

import (
	"fmt"
	"os"

	apperrors "mcq-generator/pkg/errors"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	text, err := deps.Extractor.Extract(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apperrors.FromDomain(err).Message)
		return err
	}

	questions, err := deps.Generator.Generate(deps.Ctx, text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error generating MCQs: %v\n", err)
		return apperrors.NewGenerationError("question generation failed", err)
	}

	fmt.Fprintln(deps.Stdout, questions)

	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(questions), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Out, err)
		}
		fmt.Fprintf(deps.Stderr, "MCQs written to %s\n", c.Out)
	}
	return nil
}
