package main

import (
	"context"
	"io"

	"mcq-generator/internal/domain"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor domain.Extractor
	Generator domain.QuestionGenerator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract  ExtractCmd  `cmd:"" help:"Print the text extracted from a PDF, DOCX or image"`
	Generate GenerateCmd `cmd:"" help:"Generate multiple-choice questions from a file"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" type:"path" help:"PDF, DOCX, PNG or JPEG file"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	File string `arg:"" type:"path" help:"PDF, DOCX, PNG or JPEG file"`
	Out  string `short:"o" type:"path" help:"Also write the questions to this file"`
}
