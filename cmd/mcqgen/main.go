package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"mcq-generator/internal/config"
	"mcq-generator/internal/domain"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Exit codes reported by the mcqgen binary
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUnsupported = 2
	ExitNoText      = 3
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, domain.ErrUnsupportedType) && !errors.Is(err, domain.ErrNoTextFound) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(ExitCode(err))
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrUnsupportedType):
		return ExitUnsupported
	case errors.Is(err, domain.ErrNoTextFound):
		return ExitNoText
	default:
		return ExitFailure
	}
}

// Main represents the program.
type Main struct {
	// Wire builds the dependencies of a parsed command. Tests replace it.
	Wire func(ctx context.Context, deps *Dependencies) error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Wire: wireContainer}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mcqgen"),
		kong.Description("Extract text from study notes and turn it into multiple-choice questions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mcqgen --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.Wire(ctx, deps); err != nil {
		return err
	}
	return kongCtx.Run(deps)
}

func wireContainer(ctx context.Context, deps *Dependencies) error {
	container, err := config.NewContainer(ctx, config.WithLogWriter(deps.Stderr))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	deps.Extractor = container.Extractor
	deps.Generator = container.Generator
	return nil
}
