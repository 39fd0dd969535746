package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	main "mcq-generator/cmd/mcqgen"
	"mcq-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
	path string
}

func (s *stubExtractor) Extract(ctx context.Context, path string) (string, error) {
	s.path = path
	return s.text, s.err
}

type stubGenerator struct {
	questions string
	err       error
	notes     string
}

func (s *stubGenerator) Generate(ctx context.Context, notes string) (string, error) {
	s.notes = notes
	return s.questions, s.err
}

func newTestMain(extractor domain.Extractor, generator domain.QuestionGenerator) *main.Main {
	return &main.Main{
		Wire: func(ctx context.Context, deps *main.Dependencies) error {
			deps.Extractor = extractor
			deps.Generator = generator
			return nil
		},
	}
}

func TestMain_Extract(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{text: "Hello World\n"}
	stdout := &bytes.Buffer{}

	err := newTestMain(extractor, nil).Run(context.Background(), []string{"extract", "notes.pdf"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", stdout.String())
	assert.Equal(t, "notes.pdf", filepath.Base(extractor.path))
}

func TestMain_ExtractFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"unsupported", &domain.UnsupportedTypeError{Ext: ".txt"}, main.ExitUnsupported, "Unsupported file type"},
		{"no text", &domain.NoTextError{Format: domain.FormatImage}, main.ExitNoText, "No text could be extracted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stderr := &bytes.Buffer{}
			err := newTestMain(&stubExtractor{err: tt.err}, nil).Run(context.Background(), []string{"extract", "notes.txt"}, &bytes.Buffer{}, stderr)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, main.ExitCode(err))
			assert.Contains(t, stderr.String(), tt.wantMsg)
		})
	}
}

func TestMain_GenerateWritesOutFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "mcqs.txt")
	generator := &stubGenerator{questions: "Q1. What?\nAnswer: A"}
	stdout := &bytes.Buffer{}

	err := newTestMain(&stubExtractor{text: "photosynthesis"}, generator).
		Run(context.Background(), []string{"generate", "notes.docx", "--out", out}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "photosynthesis", generator.notes)
	assert.Contains(t, stdout.String(), "Q1. What?")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Q1. What?\nAnswer: A", string(data))
}

func TestMain_GenerateFailure(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "mcqs.txt")
	stderr := &bytes.Buffer{}

	err := newTestMain(&stubExtractor{text: "notes"}, &stubGenerator{err: errors.New("quota exceeded")}).
		Run(context.Background(), []string{"generate", "notes.pdf", "-o", out}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, main.ExitFailure, main.ExitCode(err))
	assert.Contains(t, stderr.String(), "Error generating MCQs: quota exceeded")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	err := newTestMain(nil, nil).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, main.ExitOK, main.ExitCode(nil))
	assert.Equal(t, main.ExitFailure, main.ExitCode(errors.New("boom")))
}
