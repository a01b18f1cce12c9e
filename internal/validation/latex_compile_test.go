package validation

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLaTeX_Valid(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not available, skipping compilation test")
	}

	tmpDir := t.TempDir()
	source := `\documentclass{article}
\begin{document}
Hello, World!
\end{document}`

	pdfPath, _, err := CompileLaTeX(context.Background(), source, "hello", tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "hello.pdf"), pdfPath)

	_, err = os.Stat(pdfPath)
	assert.NoError(t, err, "PDF should exist")

	require.NoError(t, CleanupCompilationArtifacts(tmpDir, "hello"))
	_, err = os.Stat(filepath.Join(tmpDir, "hello.aux"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(pdfPath)
	assert.NoError(t, err, "cleanup keeps the PDF")
}

func TestCompileLaTeX_Invalid(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not available, skipping compilation test")
	}

	source := `\documentclass{article}
\begin{document}
\undefinedcommand{this will fail}
\end{document}`

	_, logOutput, err := CompileLaTeX(context.Background(), source, "broken", t.TempDir())
	require.Error(t, err)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr))
	assert.NotEmpty(t, logOutput)
}

func TestCompileLaTeX_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, _, err := CompileLaTeX(context.Background(), "", "x", "")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, err.Error(), "pdflatex not found")
}

func TestCleanupCompilationArtifacts_TempDir(t *testing.T) {
	dir, err := os.MkdirTemp("", tempDirPattern)
	require.NoError(t, err)

	require.NoError(t, CleanupCompilationArtifacts(dir, "report"))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, CleanupCompilationArtifacts("", "report"))
}
