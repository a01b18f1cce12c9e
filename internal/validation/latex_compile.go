package validation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for LaTeX compilation
	CompilationTimeout = 60 * time.Second

	tempDirPattern = "spiderweb-latex-*"
)

// CompileLaTeX writes source to a .tex file in workDir and compiles it with
// pdflatex. An empty workDir uses a fresh temporary directory; remove it with
// CleanupCompilationArtifacts.
func CompileLaTeX(ctx context.Context, source, baseName, workDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", tempDirPattern)
		if err != nil {
			return "", "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texPath := filepath.Join(workDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdflatex",
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", workDir,
		texPath,
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	pdfPath = filepath.Join(workDir, baseName+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can leave a PDF behind after an error; it is not trusted
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// CleanupCompilationArtifacts removes a temporary directory created by
// CompileLaTeX, or the auxiliary files of baseName in a caller-owned directory
func CleanupCompilationArtifacts(workDir, baseName string) error {
	if workDir == "" {
		return nil
	}

	if strings.HasPrefix(filepath.Base(workDir), strings.TrimSuffix(tempDirPattern, "*")) {
		return os.RemoveAll(workDir)
	}

	for _, ext := range []string{".aux", ".log", ".out", ".tex"} {
		_ = os.Remove(filepath.Join(workDir, baseName+ext))
	}

	return nil
}
