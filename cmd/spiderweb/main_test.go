package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	// Try to load .env file - ignore error if it doesn't exist (CI environment)
	_ = godotenv.Load()

	now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	os.Exit(m.Run())
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCategoriesCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "categories")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SURVEY SECTIONS")
	assert.Contains(t, stdout, "1A")
	assert.Contains(t, stdout, "Total questions: 210")
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	answers := writeFile(t, dir, "answers.json", `{"name": "Jane Doe", "yes_counts": {"5B": 17}}`)
	summary := filepath.Join(dir, "summary.yaml")

	stdout, _, err := execute(t, "", "score",
		"--answers", answers,
		"--out-dir", dir,
		"--summary", summary,
		"--verify-pages")
	require.NoError(t, err)

	reportPath := filepath.Join(dir, "spiderweb_report_Jane_Doe.pdf")
	assert.FileExists(t, reportPath)
	assert.FileExists(t, summary)
	assert.Contains(t, stdout, "NORMALIZED RISK ASSESSMENT")
	assert.Contains(t, stdout, "HIGH RISK TIER ACTIVE")

	stdout, _, err = execute(t, "", "verify", "--in", reportPath, "--summary", summary)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 pages")
	assert.Contains(t, stdout, "matches assessment schema")
}

func TestScoreCommand_YAMLSheet(t *testing.T) {
	dir := t.TempDir()
	answers := writeFile(t, dir, "answers.yaml", "name: Bob\nyes_counts:\n  1A: 30\n  2B: 5\n")

	_, _, err := execute(t, "", "score", "-a", answers, "-o", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "spiderweb_report_Bob.pdf"))
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "answers.json", `{"name": "Jane Doe", "yes_counts": {}}`)
	outOfRange := writeFile(t, dir, "range.json", `{"name": "Jane Doe", "yes_counts": {"1B": 13}}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing answers flag", []string{"score"}, `required flag(s) "answers" not set`},
		{"unknown renderer", []string{"score", "-a", valid, "-o", dir, "--renderer", "docx"}, "'renderer' failed 'oneof' check"},
		{"bad summary extension", []string{"score", "-a", valid, "-o", dir, "--summary", "x.txt"}, "'summary' must end in"},
		{"out of range count", []string{"score", "-a", outOfRange, "-o", dir}, "invalid answers"},
		{"missing sheet", []string{"score", "-a", filepath.Join(dir, "nope.json"), "-o", dir}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunCommand_LinePrompts(t *testing.T) {
	dir := t.TempDir()
	answers := []string{"Jane Doe", "abc", "99", "3"}
	for i := 0; i < 10; i++ {
		answers = append(answers, "0")
	}

	stdout, _, err := execute(t, strings.Join(answers, "\n")+"\n", "run", "--out-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Please enter your name: ")
	assert.Contains(t, stdout, "Max number of questions per section:")
	assert.Contains(t, stdout, "Please enter a valid integer.")
	assert.Contains(t, stdout, "Please enter a value between 0 and 30.")
	assert.Contains(t, stdout, "High risk tier not reached")
	assert.FileExists(t, filepath.Join(dir, "spiderweb_report_Jane_Doe.pdf"))
}

func TestRunCommand_InputEnds(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "Jane Doe\n1\n2\n", "run", "--out-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input ended before all answers were collected")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no report is written when input ends early")
}

func TestVerifyCommand_NotPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "hello")

	stdout, _, err := execute(t, "", "verify", "--in", path)
	require.Error(t, err)
	assert.Contains(t, stdout, "notes.txt")
}

func TestVerifyCommand_Summary(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "summary.json", `{"id": "x", "state": "unknown"}`)

	stdout, _, err := execute(t, "", "verify", "--summary", bad)
	require.Error(t, err)
	assert.Contains(t, stdout, "summary.json")
	assert.Contains(t, err.Error(), "validation failed")

	_, _, err = execute(t, "", "verify")
	assert.Error(t, err, "either --in or --summary is required")
}
