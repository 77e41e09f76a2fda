package sedit

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import to register the built-in transformers
	_ "github.com/arthur-debert/sedit/pkg/core"
	"github.com/arthur-debert/sedit/pkg/errors"
)

// setupCLITest isolates the test from the user's config and terminal.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("SEDIT_CONFIG_DIR", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func runCLI(args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// captureStdout swaps os.Stdout for a pipe while fn runs.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func writeCLIFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readCLIFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSubCommand(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo one\nfoo two\n")

	require.NoError(t, runCLI("sub", "s/foo/bar/g", target))

	assert.Equal(t, "bar one\nbar two\n", readCLIFile(t, target))

	// the original content survives in the canonical backup
	assert.Equal(t, "foo one\nfoo two\n", readCLIFile(t, target+".bak"))
}

func TestSubCommandFirstMatchOnly(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo one\nfoo two\n")

	require.NoError(t, runCLI("sub", "s/foo/bar/", target))

	assert.Equal(t, "bar one\nfoo two\n", readCLIFile(t, target))
}

func TestSubCommandDryRun(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo one\nfoo two\n")

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("--dry-run", "sub", "s/foo/bar/g", target))
	})

	assert.Contains(t, out, "dry-run")
	assert.Contains(t, out, "would change")
	assert.Equal(t, "foo one\nfoo two\n", readCLIFile(t, target))

	_, err := os.Stat(target + ".bak")
	assert.True(t, os.IsNotExist(err), "dry run must not create a backup")
}

func TestSubCommandNoBackup(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo\n")

	require.NoError(t, runCLI("--no-backup", "sub", "s/foo/bar/", target))

	assert.Equal(t, "bar\n", readCLIFile(t, target))

	_, err := os.Stat(target + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestSubCommandTimestampedStrategy(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo\n")

	require.NoError(t, runCLI("--backup-strategy", "timestamped", "sub", "s/foo/bar/", target))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "notes.txt.") && strings.HasSuffix(name, ".bak") {
			backups = append(backups, name)
		}
	}
	require.Len(t, backups, 1)
	assert.NotEqual(t, "notes.txt.bak", backups[0], "timestamped backups carry a stamp segment")
}

func TestSubCommandValidationFailure(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo\n")

	var err error
	out := captureStdout(t, func() {
		err = runCLI("sub", "s/foo", target)
	})

	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "MALFORMED_PATTERN")
	assert.Equal(t, "foo\n", readCLIFile(t, target))
}

func TestSubCommandMissingFile(t *testing.T) {
	setupCLITest(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")

	var err error
	out := captureStdout(t, func() {
		err = runCLI("sub", "s/foo/bar/", missing)
	})

	assert.ErrorIs(t, err, errEditsFailed)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "SOURCE_NOT_FOUND")
}

func TestSubCommandGlob(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	a := writeCLIFile(t, dir, "a.txt", "foo\n")
	b := writeCLIFile(t, dir, "b.txt", "foo\n")
	writeCLIFile(t, dir, "c.log", "foo\n")

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("sub", "s/foo/bar/", filepath.Join(dir, "*.txt")))
	})

	assert.Equal(t, "bar\n", readCLIFile(t, a))
	assert.Equal(t, "bar\n", readCLIFile(t, b))
	assert.Equal(t, "foo\n", readCLIFile(t, filepath.Join(dir, "c.log")))
	assert.Contains(t, out, "2 files edited")
}

func TestSubCommandBadGlob(t *testing.T) {
	setupCLITest(t)

	err := runCLI("sub", "s/foo/bar/", "[")

	require.Error(t, err)
	assert.NotErrorIs(t, err, errEditsFailed)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestLinesCommand(t *testing.T) {
	setupCLITest(t)

	t.Run("replace", func(t *testing.T) {
		dir := t.TempDir()
		target := writeCLIFile(t, dir, "f.txt", "one\ntwo\nthree\n")

		require.NoError(t, runCLI("lines", "replace", "2", "TWO", target))
		assert.Equal(t, "one\nTWO\nthree\n", readCLIFile(t, target))
	})

	t.Run("delete range", func(t *testing.T) {
		dir := t.TempDir()
		target := writeCLIFile(t, dir, "f.txt", "one\ntwo\nthree\n")

		require.NoError(t, runCLI("lines", "delete", "1,2", target))
		assert.Equal(t, "three\n", readCLIFile(t, target))
	})

	t.Run("insert after", func(t *testing.T) {
		dir := t.TempDir()
		target := writeCLIFile(t, dir, "f.txt", "one\nthree\n")

		require.NoError(t, runCLI("lines", "insert", "1", "two", target))
		assert.Equal(t, "one\ntwo\nthree\n", readCLIFile(t, target))
	})
}

func TestLinesCommandBadRange(t *testing.T) {
	setupCLITest(t)

	err := runCLI("lines", "delete", "x", "whatever.txt")

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestLinesCommandUnknownAction(t *testing.T) {
	setupCLITest(t)

	err := runCLI("lines", "smash", "2", "whatever.txt")

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestLinesCommandOutOfBounds(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "f.txt", "one\n")

	var err error
	out := captureStdout(t, func() {
		err = runCLI("lines", "delete", "9", target)
	})

	assert.ErrorIs(t, err, errEditsFailed)
	assert.Contains(t, out, "LINE_OUT_OF_BOUNDS")
	assert.Equal(t, "one\n", readCLIFile(t, target))
}

func TestColsCommand(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "costs.csv", "widget,10\ngadget,25\n")

	require.NoError(t, runCLI("cols", "-F", ",", "$2", target))

	assert.Equal(t, "10\n25\n", readCLIFile(t, target))
}

func TestReplaceCommand(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "version.txt", "version 1.2.3, schema 1x2y3\n")

	require.NoError(t, runCLI("replace", "1.2.3", "1.2.4", target))

	// the dots stay literal: 1x2y3 is untouched
	assert.Equal(t, "version 1.2.4, schema 1x2y3\n", readCLIFile(t, target))
}

func TestReplaceCommandAll(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "links.md", "http://a http://b\nhttp://c\n")

	require.NoError(t, runCLI("replace", "--all", "http://", "https://", target))

	assert.Equal(t, "https://a https://b\nhttps://c\n", readCLIFile(t, target))
}

func TestScriptCommand(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	script := writeCLIFile(t, dir, "upper.lua",
		"function transform(content)\n  return string.upper(content)\nend\n")
	target := writeCLIFile(t, dir, "notes.txt", "hello\n")

	require.NoError(t, runCLI("script", script, target))

	assert.Equal(t, "HELLO\n", readCLIFile(t, target))
}

func TestScriptCommandMissingScript(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "hello\n")

	err := runCLI("script", filepath.Join(dir, "absent.lua"), target)

	require.Error(t, err)
	assert.Equal(t, errors.ErrSourceNotFound, errors.GetErrorCode(err))
}

func TestPlanCommand(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	version := writeCLIFile(t, dir, "version.txt", "1.2.3\n")
	notes := writeCLIFile(t, dir, "notes.txt", "foo\n")

	plan := writeCLIFile(t, dir, "release.yaml", `steps:
  - file: `+version+`
    mode: literal
    find: "1.2.3"
    replace: "1.2.4"
  - file: `+notes+`
    mode: substitute
    expression: "s/foo/bar/"
`)

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("plan", plan))
	})

	assert.Equal(t, "1.2.4\n", readCLIFile(t, version))
	assert.Equal(t, "bar\n", readCLIFile(t, notes))
	assert.Contains(t, out, "step 1")
	assert.Contains(t, out, "step 2")
}

func TestPlanCommandStopsOnFailure(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	first := writeCLIFile(t, dir, "first.txt", "foo\n")
	third := writeCLIFile(t, dir, "third.txt", "foo\n")

	plan := writeCLIFile(t, dir, "plan.yaml", `steps:
  - file: `+first+`
    mode: substitute
    expression: "s/foo/bar/"
  - file: `+filepath.Join(dir, "absent.txt")+`
    mode: substitute
    expression: "s/foo/bar/"
  - file: `+third+`
    mode: substitute
    expression: "s/foo/bar/"
`)

	var err error
	captureStdout(t, func() {
		err = runCLI("plan", plan)
	})

	assert.ErrorIs(t, err, errEditsFailed)
	assert.Equal(t, "bar\n", readCLIFile(t, first), "the step before the failure ran")
	assert.Equal(t, "foo\n", readCLIFile(t, third), "the step after the failure did not run")
}

func TestPlanCommandParseError(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	plan := writeCLIFile(t, dir, "plan.yaml", `steps:
  - file: whatever.txt
    mode: substitute
    experssion: "s/a/b/"
`)

	err := runCLI("plan", plan)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errEditsFailed)
	assert.Equal(t, errors.ErrPlanParse, errors.GetErrorCode(err))
}

func TestBackupsCreateAndList(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "content\n")

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "create", target))
	})
	assert.Contains(t, out, "backup created: "+target+".bak")
	assert.Equal(t, "content\n", readCLIFile(t, target+".bak"))

	out = captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "list", dir))
	})
	assert.Contains(t, out, target+".bak")
	assert.Contains(t, out, "canonical")
}

func TestBackupsListEmpty(t *testing.T) {
	setupCLITest(t)

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "list", t.TempDir()))
	})

	assert.Contains(t, out, "No backups found")
}

func TestBackupsRestore(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "original\n")

	require.NoError(t, runCLI("sub", "s/original/edited/", target))
	require.Equal(t, "edited\n", readCLIFile(t, target))

	captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "restore", target+".bak"))
	})

	assert.Equal(t, "original\n", readCLIFile(t, target))
}

func TestBackupsRestoreExplicitTarget(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "content\n")
	captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "create", target))
	})

	elsewhere := filepath.Join(dir, "copy.txt")
	captureStdout(t, func() {
		require.NoError(t, runCLI("backups", "restore", target+".bak", "--target", elsewhere))
	})

	assert.Equal(t, "content\n", readCLIFile(t, elsewhere))
}

func TestBackupsRestoreUnderivableTarget(t *testing.T) {
	setupCLITest(t)

	err := runCLI("backups", "restore", "/tmp/not-a-backup.txt")

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
	assert.Contains(t, err.Error(), "--target")
}

func TestValidateCommand(t *testing.T) {
	setupCLITest(t)

	t.Run("valid expression", func(t *testing.T) {
		out := captureStdout(t, func() {
			require.NoError(t, runCLI("validate", "sub", "s/foo/bar/g"))
		})
		assert.Contains(t, out, "valid")
	})

	t.Run("invalid expression", func(t *testing.T) {
		var err error
		out := captureStdout(t, func() {
			err = runCLI("validate", "sub", "s/foo")
		})
		assert.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, out, "MALFORMED_PATTERN")
	})

	t.Run("unknown mode", func(t *testing.T) {
		err := runCLI("validate", "bogus", "x")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
	})

	t.Run("lines range", func(t *testing.T) {
		var err error
		out := captureStdout(t, func() {
			err = runCLI("validate", "lines", "delete", "5,2")
		})
		assert.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, out, "INVALID_RANGE")
	})
}

func TestVersionCommand(t *testing.T) {
	setupCLITest(t)

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("version"))
	})

	assert.Contains(t, out, "sedit version")
	assert.Contains(t, out, "commit:")
}

func TestDiffFlag(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo\nkeep\n")

	out := captureStdout(t, func() {
		require.NoError(t, runCLI("--diff", "sub", "s/foo/bar/", target))
	})

	assert.Contains(t, out, "foo -> bar")
}

func TestColorFlagRejectsUnknownValue(t *testing.T) {
	setupCLITest(t)

	err := runCLI("--color", "sometimes", "validate", "sub", "s/a/b/")

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestStrategyFlagRejectsUnknownValue(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	target := writeCLIFile(t, dir, "notes.txt", "foo\n")

	err := runCLI("--backup-strategy", "weekly", "sub", "s/foo/bar/", target)

	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
	assert.Equal(t, "foo\n", readCLIFile(t, target))
}
