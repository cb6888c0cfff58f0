package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mr-shifu/puzzle-lib/pkg/config"
	"github.com/mr-shifu/puzzle-lib/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answerSHA256 = "69c2feb084439956193f4c21936025f14a5a5a78979d67ae34762e18a7206a0f"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Setenv("PUZZLE_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLI_Number(t *testing.T) {
	out, err := runCLI(t, "number")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestCLI_Digest(t *testing.T) {
	out, err := runCLI(t, "digest", "near nomicon ref finance")
	require.NoError(t, err)
	assert.Equal(t, answerSHA256+"\n", out)

	out, err = runCLI(t, "--scheme", "plaintext", "digest", "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)
}

func TestCLI_Session(t *testing.T) {
	db := filepath.Join(t.TempDir(), "puzzle.db")

	_, err := runCLI(t, "--db", db, "init", answerSHA256)
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "get")
	require.NoError(t, err)
	assert.Equal(t, answerSHA256+"\n", out)

	out, err = runCLI(t, "--db", db, "guess", "wrong answer here")
	require.NoError(t, err)
	assert.Equal(t, "log: "+puzzle.MsgTryAgain+"\nfalse\n", out)

	out, err = runCLI(t, "--db", db, "guess", "near nomicon ref finance")
	require.NoError(t, err)
	assert.Equal(t, "log: "+puzzle.MsgCorrect+"\ntrue\n", out)

	_, err = runCLI(t, "--db", db, "set", "0000")
	require.NoError(t, err)
	out, err = runCLI(t, "--db", db, "guess", "near nomicon ref finance")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "false\n"))
}

func TestCLI_AllowedCallers(t *testing.T) {
	db := filepath.Join(t.TempDir(), "puzzle.db")
	t.Setenv("PUZZLE_ALLOWED_CALLERS", "owner.testnet")

	_, err := runCLI(t, "--db", db, "--caller", "mallory.testnet", "init", "x")
	assert.True(t, errors.Is(err, puzzle.ErrPermissionDenied))

	_, err = runCLI(t, "--db", db, "--caller", "owner.testnet", "init", "x")
	assert.NoError(t, err)
}

func TestCLI_InvalidConfig(t *testing.T) {
	_, err := runCLI(t, "--scheme", "md5", "number")
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	path := filepath.Join(t.TempDir(), "puzzle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheme: md5\n"), 0o600))
	_, err = runCLI(t, "--config", path, "--scheme", "plaintext", "digest", "abc")
	assert.NoError(t, err, "A flag can fix a value the file got wrong")
}

func TestCLI_InvalidLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	t.Setenv("PUZZLE_LOG_LEVEL", "loud")
	err := run([]string{"number"}, &stdout, &stderr)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}
