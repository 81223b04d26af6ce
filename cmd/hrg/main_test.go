package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hrggo/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `nodes:
  - features: {name: hello}
    relations:
      Word: {id: "0"}
relations:
  Word: {first: "0", last: "0"}
`

func TestRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	out := filepath.Join(dir, "nested", "out.hcl.zst")
	require.NoError(t, os.WriteFile(in, []byte(sampleDoc), 0o644))
	archive := []string{"--archive", filepath.Join(dir, "hrg.db")}

	// --- Act ---
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append(archive, "convert", in, out), &stdout, &stderr)

	// --- Assert ---
	require.NoError(t, err)
	_, err = os.Stat(out)
	require.NoError(t, err)

	stdout.Reset()
	require.NoError(t, run(context.Background(), append(archive, "validate", filepath.Join(dir, "**", "*.zst")), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "ok   "+out+" (1 nodes)")
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"stats", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)

	err = run(context.Background(), []string{"nope"}, &stdout, &stderr)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "Run 'hrg --help' for usage.")
}
