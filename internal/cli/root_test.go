package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bolt-foundry/gambit/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(content), 0o644))
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestResolveCommandAlias(t *testing.T) {
	dir := writeProject(t, `
[models.aliases.fast]
model = "openai/gpt-4o-mini"
`)

	out, err := runCommand(t, "resolve", "fast", "--target", dir)
	require.NoError(t, err)
	require.Contains(t, out, "fast -> openai/gpt-4o-mini")
	require.Contains(t, out, "Provider: openai")
}

func TestResolveCommandFallback(t *testing.T) {
	out, err := runCommand(t, "resolve", "my-custom-model", "--target", t.TempDir(), "--fallback", "google")
	require.NoError(t, err)
	require.Contains(t, out, "Provider: google")
}

func TestResolveCommandUnresolvedFails(t *testing.T) {
	_, err := runCommand(t, "resolve", "my-custom-model", "--target", t.TempDir())
	require.Error(t, err)
}

func TestResolveCommandRejectsBadFallback(t *testing.T) {
	_, err := runCommand(t, "resolve", "gpt-4o", "--target", t.TempDir(), "--fallback", "anthropic")
	require.Error(t, err)
}

func TestDoctorCommand(t *testing.T) {
	dir := writeProject(t, `
[workspace]
decks = "decks"

[models.aliases]
broken = 42

[models.aliases.fast]
model = "openai/gpt-4o-mini"
`)

	out, err := runCommand(t, "doctor", "--target", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Config OK")
	require.Contains(t, out, "1 usable, 1 skipped")
	require.Contains(t, out, "fast -> openai/gpt-4o-mini")
	require.Contains(t, out, `skipped "broken"`)
}

func TestDoctorCommandWithoutConfig(t *testing.T) {
	out, err := runCommand(t, "doctor", "--target", t.TempDir())
	require.NoError(t, err)
	require.Contains(t, out, "No gambit.toml found")
}
