package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\n" +
		"echo \"" + EnvStorePath + "=$" + EnvStorePath + "\"\n" +
		"echo \"args=$*\"\n" +
		"exit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "club-hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldPath, oldOut := *storePath, stdout
	t.Cleanup(func() { *storePath, stdout = oldPath, oldOut })
	*storePath = "ledger.json"
	var out bytes.Buffer
	stdout = &out

	found, code := RunExtension("hello", []string{"a", "b"})
	assert.True(t, found)
	assert.Equal(t, 3, code)
	assert.Contains(t, out.String(), EnvStorePath+"=ledger.json")
	assert.Contains(t, out.String(), "args=a b")
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("missing", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
