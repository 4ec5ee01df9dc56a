package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndSaveRoundTripBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn main() {}\n")...)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileTrailingNewline)

	require.NoError(t, f.Save([]byte("fn main() { }\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn main() { }\n")...), got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.rs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.rs")
	dst := filepath.Join(dir, "b.rs")
	require.NoError(t, os.WriteFile(src, []byte("fn a() {}\n"), 0o644))

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "fn a() {}\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a, err := Fingerprint([]byte("fn a() {}"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("fn b() {}"))
	require.NoError(t, err)
	again, err := Fingerprint([]byte("fn a() {}"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
}
