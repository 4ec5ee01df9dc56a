package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a file from disk and strips a UTF-8 BOM.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewFile(path, content), nil
}

// NewFile wraps in-memory content the same way Load does.
func NewFile(path string, content []byte) *File {
	content, hadBOM := removeBOM(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if len(content) > 0 && content[len(content)-1] == '\n' {
		flags |= FileTrailingNewline
	}
	hash, err := Fingerprint(content)
	if err != nil {
		hash = 0
	}
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    hash,
		Flags:   flags,
	}
}

// Position converts a byte offset into a line/column pair.
func (f *File) Position(off int) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Save writes content back to the file, restoring a stripped BOM.
func (f *File) Save(content []byte) error {
	if f.Flags&FileHadBOM != 0 {
		content = append(append([]byte(nil), bom...), content...)
	}
	return WriteFile(f.Path, content)
}

// WriteFile atomically replaces path with content and flushes it to stable storage
// before returning, so a compiler started afterwards observes the new bytes.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ltfix-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	// Атомарная замена
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename %s: %w", path, err)
	}
	syncDir(dir)
	return nil
}

// CopyFile copies src to dst through WriteFile.
func CopyFile(src, dst string) error {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	return WriteFile(dst, content)
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	// some filesystems do not support fsync on directories
	_ = d.Sync()
	_ = d.Close()
}
