package source

// FileFlags encodes metadata about a loaded source file.
type FileFlags uint8 // метаданные

const (
	// FileHadBOM records a stripped UTF-8 byte order mark; it is restored on write.
	FileHadBOM FileFlags = 1 << iota
	// FileTrailingNewline records that the content ends with '\n'.
	FileTrailingNewline
)

// File captures the content of one source file as read at the start of a pass.
type File struct {
	Path    string
	Content []byte
	LineIdx []int
	Hash    uint64
	Flags   FileFlags
}

// LineCol is a 1-based line/column position.
type LineCol struct {
	Line int
	Col  int
}
