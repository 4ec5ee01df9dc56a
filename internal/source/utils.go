package source

import (
	"path/filepath"
	"strings"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == bom[0] && content[1] == bom[1] && content[2] == bom[2] {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []int {
	out := make([]int, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, i)
		}
	}
	return out
}

func toLineCol(lineIdx []int, off int) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим первый перевод строки >= off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // количество переводов строки до off

	startOff := 0
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: line + 1, Col: off - startOff + 1}
}

// SplitLines splits content on '\n'. The returned flag reports whether content
// ended with a newline; in that case no empty trailing element is produced.
func SplitLines(content string) ([]string, bool) {
	if content == "" {
		return nil, false
	}
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = content[:len(content)-1]
	}
	return strings.Split(content, "\n"), trailing
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out
}

func normalizePath(p string) string {
	return filepath.Clean(p)
}
