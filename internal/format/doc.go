// Package format canonicalizes rewritten Rust source through an external
// formatter (rustfmt by default).
//
// Назначение: привести файл к каноническому виду после каждой правки сигнатуры.
// Не делает: собственного pretty-print, разбора или IO кроме запуска команды.
// Зависимости: os/exec.
package format
