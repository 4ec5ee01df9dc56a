// Package driver runs the compile and repair loop.
//
// Назначение: вызывать компилятор, передавать диагностику обработчику и решать,
// продолжать ли цикл. Не делает: разбора Rust и правок файлов.
// Зависимости: internal/diag, internal/observ, internal/source.
package driver
