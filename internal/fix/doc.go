// Package fix turns compiler diagnostics into source changes.
//
// Назначение: применить подсказки rustc (замена строки, lifetime bound) к файлу.
// Не делает: запуска компилятора и выбора стратегии ремонта.
// Зависимости: internal/diag, internal/suggest, internal/rewrite.
package fix
