// Package format renders a parsed ledger document as canonical text.
//
// Назначение: детерминированный вывод с выравниванием сумм по колонкам.
// Не делает: вычисления выражений, проверки балансов, IO.
// Зависимости: internal/ast, internal/align; Format собирает весь конвейер
// lexer → parser → align → render.
package format
