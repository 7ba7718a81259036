// Package fuzztests houses Go fuzz harnesses that exercise the formatting
// pipeline (source -> lexer -> parser -> align -> render). Its goal is to
// smoke test robustness and guard against panics, hangs and unstable output
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag,
// internal/format.

package fuzztests
