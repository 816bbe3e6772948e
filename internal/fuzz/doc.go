
// Package fuzztests houses Go fuzz harnesses that exercise the C# front end
// and the test generator (source -> lexer -> parser -> generator). Its goal
// is to smoke test robustness and guard against panics or hangs on arbitrary
// inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// генератор тестов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/generator, internal/pipeline.

package fuzztests
