// Package fuzztests houses Go fuzz harnesses for the s-Java checker
// (lines -> lexer.Split -> sema scan/replay -> verdict). They guard against
// panics, hangs and verdicts that change between identical runs.
//
// Назначение: прогонять произвольные байты через разбиение строк и полную
// проверку файла.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/driver, internal/diag.

package fuzztests
