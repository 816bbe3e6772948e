// Package generator turns one C# source unit into xUnit test skeletons.
//
// Назначение: поиск public классов, разрешение namespace, проверка дублей,
// сборка using и синтез тестового дерева, которое затем печатает Printer.
// Не делает: разбор и печать сами по себе (Parser и Printer внедряются), IO.
// Зависимости: internal/ast, internal/diag.
package generator
