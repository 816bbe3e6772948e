// Package format renders syntax trees back to C# text.
//
// Назначение: печать синтетических деревьев генератора (using, namespace,
// класс, методы с телами из строк) в нормализованный текст.
// Не делает: сохранение исходного форматирования, комментариев и trivia.
// Зависимости: internal/ast; internal/parser только в тестах (round-trip).
package format
