// Package textutil provides the text normalization and keyword matching
// helpers behind the continuity heuristics, plus small formatting helpers
// shared by reports and the CLI.
//
// Matching is case-insensitive substring containment over text normalized
// with Unicode-aware lowercasing; keywords are expected in lowercase.
package textutil
