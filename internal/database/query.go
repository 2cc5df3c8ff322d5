package database

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching q anywhere in a LOWER()ed column.
// Use it with ESCAPE '\'. q is folded the way the database's LOWER folds: SQLite only
// lowers ASCII, so there non-ASCII letters match case-sensitively.
func ContainsPattern(db *gorm.DB, q string) string {
	q = strings.TrimSpace(q)
	if db.Dialector.Name() == "sqlite" {
		q = asciiLower(q)
	} else {
		q = strings.ToLower(q)
	}
	return "%" + likeEscaper.Replace(q) + "%"
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
