package migrations

import (
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// IsSQLite checks if the database is SQLite
func IsSQLite(db *bun.DB) bool {
	return db.Dialect().Name() == dialect.SQLite
}

// IsPostgreSQL checks if the database is PostgreSQL
func IsPostgreSQL(db *bun.DB) bool {
	return db.Dialect().Name() == dialect.PG
}

// dropTableSQL returns a dialect-appropriate DROP TABLE statement.
func dropTableSQL(db *bun.DB, table string) string {
	if IsPostgreSQL(db) {
		return "DROP TABLE IF EXISTS " + table + " CASCADE"
	}
	return "DROP TABLE IF EXISTS " + table
}
