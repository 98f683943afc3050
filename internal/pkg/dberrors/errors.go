package dberrors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// Kind classifies an engine error.
type Kind int

const (
	KindOther Kind = iota
	KindUnique
	KindForeignKey
	KindCheck
	KindNotNull
)

// Classify reports which integrity constraint, if any, the error violated.
// Both the embedded SQLite engine and PostgreSQL errors are understood.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return KindUnique
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return KindForeignKey
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return KindCheck
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return KindNotNull
		case sqlite3lib.SQLITE_CONSTRAINT_TRIGGER:
			// ON DELETE RESTRICT actions are reported as trigger failures.
			if strings.Contains(sqliteErr.Error(), "FOREIGN KEY") {
				return KindForeignKey
			}
		}
		return KindOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return KindUnique
		case pgForeignKeyViolation:
			return KindForeignKey
		case pgCheckViolation:
			return KindCheck
		case pgNotNullViolation:
			return KindNotNull
		}
	}

	return KindOther
}

// IsUniqueViolation reports a duplicate key error.
func IsUniqueViolation(err error) bool {
	return Classify(err) == KindUnique
}

// IsForeignKeyViolation reports a missing parent row or a parent that still has dependents.
func IsForeignKeyViolation(err error) bool {
	return Classify(err) == KindForeignKey
}

// IsConstraintViolation reports any integrity constraint failure.
func IsConstraintViolation(err error) bool {
	return Classify(err) != KindOther
}

// IsDuplicateConstraintError checks if the error is a unique violation on the given column
// of the given table, e.g. ("students", "email").
func IsDuplicateConstraintError(err error, table, column string) bool {
	if !IsUniqueViolation(err) {
		return false
	}
	return ViolatedColumn(err, table) == column
}

// ViolatedColumn extracts the column named by a unique violation, or "" when unknown.
func ViolatedColumn(err error, table string) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.ColumnName != "" {
			return pgErr.ColumnName
		}
		// Default constraint names look like "students_email_key"
		name, ok := strings.CutPrefix(pgErr.ConstraintName, table+"_")
		if !ok {
			return ""
		}
		return strings.TrimSuffix(name, "_key")
	}

	// SQLite: "UNIQUE constraint failed: students.email"
	message := err.Error()
	marker := table + "."
	idx := strings.Index(message, marker)
	if idx == -1 {
		return ""
	}
	column := message[idx+len(marker):]
	if end := strings.IndexAny(column, " ,)"); end != -1 {
		column = column[:end]
	}
	return column
}

// IsEngineError reports whether err was raised by SQLite or PostgreSQL.
func IsEngineError(err error) bool {
	var sqliteErr *msqlite.Error
	var pgErr *pgconn.PgError
	return errors.As(err, &sqliteErr) || errors.As(err, &pgErr)
}
