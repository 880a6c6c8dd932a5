package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM users WHERE id = ?",
			want:  "SELECT * FROM users WHERE id = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO reservations (user_id, start_date, end_date, rooms) VALUES (?, ?, ?, ?)",
			want:  "INSERT INTO reservations (user_id, start_date, end_date, rooms) VALUES ($1, $2, $3, $4)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "SELECT * FROM reservations WHERE start_date <= ? AND end_date >= ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrote query: %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql rewrote query: %q", got)
	}
	pg := NewPostgresDialect().RewriteQuery(query)
	if !strings.Contains(pg, "$1") || !strings.Contains(pg, "$2") {
		t.Errorf("postgres rewrite missing numbered placeholders: %q", pg)
	}
}

func TestSupportsLastInsertId(t *testing.T) {
	if !NewSQLiteDialect().SupportsLastInsertId() {
		t.Error("sqlite should support LastInsertId")
	}
	if !NewMySQLDialect().SupportsLastInsertId() {
		t.Error("mysql should support LastInsertId")
	}
	if NewPostgresDialect().SupportsLastInsertId() {
		t.Error("postgres should not support LastInsertId")
	}
}

func TestMigrationsSubdir(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{NewSQLiteDialect(), "sqlite"},
		{NewPostgresDialect(), "postgres"},
		{NewMySQLDialect(), "mysql"},
	}
	for _, tt := range tests {
		if got := tt.dialect.MigrationsSubdir(); got != tt.want {
			t.Errorf("%T MigrationsSubdir() = %q, want %q", tt.dialect, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	sqlite := NewSQLiteDialect()
	if !sqlite.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}) {
		t.Error("sqlite unique constraint error not detected")
	}
	if sqlite.IsUniqueViolation(errors.New("boom")) {
		t.Error("plain error misdetected as sqlite unique violation")
	}

	postgres := NewPostgresDialect()
	if !postgres.IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Error("postgres unique violation not detected")
	}
	if postgres.IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("postgres foreign key violation misdetected as unique")
	}

	mysqlDialect := NewMySQLDialect()
	if !mysqlDialect.IsUniqueViolation(&mysql.MySQLError{Number: 1062}) {
		t.Error("mysql duplicate entry not detected")
	}
	if mysqlDialect.IsUniqueViolation(&mysql.MySQLError{Number: 1452}) {
		t.Error("mysql foreign key error misdetected as unique")
	}
}

func TestUpsertInviteResponseQueryShape(t *testing.T) {
	for _, d := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		q := d.UpsertInviteResponseQuery()
		if !strings.Contains(q, "invite_responses") {
			t.Errorf("%T upsert does not target invite_responses: %q", d, q)
		}
		if strings.Count(q, "?") != 4 {
			t.Errorf("%T upsert has %d placeholders, want 4", d, strings.Count(q, "?"))
		}
	}
}
