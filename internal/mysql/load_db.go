package mysql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed users.sql
var usersSchema string

func LoadDB(dsn string) *sql.DB {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot connect to DB:", err)
	}
	if err := exec(db); err != nil {
		log.Fatal("Cannot create tables:", err)
	}
	return db
}

func exec(db *sql.DB) error {
	if _, err := db.Exec(usersSchema); err != nil {
		return fmt.Errorf("failed to execute users.sql: %w", err)
	}
	return nil
}
