package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/xw1nchester/dealscan-backend/internal/config"
	pgclient "github.com/xw1nchester/dealscan-backend/pkg/client/postgresql"
)

func main() {
	var migrationsPath string
	var down bool

	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.BoolVar(&down, "down", false, "roll back every migration")

	// MustLoad parses the flags registered above together with -config.
	cfg := config.MustLoad()

	db, err := sql.Open("postgres", pgclient.DSN(cfg.PostgreSQL)+"?sslmode=disable")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres", driver)
	if err != nil {
		panic(err)
	}

	apply, done := m.Up, "all migrations have been successfully applied"
	if down {
		apply, done = m.Down, "all migrations have been rolled back"
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}

		panic(err)
	}

	fmt.Println(done)
}
