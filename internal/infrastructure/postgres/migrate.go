package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Migrator runs the schema migrations in dir against dsn.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

func NewMigrator(dsn, dir string) (*Migrator, error) {
	// golang-migrate wants database/sql; open it through the pgx stdlib driver
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Migrator{m: m, db: db}, nil
}

func (mg *Migrator) Close() {
	_, _ = mg.m.Close()
	_ = mg.db.Close()
}

func (mg *Migrator) Up() error   { return ignoreNoChange(mg.m.Up()) }
func (mg *Migrator) Down() error { return ignoreNoChange(mg.m.Down()) }

// Steps applies n migrations, rolling back when n is negative.
func (mg *Migrator) Steps(n int) error { return ignoreNoChange(mg.m.Steps(n)) }

func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// RunMigrations applies all pending up migrations.
func RunMigrations(dsn, dir string, logger *logrus.Logger) error {
	mg, err := NewMigrator(dsn, dir)
	if err != nil {
		return err
	}
	defer mg.Close()
	logger.Info("running migrations...")
	if err := mg.Up(); err != nil {
		return err
	}
	v, _, _ := mg.Version()
	logger.WithField("version", v).Info("migrations up to date")
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
