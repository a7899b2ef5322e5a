package main

import (
	"database/sql"
	"errors"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/config"
	"github.com/stkrfx/digitaloffices-1/internal/logging"
	"github.com/stkrfx/digitaloffices-1/migrations"
)

// Usage: migrate [up|down|force <version>]
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logging.New(cfg.LogLevel, cfg.IsProduction)

	conn, err := sql.Open("pgx", cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("open db")
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Ping(); err != nil {
		log.WithError(err).Fatal("ping db")
	}

	dbDriver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		log.WithError(err).Fatal("db driver")
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.WithError(err).Fatal("source driver")
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.WithError(err).Fatal("create migrator")
	}
	defer func() { _, _ = m.Close() }()

	cmd := "up"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version")
		}
		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.WithError(convErr).Fatal("invalid version")
		}
		err = m.Force(version)
	default:
		log.WithField("command", cmd).Fatal("unknown command")
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).WithField("command", cmd).Fatal("migration failed")
	}

	version, dirty, _ := m.Version()
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("migrations complete")
}
