package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/auth-profile-service/config"
	pginfra "github.com/oksasatya/auth-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
)

const usage = `usage: migrate [flags] up|down|steps N|version`

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-migrate", cfg.Env)

	dir := flag.String("dir", cfg.MigrationsDir, "migrations directory")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	mg, err := pginfra.NewMigrator(cfg.PostgresDSN(), *dir)
	if err != nil {
		logger.Fatalf("migrator: %v", err)
	}
	defer mg.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		var n int
		if _, perr := fmt.Sscanf(flag.Arg(1), "%d", &n); perr != nil || n == 0 {
			logger.Fatalf("steps needs a non-zero integer, got %q", flag.Arg(1))
		}
		err = mg.Steps(n)
	case "version":
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}

	v, dirty, err := mg.Version()
	if err != nil {
		logger.Fatalf("version: %v", err)
	}
	logger.WithField("dirty", dirty).Infof("schema at version %d", v)
}
