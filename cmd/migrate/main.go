package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/config"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/db"
	"github.com/WailSalutem-Health-Care/speech-therapy-service/internal/logging"
)

const usage = "usage: migrate [up|down|force <version>|version]"

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	database, err := db.Connect(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalw("database connection failed", "error", err)
	}
	defer database.Close()

	m, err := db.NewMigrator(database)
	if err != nil {
		logger.Fatalw("create migrator", "error", err)
	}
	defer func() { _, _ = m.Close() }()

	command := "up"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "force":
		if len(os.Args) < 3 {
			logger.Fatal(usage)
		}
		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			logger.Fatalw("invalid version", "error", convErr)
		}
		err = m.Force(version)
	case "version":
		version, dirty, verErr := m.Version()
		if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
			logger.Fatalw("read version", "error", verErr)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	default:
		logger.Fatal(usage)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatalw("migrate "+command, "error", err)
	}

	logger.Infow("✓ migrations complete", "command", command)
}
