package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type command func(m *migrate.Migrate, args []string, logger *logging.Logger) error

var commands = map[string]command{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
}

func main() {
	logger := logging.NewConsole(logging.LevelInfo)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	migrationsDir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		logger.Error("resolve migrations dir failed", "error", err)
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, migrationDBURL(dbURL))
	if err != nil {
		logger.Error("create migrator failed", "error", err)
		os.Exit(1)
	}

	runErr := cmd(m, os.Args[2:], logger)
	closeMigrator(m, logger)
	if runErr != nil {
		logger.Error("migration command failed", "command", os.Args[1], "source", sourceURL, "error", runErr)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runUp(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Info("schema version", "version", "none", "dirty", false)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	logger.Info("schema version", "version", version, "dirty", dirty)
	return nil
}

func runForce(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || version < -1 {
		return fmt.Errorf("invalid version %q", args[0])
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("schema version forced", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 0)
	if err != nil {
		return fmt.Errorf("invalid target version %q: %w", args[0], err)
	}
	if err := ignoreNoChange(m.Migrate(uint(target)), logger); err != nil {
		return err
	}
	logger.Info("migrated to version", "version", target)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}

	return steps, nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db failed", "error", dbErr)
	}
}

func resolveMigrationsDir(override string) (string, error) {
	candidates := append([]string{strings.TrimSpace(override)}, defaultMigrationDirs...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, %s)", strings.Join(defaultMigrationDirs, ", "))
}

// migrationDBURL rewrites postgresql:// to the postgres:// scheme
// golang-migrate registers its driver under.
func migrationDBURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	if parsed.Scheme == "postgresql" {
		parsed.Scheme = "postgres"
	}
	return parsed.String()
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 3\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 2\n", name)
}
