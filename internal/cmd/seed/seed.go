// Package seed imports the question catalogue into the game database.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	entrypoint "github.com/louisbranch/millionaire/internal/platform/cmd"
	"github.com/louisbranch/millionaire/internal/services/millionaire/catalog"
	"github.com/louisbranch/millionaire/internal/services/millionaire/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath      string `env:"MILLIONAIRE_DB_PATH" envDefault:"data/millionaire.db"`
	CatalogPath string `env:"MILLIONAIRE_CATALOG_PATH"`
	Check       bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "question catalogue YAML (default: embedded)")
	fs.BoolVar(&cfg.Check, "check", false, "validate the catalogue without writing")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the catalogue and imports new questions into the database,
// reporting the resulting number of questions per level to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "catalog %s: %d questions\n", versionLabel(cat.Version), len(cat.Questions))
	if cfg.Check {
		return nil
	}

	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutQuestions(ctx, cat.Questions); err != nil {
		return err
	}
	counts, err := store.CountQuestionsByLevel(ctx)
	if err != nil {
		return err
	}
	levels := make([]int, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		fmt.Fprintf(out, "level %2d: %d\n", level, counts[level])
	}
	return nil
}

func versionLabel(version string) string {
	if version == "" {
		return "(unversioned)"
	}
	return version
}
