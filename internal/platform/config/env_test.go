package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port      int           `env:"MILLIONAIRE_TEST_PORT" envDefault:"123"`
	TimeLimit time.Duration `env:"MILLIONAIRE_TEST_TIME_LIMIT" envDefault:"1h"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.TimeLimit != time.Hour {
		t.Fatalf("expected default time limit 1h, got %s", cfg.TimeLimit)
	}
}

func TestParseEnvReadsDuration(t *testing.T) {
	t.Setenv("MILLIONAIRE_TEST_TIME_LIMIT", "35m")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TimeLimit != 35*time.Minute {
		t.Fatalf("time limit = %s, want 35m", cfg.TimeLimit)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MILLIONAIRE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected nil target error")
	}
}
