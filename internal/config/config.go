// internal/config/config.go
//
// Runtime configuration for the wizard server and CLIs.
//
// Sources, later ones winning:
//   1. Built-in defaults.
//   2. A YAML file named by WIZARD_CONFIG (solver and word-list settings only).
//   3. Environment variables (a `.env` file is loaded first when present).
//
// Environment variables:
//   PORT, LOG_LEVEL, WORDS_FILE, WORD_LENGTH, DB_PATH, JWT_SECRET,
//   JWT_EXPIRES_DAYS, DAILY_SALT, CLIENT_ORIGIN, NODE_ENV,
//   SOLVER_FULL_POOL_THRESHOLD, SOLVER_SAMPLE_SIZE, SOLVER_PREVIEW_SIZE, SOLVER_SEED

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/wizard-server/internal/lexicon"
	"github.com/robalobadob/wordle/apps/wizard-server/internal/solver"
)

// Solver holds guess-selection parameters.
type Solver struct {
	FullPoolThreshold int    `yaml:"full_pool_threshold"`
	SampleSize        int    `yaml:"sample_size"`
	PreviewSize       int    `yaml:"preview_size"`
	Seed              uint64 `yaml:"seed"` // 0 = seed from the clock
}

// Options converts the settings into engine options. A non-zero seed gives
// every engine the same reproducible sampling sequence.
func (s Solver) Options() solver.Options {
	opts := solver.Options{
		FullPoolThreshold: s.FullPoolThreshold,
		SampleSize:        s.SampleSize,
	}
	if s.Seed != 0 {
		opts.Rand = solver.NewRand(s.Seed)
	}
	return opts
}

// Config is the full runtime configuration.
type Config struct {
	Port         string        `yaml:"-"`
	LogLevel     string        `yaml:"-"`
	WordsFile    string        `yaml:"words_file"`
	WordLength   int           `yaml:"word_length"`
	DBPath       string        `yaml:"-"`
	JWTSecret    string        `yaml:"-"`
	JWTTTL       time.Duration `yaml:"-"`
	DailySalt    string        `yaml:"-"`
	ClientOrigin string        `yaml:"-"`
	Production   bool          `yaml:"-"` // NODE_ENV=production
	Solver       Solver        `yaml:"solver"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		WordLength:   5,
		DBPath:       "./data/wizard.db",
		JWTSecret:    "dev_secret_change_me",
		JWTTTL:       14 * 24 * time.Hour,
		DailySalt:    "local_dev_salt",
		ClientOrigin: "http://localhost:5173",
		Solver: Solver{
			FullPoolThreshold: 100,
			SampleSize:        100,
			PreviewSize:       5,
		},
	}
}

// Load reads `.env` (if any), the optional YAML file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("WIZARD_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// mergeFile overlays the YAML file at path onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.WordsFile = getEnv("WORDS_FILE", c.WordsFile)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	c.Production = os.Getenv("NODE_ENV") == "production"

	ints := []struct {
		key string
		dst *int
	}{
		{"WORD_LENGTH", &c.WordLength},
		{"SOLVER_FULL_POOL_THRESHOLD", &c.Solver.FullPoolThreshold},
		{"SOLVER_SAMPLE_SIZE", &c.Solver.SampleSize},
		{"SOLVER_PREVIEW_SIZE", &c.Solver.PreviewSize},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: JWT_EXPIRES_DAYS: %w", err)
		}
		c.JWTTTL = time.Duration(days) * 24 * time.Hour
	}
	if v := os.Getenv("SOLVER_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: SOLVER_SEED: %w", err)
		}
		c.Solver.Seed = seed
	}
	return nil
}

// Validate rejects settings the solver cannot run with.
func (c Config) Validate() error {
	if c.WordLength <= 0 {
		return fmt.Errorf("config: word_length must be > 0")
	}
	if c.Solver.FullPoolThreshold <= 0 {
		return fmt.Errorf("config: full_pool_threshold must be > 0")
	}
	if c.Solver.SampleSize <= 0 {
		return fmt.Errorf("config: sample_size must be > 0")
	}
	if c.Solver.PreviewSize < 0 {
		return fmt.Errorf("config: preview_size must be >= 0")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_EXPIRES_DAYS must be > 0")
	}
	return nil
}

// Words loads the configured word list, falling back to the embedded one.
func (c Config) Words() ([]string, error) {
	if c.WordsFile == "" {
		return lexicon.Default(c.WordLength)
	}
	return lexicon.Load(c.WordsFile, c.WordLength)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
