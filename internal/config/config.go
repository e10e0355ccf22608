package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFleet = errors.New("fleet must list positive hull lengths no longer than the board")

const (
	defaultAddr        = ":8080"
	defaultMaxAttempts = 10000
	defaultMoveDelay   = time.Second
	boardSize          = 10

	AddrEnv = "SERVER_ADDR"
)

var defaultFleet = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Development bool `yaml:"development"`
}

type PlacementConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type OpponentConfig struct {
	// MoveDelay paces consecutive opponent shots; a negative value disables pacing.
	MoveDelay time.Duration `yaml:"move_delay"`
	// Seed fixes the random source for fleets and the opponent; zero means time-seeded.
	Seed int64 `yaml:"seed"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Fleet     []int           `yaml:"fleet"`
	Placement PlacementConfig `yaml:"placement"`
	Opponent  OpponentConfig  `yaml:"opponent"`
}

func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "open config '%s'", cfgPath)
	}
	defer func() {
		_ = file.Close()
	}()
	cfg, err := Decode(file)
	if err != nil {
		return Config{}, err
	}
	if addr := os.Getenv(AddrEnv); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

// Decode reads a yaml config, fills in defaults and validates the fleet.
func Decode(r io.Reader) (Config, error) {
	cfg := Config{}
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if len(c.Fleet) == 0 {
		c.Fleet = append([]int(nil), defaultFleet...)
	}
	if c.Placement.MaxAttempts <= 0 {
		c.Placement.MaxAttempts = defaultMaxAttempts
	}
	if c.Opponent.MoveDelay < 0 {
		c.Opponent.MoveDelay = 0
	} else if c.Opponent.MoveDelay == 0 {
		c.Opponent.MoveDelay = defaultMoveDelay
	}
}

func (c Config) validate() error {
	for i, length := range c.Fleet {
		if length <= 0 || length > boardSize {
			return errors.WithMessagef(ErrInvalidFleet, "hull #%d has length %d", i, length)
		}
	}
	return nil
}
