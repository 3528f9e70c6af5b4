package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "CHESSDUEL_CONFIG"
	EnvAddr       = "CHESSDUEL_ADDR"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	WSReadBuffer   int      `yaml:"ws_read_buffer"`
	WSWriteBuffer  int      `yaml:"ws_write_buffer"`
}

type GameConfig struct {
	TimeControl         time.Duration `yaml:"time_control"`
	MatchmakingInterval time.Duration `yaml:"matchmaking_interval"`
	StartFEN            string        `yaml:"start_fen"`
	Casual              bool          `yaml:"casual"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"http://localhost:5173"},
			WSReadBuffer:   1024,
			WSWriteBuffer:  1024,
		},
		Game: GameConfig{
			TimeControl:         10 * time.Minute,
			MatchmakingInterval: time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("'%s': %v", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("'%s': %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by CHESSDUEL_CONFIG, then applies CHESSDUEL_ADDR.
func FromEnv() (Config, error) {
	cfg, err := Load(os.Getenv(EnvConfigPath))
	if err != nil {
		return Config{}, err
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Server.WSReadBuffer <= 0 || c.Server.WSWriteBuffer <= 0 {
		return fmt.Errorf("%w: websocket buffers must be positive", ErrInvalidConfig)
	}
	if c.Game.TimeControl <= 0 {
		return fmt.Errorf("%w: game.time_control must be positive", ErrInvalidConfig)
	}
	if c.Game.MatchmakingInterval <= 0 {
		return fmt.Errorf("%w: game.matchmaking_interval must be positive", ErrInvalidConfig)
	}
	if c.Game.StartFEN != "" {
		if _, err := model.FromFEN(c.Game.StartFEN); err != nil {
			return fmt.Errorf("%w: game.start_fen: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Log.FiberLevel(); err != nil {
		return err
	}
	return nil
}

// FiberLevel maps the configured level name onto the fiber logger's levels.
func (l LogConfig) FiberLevel() (log.Level, error) {
	switch strings.ToLower(l.Level) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, l.Level)
}
