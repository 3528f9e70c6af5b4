package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chessduel.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":3000" || cfg.Game.TimeControl != 10*time.Minute || cfg.Game.MatchmakingInterval != time.Second {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
  allowed_origins: ["https://duel.example"]
game:
  time_control: 3m
  casual: true
  start_fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || len(cfg.Server.AllowedOrigins) != 1 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Game.TimeControl != 3*time.Minute || !cfg.Game.Casual || cfg.Game.StartFEN == "" {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.Game.MatchmakingInterval != time.Second || cfg.Server.WSReadBuffer != 1024 {
		t.Fatalf("unset fields should keep their defaults: %+v", cfg)
	}
	if lvl, _ := cfg.Log.FiberLevel(); lvl != log.LevelDebug {
		t.Fatalf("level = %v", lvl)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero time control": "game:\n  time_control: 0s\n",
		"bad fen":           "game:\n  start_fen: nonsense\n",
		"bad level":         "log:\n  level: loud\n",
		"empty addr":        "server:\n  addr: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "server:\n  addr: \":9000\"\n"))
	t.Setenv(EnvAddr, ":9100")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("addr = %q, env should win over the file", cfg.Server.Addr)
	}
}
