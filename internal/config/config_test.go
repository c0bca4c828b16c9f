package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "MONGO_DB", "REDIS_URI", "NATS_URL", "MAX_PLAYERS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.HTTPPort != "8080" || cfg.MongoDB != "uno" || cfg.RedisAddr != "redis:6379" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.NATSURL != "" {
		t.Errorf("NATSURL = %q, want empty", cfg.NATSURL)
	}
	if cfg.MaxPlayers != MaxPlayers {
		t.Errorf("MaxPlayers = %d", cfg.MaxPlayers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("MAX_PLAYERS", "3")
	cfg := Load()
	if cfg.HTTPPort != "9000" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.RedisAddr != "cache:6380" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.MaxPlayers != 3 {
		t.Errorf("MaxPlayers = %d", cfg.MaxPlayers)
	}
}

func TestMaxPlayersClamped(t *testing.T) {
	tests := map[string]int{"1": 2, "9": 4, "abc": 4, "2": 2}
	for in, want := range tests {
		t.Setenv("MAX_PLAYERS", in)
		if got := Load().MaxPlayers; got != want {
			t.Errorf("MAX_PLAYERS=%s -> %d, want %d", in, got, want)
		}
	}
}
