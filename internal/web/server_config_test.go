package web

import "testing"

func TestDefaultServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvStaticDir, "")
	cfg, err := DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.DevMode || cfg.StaticDir != "" {
		t.Fatalf("cfg=%+v", cfg)
	}

	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvDevMode, "true")
	t.Setenv(EnvStaticDir, "/srv/ui")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || !cfg.DevMode || cfg.StaticDir != "/srv/ui" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestDefaultServerConfigFromEnvRejectsBadBool(t *testing.T) {
	t.Setenv(EnvDevMode, "sometimes")
	if _, err := DefaultServerConfigFromEnv(":80"); err == nil {
		t.Fatalf("expected error")
	}
}
