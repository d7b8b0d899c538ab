package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 8080 || cfg.TokenTTL != 24*time.Hour || cfg.MetricsPath != "/metrics" {
					t.Errorf("unexpected defaults: %+v", cfg)
				}
				if !cfg.UsingDevSecret() {
					t.Error("expected dev secret by default")
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":       "9090",
				"DB_PATH":    "/tmp/x.db",
				"JWT_SECRET": "s3cret",
				"TOKEN_TTL":  "90m",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != 9090 || cfg.DBPath != "/tmp/x.db" || cfg.TokenTTL != 90*time.Minute {
					t.Errorf("overrides not applied: %+v", cfg)
				}
				if cfg.UsingDevSecret() {
					t.Error("expected configured secret")
				}
			},
		},
		{name: "bad port", env: map[string]string{"PORT": "http"}, wantErr: true},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantErr: true},
		{name: "bad ttl", env: map[string]string{"TOKEN_TTL": "forever"}, wantErr: true},
		{name: "negative ttl", env: map[string]string{"TOKEN_TTL": "-1h"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(func(key string) string { return tt.env[key] })
			if (err != nil) != tt.wantErr {
				t.Fatalf("load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settleup.env")
	content := "PORT=9191\nJWT_SECRET=from-file\nTOKEN_TTL=2h\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Setenv("ENV_FILE", path)
	t.Setenv("PORT", "7070") // the environment wins over the file
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want 7070 from the environment", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" || cfg.TokenTTL != 2*time.Hour {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	if _, err := Load(); err == nil {
		t.Error("expected error for an explicitly named missing env file")
	}

	values, err := readEnvFile(filepath.Join(t.TempDir(), ".env"), false)
	if err != nil || len(values) != 0 {
		t.Errorf("readEnvFile(optional missing) = %v, %v; want empty, nil", values, err)
	}
}
