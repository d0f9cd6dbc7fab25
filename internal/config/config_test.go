package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Client.Server = "qw.example.com:27500"
	cfg.Client.Name = "ernie"
	cfg.QTV.ListenAddr = ":9000"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Client.Server != cfg.Client.Server || got.Client.Name != cfg.Client.Name {
		t.Fatalf("client = %+v, want %+v", got.Client, cfg.Client)
	}
	if got.QTV.ListenAddr != cfg.QTV.ListenAddr {
		t.Fatalf("qtv = %+v", got.QTV)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("client:\n  server: other:1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Client.Server != "other:1" {
		t.Fatalf("server = %q", cfg.Client.Server)
	}
	if cfg.Replay.IndexPath != Default().Replay.IndexPath {
		t.Fatalf("replay index path should retain default, got %q", cfg.Replay.IndexPath)
	}
}
