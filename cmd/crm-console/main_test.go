package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
}

func TestInitConfigFailsOnMissingExplicitFile(t *testing.T) {
	resetConfig(t)
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	if err := initConfig(); err == nil {
		t.Fatal("expected an error for a missing --config file")
	}
}

func TestInitConfigFailsOnMalformedExplicitFile(t *testing.T) {
	resetConfig(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n\tbase_url: [broken"), 0o600); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	cfgFile = path

	if err := initConfig(); err == nil {
		t.Fatal("expected an error for a malformed --config file")
	}
}

func TestInitConfigReadsExplicitFile(t *testing.T) {
	resetConfig(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: https://crm.example.com/api\n"), 0o600); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	cfgFile = path

	if err := initConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := viper.GetString("api.base_url"); got != "https://crm.example.com/api" {
		t.Fatalf("expected config value to be loaded, got %q", got)
	}
}

func TestInitConfigToleratesAbsentDefaultFile(t *testing.T) {
	resetConfig(t)

	if err := initConfig(); err != nil {
		t.Fatalf("expected missing default config to be tolerated, got %v", err)
	}
}
