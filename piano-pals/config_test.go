package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(dataPathEnvVar, t.TempDir())
	t.Setenv(storeEnvVar, "")

	cfg, err := loadConfig("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != storeSqlite || cfg.LogFile != defaultLogFile || cfg.Seed != 0 {
		t.Error("Expected defaults, got", cfg)
	}
}

func TestLoadConfigFromDataFolder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(dataPathEnvVar, dir)
	t.Setenv(storeEnvVar, "")
	writeConfigFile(t, dir, "store: badger\nmidiIn: auto\nseed: 42\n")

	cfg, err := loadConfig("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != storeBadger || cfg.MidiIn != "auto" || cfg.Seed != 42 {
		t.Error("Expected values from the config file, got", cfg)
	}
	if cfg.DataDir != dir {
		t.Error("Expected data dir from the environment, got", cfg.DataDir)
	}
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "dataDir: /somewhere/else\nstore: badger\n")
	envDir := t.TempDir()
	t.Setenv(dataPathEnvVar, envDir)
	t.Setenv(storeEnvVar, storeMemory)

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != storeMemory || cfg.DataDir != envDir {
		t.Error("Expected the environment to win, got", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(dataPathEnvVar, t.TempDir())
	t.Setenv(storeEnvVar, "")

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("Expected a missing explicit config file to fail")
	}

	path := writeConfigFile(t, t.TempDir(), "seed: [not, a, number]\n")
	if _, err := loadConfig(path, ""); err == nil {
		t.Error("Expected a bad config file to fail")
	}
}

func TestValidateConfig(t *testing.T) {
	for _, store := range []string{storeSqlite, storeBadger, storeMemory} {
		cfg := defaultConfig()
		cfg.Store = store
		if err := cfg.validate(); err != nil {
			t.Error("Expected", store, "to be valid, got", err)
		}
	}

	cfg := defaultConfig()
	cfg.Store = "postgres"
	if err := cfg.validate(); err == nil {
		t.Error("Expected an unknown store to fail")
	}
}

func TestDataDirPicksConfigFile(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(dataPathEnvVar, envDir)
	t.Setenv(storeEnvVar, "")
	writeConfigFile(t, envDir, "store: memory\n")

	dir := t.TempDir()
	writeConfigFile(t, dir, "store: badger\nseed: 7\n")

	cfg, err := loadConfig("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != storeBadger || cfg.Seed != 7 {
		t.Error("Expected the config file from the data dir, got", cfg)
	}
	if cfg.DataDir != dir {
		t.Error("Expected the data dir to win over the environment, got", cfg.DataDir)
	}
}
