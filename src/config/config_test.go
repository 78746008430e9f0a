package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SKIN_PATH", "ENABLE_FILE_LOGGING", "DISABLE_GLOBAL_INPUT", "ENABLE_TRAY", EnvPathEnvVar} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SkinPath != DefaultSkinPath {
		t.Errorf("Expected SkinPath to be '%s', got '%s'", DefaultSkinPath, cfg.SkinPath)
	}
	if cfg.EnableFileLogging || cfg.DisableGlobalInput {
		t.Errorf("Expected logging and input flags off, got %+v", cfg)
	}
	if !cfg.EnableTray {
		t.Error("Expected tray enabled by default")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	// Set test environment variables
	t.Setenv("SKIN_PATH", "skins/creeper.png")
	t.Setenv("ENABLE_FILE_LOGGING", "true")
	t.Setenv("DISABLE_GLOBAL_INPUT", "1")
	t.Setenv("ENABLE_TRAY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SkinPath != "skins/creeper.png" {
		t.Errorf("Expected SkinPath to be 'skins/creeper.png', got '%s'", cfg.SkinPath)
	}
	if !cfg.EnableFileLogging || !cfg.DisableGlobalInput || cfg.EnableTray {
		t.Errorf("Expected env flags applied, got %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SKIN_PATH")
	envFile := filepath.Join(t.TempDir(), "overlay.env")
	if err := os.WriteFile(envFile, []byte("SKIN_PATH=from_dotenv.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPathEnvVar, envFile)
	t.Cleanup(func() { os.Unsetenv("SKIN_PATH") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SkinPath != "from_dotenv.png" {
		t.Errorf("Expected SkinPath from .env, got '%s'", cfg.SkinPath)
	}
}

func TestLoadOptionsOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKIN_PATH", "env.png")

	cfg, err := LoadWithOptions(LoadOptions{
		SkinPathOverride:   "cli.png",
		DisableGlobalInput: true,
		EnableFileLogging:  true,
		DisableTray:        true,
	})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SkinPath != "cli.png" {
		t.Errorf("Expected CLI skin to win, got '%s'", cfg.SkinPath)
	}
	if !cfg.DisableGlobalInput || !cfg.EnableFileLogging || cfg.EnableTray {
		t.Errorf("Expected overrides applied, got %+v", cfg)
	}
}

func TestCompiledInConstants(t *testing.T) {
	if TickInterval < 16*time.Millisecond || TickInterval > 17*time.Millisecond {
		t.Errorf("Expected ~16ms tick, got %v", TickInterval)
	}
	if TicksPerSecond() != 60 {
		t.Errorf("Expected 60 ticks per second, got %d", TicksPerSecond())
	}
	if ToggleHotkey != "F10" {
		t.Errorf("Expected F10 hotkey, got %s", ToggleHotkey)
	}
}
