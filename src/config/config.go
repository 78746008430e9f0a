package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Compiled-in behavior; deliberately not configurable.
const (
	// TickInterval is the render loop cadence (~16ms).
	TickInterval = time.Second / 60
	// ToggleHotkey shows and hides the overlay.
	ToggleHotkey = "F10"
)

const (
	DefaultSkinPath = "steve_head.png"
	EnvPathEnvVar   = "FACE_OVERLAY_ENV"
)

// TicksPerSecond is TickInterval expressed as a rate.
func TicksPerSecond() int { return int(time.Second / TickInterval) }

type LoadOptions struct {
	SkinPathOverride   string
	DisableGlobalInput bool
	EnableFileLogging  bool
	DisableTray        bool
}

type Config struct {
	SkinPath           string
	EnableFileLogging  bool
	DisableGlobalInput bool
	EnableTray         bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use FACE_OVERLAY_ENV env var as a path to a config file
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		SkinPath:           getEnvWithDefault("SKIN_PATH", DefaultSkinPath),
		EnableFileLogging:  envBool("ENABLE_FILE_LOGGING", false),
		DisableGlobalInput: envBool("DISABLE_GLOBAL_INPUT", false),
		EnableTray:         envBool("ENABLE_TRAY", true),
	}

	if override := strings.TrimSpace(opts.SkinPathOverride); override != "" {
		cfg.SkinPath = override
	}
	if opts.DisableGlobalInput {
		cfg.DisableGlobalInput = true
	}
	if opts.EnableFileLogging {
		cfg.EnableFileLogging = true
	}
	if opts.DisableTray {
		cfg.EnableTray = false
	}

	return cfg, nil
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
