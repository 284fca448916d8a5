// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/streetpulse/capture"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "file::memory:?cache=shared"
	DefaultDownloadDir = "downloads"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	SessionSalt       string
	CameraMode        string
	PermissionTimeout time.Duration
	DownloadDir       string
	LogFormat         string
}

// LoadEnvFile reads KEY=value pairs from path into the environment.
// A missing file is not an error. Variables already set win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and falls back to the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("streetpulse", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Viewer token salt (prefer env)")

	fs.StringVar(&cfg.CameraMode, "camera", "", "Camera backend (simulated, none or deny)")
	fs.DurationVar(&cfg.PermissionTimeout, "permission-timeout", 0, "How long to wait for camera permission")
	fs.StringVar(&cfg.DownloadDir, "download-dir", "", "Directory for downloaded captures")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", DefaultDatabaseURL)
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	if cfg.CameraMode == "" {
		cfg.CameraMode = envOr("CAMERA_MODE", capture.ModeSimulated)
	}
	switch cfg.CameraMode {
	case capture.ModeSimulated, capture.ModeNone, capture.ModeDeny:
	default:
		return Config{}, fmt.Errorf("unsupported camera mode %q", cfg.CameraMode)
	}

	if cfg.PermissionTimeout == 0 {
		if v := os.Getenv("PERMISSION_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid PERMISSION_TIMEOUT env variable")
			}
			cfg.PermissionTimeout = d
		} else {
			cfg.PermissionTimeout = capture.DefaultPermissionTimeout
		}
	}
	if cfg.PermissionTimeout < 0 {
		return Config{}, errors.New("permission timeout must be positive")
	}

	if cfg.DownloadDir == "" {
		cfg.DownloadDir = envOr("DOWNLOAD_DIR", DefaultDownloadDir)
	}
	cfg.LogFormat = os.Getenv("LOG_FORMAT")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
