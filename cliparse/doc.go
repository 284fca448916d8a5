// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

main loads an optional .env file first, then parses flags:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: submission database (default: shared in-memory sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSalt: Secret for hashing viewer tokens (required)
  - CameraMode: simulated, none or deny (default: simulated)
  - PermissionTimeout: camera permission wait (default: 30s)
  - DownloadDir: where downloaded captures are written (default: downloads)
  - LogFormat: "json" switches slog to the JSON handler

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	--session-salt       Viewer token salt
	--camera             Camera backend
	--permission-timeout Camera permission wait
	--download-dir       Download directory

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	SESSION_SALT       → --session-salt
	CAMERA_MODE        → --camera
	PERMISSION_TIMEOUT → --permission-timeout
	DOWNLOAD_DIR       → --download-dir
	LOG_FORMAT         (env only)

CLI flags take precedence over environment variables, and environment
variables take precedence over the .env file.

# Validation

ParseFlags returns an error if SESSION_SALT is missing or a value does not
parse.
*/
package cliparse
