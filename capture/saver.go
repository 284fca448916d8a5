// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// DirSaver writes frames into a directory.
type DirSaver struct {
	Dir string
}

func (d DirSaver) Save(name string, frame Frame) error {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return fmt.Errorf("invalid filename %q", name)
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	path := filepath.Join(d.Dir, base)
	if err := os.WriteFile(path, frame.Data, 0644); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}

	slog.Info("frame saved", "path", path, "size", humanize.Bytes(uint64(len(frame.Data))))
	return nil
}
