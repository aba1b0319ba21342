// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelout configuration.

package config

import (
	"os"
	"path/filepath"
)

const defaultLayoutName = "layout.toml"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelout"), nil
}

// DefaultLayoutPath is where the run command looks when no layout is given.
func DefaultLayoutPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, defaultLayoutName), nil
}
