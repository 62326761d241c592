// Copyright 2026 EdgarLab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files: any explicit paths
// first, then .env in the working directory, then ~/.env. Existing
// environment variables are not overwritten, so calling it repeatedly is
// safe.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if path != "" {
			if err := loadIfExists(path); err != nil {
				return err
			}
		}
	}

	if err := loadIfExists(".env"); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err == nil {
		if err := loadIfExists(filepath.Join(home, ".env")); err != nil {
			return err
		}
	}

	return nil
}

func loadIfExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}
