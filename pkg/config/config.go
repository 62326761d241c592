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

// Package config loads and validates the analyst server configuration.
//
// Configuration comes from a YAML file with ${VAR} environment expansion,
// falling back to environment-driven defaults so the agent also runs with no
// config file at all (only OPENROUTER_API_KEY is required).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 9020
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "deepseek/deepseek-v3.2"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 2000

	// APIKeyEnvVar supplies the API key when llm.api_key is unset.
	APIKeyEnvVar = "OPENROUTER_API_KEY"
	// ModelEnvVar supplies the model when llm.model is unset.
	ModelEnvVar = "MODEL_ID"
)

// Config is the root configuration.
type Config struct {
	// Host to bind the HTTP server to.
	Host string `yaml:"host"`

	// Port to bind the HTTP server to.
	Port int `yaml:"port"`

	// LLM configures the generation service.
	LLM LLMConfig `yaml:"llm"`

	// Tasks configures task persistence. Nil keeps the in-memory store.
	Tasks *TasksConfig `yaml:"tasks"`

	// Logger configures logging output.
	Logger LoggerConfig `yaml:"logger"`
}

// LLMConfig configures the chat-completion endpoint.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// TasksConfig configures the task store backend.
type TasksConfig struct {
	// Backend is "inmemory" or "sqlite".
	Backend string `yaml:"backend"`

	// Database is the SQLite file path (sqlite backend only).
	Database string `yaml:"database"`
}

// IsSQL reports whether tasks are persisted to a database.
func (t *TasksConfig) IsSQL() bool {
	return t != nil && t.Backend == "sqlite"
}

// LoggerConfig configures logging.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// SetDefaults fills unset fields, consulting OPENROUTER_API_KEY and MODEL_ID
// for the LLM credentials and model.
func (c *Config) SetDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(APIKeyEnvVar)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = os.Getenv(ModelEnvVar)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Tasks != nil && c.Tasks.Backend == "" {
		c.Tasks.Backend = "inmemory"
	}
	if c.Tasks.IsSQL() && c.Tasks.Database == "" {
		c.Tasks.Database = ".analyst/tasks.db"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm api key is required (set %s or llm.api_key)", APIKeyEnvVar)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.Tasks != nil {
		switch c.Tasks.Backend {
		case "inmemory", "sqlite":
		default:
			return fmt.Errorf("unsupported tasks backend: %s (supported: inmemory, sqlite)", c.Tasks.Backend)
		}
	}
	return nil
}

// Address returns the host:port the server binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns a configuration built entirely from defaults and
// environment variables.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Load reads a YAML config file, expands environment variable references,
// applies defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
