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

// Command analyst runs the 10-K finance analyst A2A agent.
//
// Usage:
//
//	analyst serve
//	analyst serve --config config.yaml
//	analyst serve --port 9020 --model deepseek/deepseek-v3.2
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/edgarlab/analyst/pkg/analyst"
	"github.com/edgarlab/analyst/pkg/config"
	"github.com/edgarlab/analyst/pkg/llm"
	"github.com/edgarlab/analyst/pkg/logger"
	"github.com/edgarlab/analyst/pkg/server"
	"github.com/edgarlab/analyst/pkg/task"
)

// CLI defines the command-line interface.
type CLI struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the A2A server."`
	Version VersionCmd `cmd:"" help:"Show version information."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (text or json)." default:"text"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("analyst version %s\n", version)
	return nil
}

// ServeCmd starts the A2A server.
type ServeCmd struct {
	Host    string `help:"Host to bind (default 127.0.0.1)."`
	Port    int    `help:"Port to bind (default 9020)."`
	Model   string `help:"Model identifier (defaults to MODEL_ID env)."`
	APIKey  string `name:"api-key" help:"API key (defaults to OPENROUTER_API_KEY env)."`
	BaseURL string `name:"base-url" help:"Chat-completion API base URL."`

	Storage   string `help:"Task storage backend: inmemory or sqlite (default: inmemory)." placeholder:"BACKEND"`
	StorageDB string `name:"storage-db" help:"SQLite database path (default: .analyst/tasks.db)." placeholder:"PATH"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	cfg, err := c.loadConfig(cli.Config)
	if err != nil {
		return err
	}

	gen := llm.NewOpenAI(llm.Options{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	executor := server.NewExecutor(analyst.New(gen))

	var serverOpts []server.HTTPServerOption
	if cfg.Tasks.IsSQL() {
		store, err := task.NewSQLiteStore(cfg.Tasks.Database)
		if err != nil {
			return fmt.Errorf("failed to create task store: %w", err)
		}
		defer func() { _ = store.Close() }()
		serverOpts = append(serverOpts, server.WithTaskStore(store))
		slog.Info("Task persistence enabled", "database", cfg.Tasks.Database)
	}

	srv := server.NewHTTPServer(cfg, executor, serverOpts...)

	fmt.Printf("Starting finance analyst agent on %s\n", srv.Address())
	fmt.Printf("   Agent Card: http://%s/.well-known/agent-card.json\n", srv.Address())
	fmt.Printf("   Health:     http://%s/health\n", srv.Address())
	fmt.Printf("   Model:      %s\n", cfg.LLM.Model)
	fmt.Println("\nPress Ctrl+C to stop")

	return srv.Start(ctx)
}

// loadConfig loads the config file (or defaults) and applies flag overrides.
func (c *ServeCmd) loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded configuration", "path", configPath)
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.Model != "" {
		cfg.LLM.Model = c.Model
	}
	if c.APIKey != "" {
		cfg.LLM.APIKey = c.APIKey
	}
	if c.BaseURL != "" {
		cfg.LLM.BaseURL = c.BaseURL
	}
	if c.Storage != "" {
		cfg.Tasks = &config.TasksConfig{Backend: c.Storage, Database: c.StorageDB}
		cfg.SetDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	_ = config.LoadDotEnv()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("analyst"),
		kong.Description("10-K Finance Analyst - A2A agent for SEC filing analysis"),
		kong.UsageOnError(),
	)

	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	output := os.Stderr
	if cli.LogFile != "" {
		file, cleanup, err := logger.OpenLogFile(cli.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		output = file
	}
	logger.Init(level, output, cli.LogFormat)

	err = ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
