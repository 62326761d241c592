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

// Package task provides a SQLite-backed a2asrv.TaskStore, giving the agent
// a task registry that survives restarts. The default in-memory store from
// a2a-go is used when persistence is not configured.
package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	_ "github.com/mattn/go-sqlite3"
)

const createTasksTableSQL = `
CREATE TABLE IF NOT EXISTS analysis_tasks (
    id TEXT PRIMARY KEY,
    context_id TEXT NOT NULL,
    status_json TEXT NOT NULL,
    history_json TEXT,
    artifacts_json TEXT,
    metadata_json TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

const createTasksContextIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_analysis_tasks_context_id ON analysis_tasks(context_id)`

// SQLiteStore implements a2asrv.TaskStore on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at path and
// initializes the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTasksTableSQL); err != nil {
		return fmt.Errorf("failed to create analysis_tasks table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createTasksContextIndexSQL); err != nil {
		return fmt.Errorf("failed to create context_id index: %w", err)
	}
	return nil
}

// Save stores a task (implements a2asrv.TaskStore). An upsert keeps
// created_at intact on update.
func (s *SQLiteStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	statusJSON, err := json.Marshal(task.Status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	historyJSON, err := marshalOr(task.History, "[]")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	artifactsJSON, err := marshalOr(task.Artifacts, "[]")
	if err != nil {
		return fmt.Errorf("failed to marshal artifacts: %w", err)
	}
	metadataJSON, err := marshalOr(task.Metadata, "{}")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO analysis_tasks (id, context_id, status_json, history_json, artifacts_json, metadata_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    context_id = excluded.context_id,
    status_json = excluded.status_json,
    history_json = excluded.history_json,
    artifacts_json = excluded.artifacts_json,
    metadata_json = excluded.metadata_json,
    updated_at = excluded.updated_at
`, string(task.ID), task.ContextID, string(statusJSON),
		historyJSON, artifactsJSON, metadataJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID (implements a2asrv.TaskStore).
func (s *SQLiteStore) Get(ctx context.Context, taskID a2a.TaskID) (*a2a.Task, error) {
	var (
		id, contextID, statusJSON            string
		historyJSON, artifactsJSON, metaJSON sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, context_id, status_json, history_json, artifacts_json, metadata_json
FROM analysis_tasks
WHERE id = ?
`, string(taskID)).Scan(&id, &contextID, &statusJSON, &historyJSON, &artifactsJSON, &metaJSON)
	if err == sql.ErrNoRows {
		return nil, a2a.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	task := &a2a.Task{
		ID:        a2a.TaskID(id),
		ContextID: contextID,
		History:   make([]*a2a.Message, 0),
		Artifacts: make([]*a2a.Artifact, 0),
	}

	if err := json.Unmarshal([]byte(statusJSON), &task.Status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	if historyJSON.Valid && historyJSON.String != "" && historyJSON.String != "[]" {
		if err := json.Unmarshal([]byte(historyJSON.String), &task.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}
	}
	if artifactsJSON.Valid && artifactsJSON.String != "" && artifactsJSON.String != "[]" {
		if err := json.Unmarshal([]byte(artifactsJSON.String), &task.Artifacts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifacts: %w", err)
		}
	}
	if metaJSON.Valid && metaJSON.String != "" && metaJSON.String != "{}" {
		if err := json.Unmarshal([]byte(metaJSON.String), &task.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return task, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// marshalOr marshals v, returning fallback for empty values so the stored
// columns always hold valid JSON.
func marshalOr(v any, fallback string) (string, error) {
	switch val := v.(type) {
	case []*a2a.Message:
		if len(val) == 0 {
			return fallback, nil
		}
	case []*a2a.Artifact:
		if len(val) == 0 {
			return fallback, nil
		}
	case map[string]any:
		if len(val) == 0 {
			return fallback, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Compile-time interface compliance check
var _ a2asrv.TaskStore = (*SQLiteStore)(nil)
