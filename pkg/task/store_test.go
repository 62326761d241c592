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

package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := &a2a.Task{
		ID:        a2a.TaskID("task-1"),
		ContextID: "ctx-1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateSubmitted},
		Metadata:  map[string]any{"filing": "AAPL 10-K"},
	}
	require.NoError(t, store.Save(ctx, saved))

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "ctx-1", got.ContextID)
	assert.Equal(t, a2a.TaskStateSubmitted, got.Status.State)
	assert.Equal(t, "AAPL 10-K", got.Metadata["filing"])
	assert.Empty(t, got.History)
	assert.Empty(t, got.Artifacts)
}

func TestSQLiteStore_SaveUpdatesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &a2a.Task{
		ID:        a2a.TaskID("task-1"),
		ContextID: "ctx-1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateSubmitted},
	}
	require.NoError(t, store.Save(ctx, task))

	task.Status.State = a2a.TaskStateCompleted
	require.NoError(t, store.Save(ctx, task))

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCompleted, got.Status.State)

	var count int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM analysis_tasks WHERE id = ?", string(task.ID)).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), a2a.TaskID("missing"))
	assert.ErrorIs(t, err, a2a.ErrTaskNotFound)
}

func TestSQLiteStore_SaveNil(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), nil))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &a2a.Task{
		ID:        a2a.TaskID("task-1"),
		ContextID: "ctx-1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateWorking},
	}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, a2a.TaskID("task-1"))
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateWorking, got.Status.State)
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	assert.FileExists(t, path)
}
