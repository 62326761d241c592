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

// Package server exposes the finance analyst over the A2A protocol.
//
// Executor implements a2asrv.AgentExecutor and owns the lifecycle of one
// task from receipt through a terminal state:
//
//	submitted -> working -> completed | failed
//
// Messages for tasks already in a terminal state are ignored, and
// cancellation requests are accepted without changing task state.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"github.com/edgarlab/analyst/pkg/analyst"
)

// artifactName is the name of the result artifact attached to completed tasks.
const artifactName = "FinancialAnalysis"

// workingStatusText is the human-readable status emitted when analysis starts.
const workingStatusText = "Analyzing financial document..."

// Executor bridges inbound A2A messages to the Analyzer. It invokes the
// Analyzer exactly once per task; the Analyzer itself never fails, so the
// failed state is only reached for controller-level errors such as a message
// without text content.
type Executor struct {
	analyst *analyst.Analyzer
}

// NewExecutor creates an executor around the given analyzer.
func NewExecutor(a *analyst.Analyzer) *Executor {
	return &Executor{analyst: a}
}

// queueWriter is the slice of eventqueue.Queue the executor needs.
type queueWriter interface {
	Write(ctx context.Context, event a2a.Event) error
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.execute(ctx, reqCtx, queue)
}

func (e *Executor) execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue queueWriter) error {
	msg := reqCtx.Message
	if msg == nil {
		return fmt.Errorf("message not provided")
	}

	if task := reqCtx.StoredTask; task != nil && task.Status.State.Terminal() {
		slog.Debug("Ignoring message for terminal task",
			"taskID", reqCtx.TaskID, "state", task.Status.State)
		return nil
	}

	if reqCtx.StoredTask == nil {
		event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)
		if err := queue.Write(ctx, event); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	working := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: workingStatusText}))
	if err := queue.Write(ctx, working); err != nil {
		return fmt.Errorf("failed to write working event: %w", err)
	}

	text, err := messageText(msg)
	if err != nil {
		return writeFailed(ctx, queue, reqCtx, err)
	}

	result := e.analyst.Analyze(ctx, text)

	artifact := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: result})
	artifact.Artifact.Name = artifactName
	artifact.LastChunk = true
	if err := queue.Write(ctx, artifact); err != nil {
		return writeFailed(ctx, queue, reqCtx, fmt.Errorf("failed to attach result artifact: %w", err))
	}

	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	if err := queue.Write(ctx, completed); err != nil {
		return fmt.Errorf("failed to write completed event: %w", err)
	}

	slog.Debug("Task completed", "taskID", reqCtx.TaskID, "contextID", reqCtx.ContextID)
	return nil
}

// Cancel implements a2asrv.AgentExecutor. Cancellation requests are accepted
// but leave the task state untouched.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	slog.Debug("Cancellation requested, task state unchanged", "taskID", reqCtx.TaskID)
	return nil
}

// writeFailed moves the task to the failed terminal state, surfacing the
// error description as the status message.
func writeFailed(ctx context.Context, queue queueWriter, reqCtx *a2asrv.RequestContext, cause error) error {
	slog.Error("Analysis failed", "taskID", reqCtx.TaskID, "error", cause)

	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx,
		a2a.TextPart{Text: fmt.Sprintf("Analysis error: %v", cause)})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
	event.Final = true

	if err := queue.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write failed event: %w (original: %w)", err, cause)
	}
	return nil
}

// messageText extracts the text content of an inbound message.
func messageText(msg *a2a.Message) (string, error) {
	var texts []string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok && tp.Text != "" {
			texts = append(texts, tp.Text)
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("message has no text content")
	}
	return strings.Join(texts, "\n"), nil
}

var _ a2asrv.AgentExecutor = (*Executor)(nil)
