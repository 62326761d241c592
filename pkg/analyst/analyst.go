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

// Package analyst implements the 10-K analysis core: it classifies a
// free-text prompt into one of three task types, delegates content analysis
// to a generation service and normalizes the response into the strict
// per-task JSON schema.
package analyst

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/edgarlab/analyst/pkg/llm"
)

// Analyzer turns analysis prompts into schema-conformant JSON results.
//
// Analyze never fails: generation or parse errors are absorbed into the
// per-task fallback result, so callers always receive valid JSON for exactly
// one of the three schemas.
type Analyzer struct {
	gen llm.Generator
}

// New creates an Analyzer backed by the given generation service.
func New(gen llm.Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Analyze classifies the prompt, issues one generation request with the
// matching instructions and returns the normalized result as 2-space
// indented JSON. The failure detail is logged but never surfaced; the
// fallback uses the already-classified task type.
func (a *Analyzer) Analyze(ctx context.Context, text string) string {
	task := Classify(text)

	output, err := a.gen.Generate(ctx, Instructions(task), text)
	if err != nil {
		slog.Warn("Generation call failed, returning fallback", "task", task, "error", err)
		return encode(Fallback(task))
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		slog.Warn("Model output is not a JSON object, returning fallback", "task", task, "error", err)
		return encode(Fallback(task))
	}

	return encode(Normalize(raw, task))
}

func encode(r Result) string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		// Result marshals three fixed string-valued schemas; reaching this
		// would be a programming error.
		slog.Error("Failed to encode result", "task", r.Task, "error", err)
		return `{"task":"` + string(r.Task) + `"}`
	}
	return string(data)
}
