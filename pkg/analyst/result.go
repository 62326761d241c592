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

package analyst

import "encoding/json"

// TaskType identifies one of the three supported analysis tasks.
// It is derived once from the input text and immutable afterwards.
type TaskType string

const (
	TaskRiskClassification TaskType = "risk_classification"
	TaskBusinessSummary    TaskType = "business_summary"
	TaskConsistencyCheck   TaskType = "consistency_check"
)

// BusinessSummary holds the three fields extracted from a 10-K Business section.
type BusinessSummary struct {
	Industry  string `json:"industry"`
	Products  string `json:"products"`
	Geography string `json:"geography"`
}

// Result is a normalized analysis result. Only the payload matching Task is
// ever populated; the other fields stay zero.
//
// Result marshals to an object containing exactly "task" plus the single
// payload field for its task type. Empty sequences marshal as [], never null.
type Result struct {
	Task      TaskType
	Risks     []string
	Summary   BusinessSummary
	Discussed []string
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Task {
	case TaskBusinessSummary:
		return json.Marshal(struct {
			Task    TaskType        `json:"task"`
			Summary BusinessSummary `json:"business_summary"`
		}{r.Task, r.Summary})

	case TaskConsistencyCheck:
		return json.Marshal(struct {
			Task      TaskType `json:"task"`
			Discussed []string `json:"consistency_check"`
		}{r.Task, emptyIfNil(r.Discussed)})

	default:
		return json.Marshal(struct {
			Task  TaskType `json:"task"`
			Risks []string `json:"risk_classification"`
		}{r.Task, emptyIfNil(r.Risks)})
	}
}

// Normalize reconciles the generation service's untrusted JSON object into
// the strict per-task schema. The model may place the payload under any of
// several plausible field names; the first non-empty candidate wins.
func Normalize(raw map[string]any, task TaskType) Result {
	switch task {
	case TaskBusinessSummary:
		summary := raw
		if nested, ok := raw["business_summary"].(map[string]any); ok && len(nested) > 0 {
			summary = nested
		}
		return Result{Task: task, Summary: BusinessSummary{
			Industry:  stringField(summary, "industry"),
			Products:  stringField(summary, "products"),
			Geography: stringField(summary, "geography"),
		}}

	case TaskConsistencyCheck:
		return Result{
			Task:      task,
			Discussed: firstStringList(raw, "consistency_check", "discussed_risks", "consistent_risks"),
		}

	default:
		return Result{
			Task:  task,
			Risks: firstStringList(raw, "risk_classification", "categories", "risk_categories"),
		}
	}
}

// Fallback returns the statically defined, schema-valid result substituted
// when the generation call or JSON parse fails. Selection uses the task type
// classified before the failed attempt.
func Fallback(task TaskType) Result {
	switch task {
	case TaskBusinessSummary:
		return Result{Task: task, Summary: BusinessSummary{
			Industry:  "Unable to determine",
			Products:  "Unable to determine",
			Geography: "Unable to determine",
		}}
	case TaskConsistencyCheck:
		return Result{Task: task, Discussed: []string{}}
	default:
		return Result{Task: task, Risks: []string{"Market Risk", "Operational Risk"}}
	}
}

// stringField reads a string value from raw, defaulting to "N/A" when the
// key is missing or not a string.
func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return "N/A"
}

// firstStringList returns the string elements of the first key holding a
// non-empty list, or an empty slice when none of the keys does.
func firstStringList(raw map[string]any, keys ...string) []string {
	for _, key := range keys {
		items, ok := raw[key].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return []string{}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
