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

import "strings"

// classificationRule pairs a predicate over the lowercased prompt with the
// task it selects.
type classificationRule struct {
	matches func(string) bool
	task    TaskType
}

// classificationRules is a priority cascade, not a set of independent
// conditions: rules are evaluated in order and the first match wins.
// Explicit task references come first, content keywords after.
var classificationRules = []classificationRule{
	{anyOf("task 1", "risk classification"), TaskRiskClassification},
	{anyOf("task 2", "business summary"), TaskBusinessSummary},
	{anyOf("task 3", "consistency"), TaskConsistencyCheck},
	{anyOf("risk factor", "section 1a"), TaskRiskClassification},
	{allOf("business", "section 1"), TaskBusinessSummary},
}

// Classify determines which analysis task a prompt is requesting using
// case-insensitive substring matching. Prompts matching no rule default to
// risk classification.
func Classify(text string) TaskType {
	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		if rule.matches(lower) {
			return rule.task
		}
	}
	return TaskRiskClassification
}

func anyOf(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}
