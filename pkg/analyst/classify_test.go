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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TaskType
	}{
		{"task 1 keyword", "Please perform Task 1 risk classification on this filing", TaskRiskClassification},
		{"risk classification phrase", "I need a risk classification of the attached text", TaskRiskClassification},
		{"task 2 keyword", "Task 2: summarize the company", TaskBusinessSummary},
		{"business summary phrase", "Give me the business summary for this 10-K", TaskBusinessSummary},
		{"task 3 keyword", "Run task 3 on these sections", TaskConsistencyCheck},
		{"consistency keyword", "Check the consistency between the listed risks and the MD&A", TaskConsistencyCheck},
		{"risk factor content keyword", "Here are the risk factor disclosures from the filing", TaskRiskClassification},
		{"section 1a content keyword", "The following text is from Section 1A", TaskRiskClassification},
		{"business plus section 1", "Describe the business covered in section 1", TaskBusinessSummary},
		{"business without section 1", "Tell me about the business", TaskRiskClassification},
		{"section 1 without business", "What does section 1 say", TaskRiskClassification},
		{"no keywords defaults to risk", "Hello there", TaskRiskClassification},
		{"empty text defaults to risk", "", TaskRiskClassification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, TaskBusinessSummary, Classify("TASK 2 BUSINESS SUMMARY"))
	assert.Equal(t, TaskConsistencyCheck, Classify("CoNsIsTeNcY check please"))
	assert.Equal(t, TaskRiskClassification, Classify("SECTION 1A Risk Factors"))
}

func TestClassify_PriorityOrder(t *testing.T) {
	t.Run("task 1 beats later rules", func(t *testing.T) {
		text := "Task 1: also mentions business summary and consistency"
		assert.Equal(t, TaskRiskClassification, Classify(text))
	})

	t.Run("business summary beats consistency", func(t *testing.T) {
		text := "Provide a business summary and note any consistency issues"
		assert.Equal(t, TaskBusinessSummary, Classify(text))
	})

	t.Run("section 1a beats business plus section 1", func(t *testing.T) {
		// "section 1a" contains "section 1", so with "business" present both
		// rule 4 and rule 5 match; rule 4 must win.
		text := "The business risks in section 1a"
		assert.Equal(t, TaskRiskClassification, Classify(text))
	})
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Check the consistency of these sections"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
