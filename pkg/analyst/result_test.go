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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RiskClassification(t *testing.T) {
	t.Run("canonical field", func(t *testing.T) {
		raw := map[string]any{"risk_classification": []any{"Market Risk", "Cybersecurity Risk"}}
		result := Normalize(raw, TaskRiskClassification)
		assert.Equal(t, []string{"Market Risk", "Cybersecurity Risk"}, result.Risks)
	})

	t.Run("categories alias", func(t *testing.T) {
		raw := map[string]any{"categories": []any{"Market Risk"}}
		result := Normalize(raw, TaskRiskClassification)
		assert.Equal(t, []string{"Market Risk"}, result.Risks)
	})

	t.Run("risk_categories alias", func(t *testing.T) {
		raw := map[string]any{"risk_categories": []any{"Operational Risk"}}
		result := Normalize(raw, TaskRiskClassification)
		assert.Equal(t, []string{"Operational Risk"}, result.Risks)
	})

	t.Run("canonical field wins over aliases", func(t *testing.T) {
		raw := map[string]any{
			"risk_classification": []any{"Market Risk"},
			"categories":          []any{"Financial Risk"},
		}
		result := Normalize(raw, TaskRiskClassification)
		assert.Equal(t, []string{"Market Risk"}, result.Risks)
	})

	t.Run("empty canonical field falls through", func(t *testing.T) {
		raw := map[string]any{
			"risk_classification": []any{},
			"categories":          []any{"Financial Risk"},
		}
		result := Normalize(raw, TaskRiskClassification)
		assert.Equal(t, []string{"Financial Risk"}, result.Risks)
	})

	t.Run("no recognized field yields empty sequence", func(t *testing.T) {
		result := Normalize(map[string]any{"something": "else"}, TaskRiskClassification)
		assert.Equal(t, []string{}, result.Risks)
	})
}

func TestNormalize_BusinessSummary(t *testing.T) {
	t.Run("nested object", func(t *testing.T) {
		raw := map[string]any{"business_summary": map[string]any{
			"industry":  "Tech",
			"products":  "Phones",
			"geography": "Global",
		}}
		result := Normalize(raw, TaskBusinessSummary)
		assert.Equal(t, BusinessSummary{Industry: "Tech", Products: "Phones", Geography: "Global"}, result.Summary)
	})

	t.Run("top-level object", func(t *testing.T) {
		raw := map[string]any{"industry": "Tech"}
		result := Normalize(raw, TaskBusinessSummary)
		assert.Equal(t, BusinessSummary{Industry: "Tech", Products: "N/A", Geography: "N/A"}, result.Summary)
	})

	t.Run("all fields missing default to N/A", func(t *testing.T) {
		result := Normalize(map[string]any{}, TaskBusinessSummary)
		assert.Equal(t, BusinessSummary{Industry: "N/A", Products: "N/A", Geography: "N/A"}, result.Summary)
	})

	t.Run("empty nested object falls back to top level", func(t *testing.T) {
		raw := map[string]any{"business_summary": map[string]any{}, "industry": "Retail"}
		result := Normalize(raw, TaskBusinessSummary)
		assert.Equal(t, "Retail", result.Summary.Industry)
	})
}

func TestNormalize_ConsistencyCheck(t *testing.T) {
	t.Run("canonical field", func(t *testing.T) {
		raw := map[string]any{"consistency_check": []any{"supply chain disruption"}}
		result := Normalize(raw, TaskConsistencyCheck)
		assert.Equal(t, []string{"supply chain disruption"}, result.Discussed)
	})

	t.Run("discussed_risks alias", func(t *testing.T) {
		raw := map[string]any{"discussed_risks": []any{"currency fluctuation"}}
		result := Normalize(raw, TaskConsistencyCheck)
		assert.Equal(t, []string{"currency fluctuation"}, result.Discussed)
	})

	t.Run("consistent_risks alias", func(t *testing.T) {
		raw := map[string]any{"consistent_risks": []any{"litigation"}}
		result := Normalize(raw, TaskConsistencyCheck)
		assert.Equal(t, []string{"litigation"}, result.Discussed)
	})

	t.Run("no recognized field yields empty sequence", func(t *testing.T) {
		result := Normalize(map[string]any{}, TaskConsistencyCheck)
		assert.Equal(t, []string{}, result.Discussed)
	})
}

func TestResult_MarshalJSON(t *testing.T) {
	t.Run("exactly task plus one payload field", func(t *testing.T) {
		tests := []struct {
			result  Result
			payload string
		}{
			{Result{Task: TaskRiskClassification, Risks: []string{"Market Risk"}}, "risk_classification"},
			{Result{Task: TaskBusinessSummary, Summary: BusinessSummary{"a", "b", "c"}}, "business_summary"},
			{Result{Task: TaskConsistencyCheck, Discussed: []string{"x"}}, "consistency_check"},
		}
		for _, tt := range tests {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)

			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &fields))
			assert.Len(t, fields, 2)
			assert.Contains(t, fields, "task")
			assert.Contains(t, fields, tt.payload)
		}
	})

	t.Run("empty sequences marshal as arrays", func(t *testing.T) {
		data, err := json.Marshal(Result{Task: TaskConsistencyCheck})
		require.NoError(t, err)
		assert.JSONEq(t, `{"task":"consistency_check","consistency_check":[]}`, string(data))

		data, err = json.Marshal(Result{Task: TaskRiskClassification})
		require.NoError(t, err)
		assert.JSONEq(t, `{"task":"risk_classification","risk_classification":[]}`, string(data))
	})
}

func TestFallback(t *testing.T) {
	t.Run("risk classification", func(t *testing.T) {
		data, err := json.Marshal(Fallback(TaskRiskClassification))
		require.NoError(t, err)
		assert.JSONEq(t, `{"task":"risk_classification","risk_classification":["Market Risk","Operational Risk"]}`, string(data))
	})

	t.Run("business summary", func(t *testing.T) {
		data, err := json.Marshal(Fallback(TaskBusinessSummary))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"task": "business_summary",
			"business_summary": {
				"industry": "Unable to determine",
				"products": "Unable to determine",
				"geography": "Unable to determine"
			}
		}`, string(data))
	})

	t.Run("consistency check", func(t *testing.T) {
		data, err := json.Marshal(Fallback(TaskConsistencyCheck))
		require.NoError(t, err)
		assert.JSONEq(t, `{"task":"consistency_check","consistency_check":[]}`, string(data))
	})
}
