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

const riskClassificationInstructions = `You are a financial risk analyst. Analyze the provided 10-K Risk Factors section.

Classify the risks into these predefined categories (only use these exact names):
- Market Risk
- Operational Risk
- Financial Risk
- Legal/Regulatory Risk
- Technology Risk
- Cybersecurity Risk
- Competition Risk
- Supply Chain Risk
- Human Capital/Talent Risk
- Environmental/Climate Risk
- COVID-19/Pandemic Risk
- Geopolitical Risk

Return a JSON object with:
{
  "task": "risk_classification",
  "risk_classification": ["Category 1", "Category 2", ...]
}

Only include categories that are clearly mentioned in the text. Be precise.`

const businessSummaryInstructions = `You are a business analyst. Analyze the provided 10-K Business section.

Extract key information about:
1. Industry/sector the company operates in
2. Main products or services offered
3. Geographic markets served

Return a JSON object with:
{
  "task": "business_summary",
  "business_summary": {
    "industry": "Detailed industry description",
    "products": "Main products and services",
    "geography": "Geographic markets"
  }
}

Be specific and detailed in your responses.`

const consistencyCheckInstructions = `You are a financial document analyst. You are given:
1. A list of risks from Section 1A
2. The MD&A Section 7 text

Identify which of the listed risks are actually discussed in Section 7.

Return a JSON object with:
{
  "task": "consistency_check",
  "consistency_check": ["risk1", "risk2", ...]
}

Only include risks that are clearly discussed in Section 7.`

// Instructions returns the system instructions for a task type. The
// templates carry the task description, the required output schema and, for
// risk classification, the closed category list.
func Instructions(task TaskType) string {
	switch task {
	case TaskBusinessSummary:
		return businessSummaryInstructions
	case TaskConsistencyCheck:
		return consistencyCheckInstructions
	default:
		return riskClassificationInstructions
	}
}
