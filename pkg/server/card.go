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

package server

import "github.com/a2aproject/a2a-go/a2a"

// NewAgentCard builds the A2A agent card exposed for discovery at the
// well-known path. The card declares a single skill covering the three
// evaluation tasks.
func NewAgentCard(url string) *a2a.AgentCard {
	skill := a2a.AgentSkill{
		ID:          "finance-analyst",
		Name:        "10-K Financial Analyst",
		Description: "Analyzes SEC 10-K filings for risk factors, business summary, and consistency checks",
		Tags:        []string{"finance", "10-K", "risk-analysis", "business-analysis"},
		Examples: []string{
			"Analyze this 10-K filing for risk factors",
			"Extract business summary from this filing",
		},
	}

	return &a2a.AgentCard{
		Name: "finance-analyst",
		Description: "Agent that analyzes SEC 10-K filings. Responds to three evaluation tasks: " +
			"(1) Risk Classification - categorizes risk factors, " +
			"(2) Business Summary - extracts key business information, " +
			"(3) Consistency Check - identifies which risks are discussed in MD&A.",
		URL:                url,
		Version:            "1.0.0",
		ProtocolVersion:    "1.0",
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		Skills:             []a2a.AgentSkill{skill},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}
