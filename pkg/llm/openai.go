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

// Package llm provides the generation-service client used by the analyst.
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Generator issues a single structured-output completion request.
// Implementations constrain the model to return one JSON object; the call is
// not retried and not streamed.
type Generator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// Options configure the OpenAI-compatible client.
type Options struct {
	// APIKey authenticates against the completion endpoint.
	APIKey string

	// BaseURL is the API base URL. Empty selects the go-openai default.
	BaseURL string

	// Model is the model identifier sent with each request.
	Model string

	// Temperature is the sampling temperature. Low values favor consistent
	// categorical output.
	Temperature float32

	// MaxTokens bounds the completion length.
	MaxTokens int
}

// OpenAI calls an OpenAI-compatible chat-completion endpoint. The analyst
// uses it against OpenRouter by default, but any compatible endpoint works
// via Options.BaseURL.
type OpenAI struct {
	client *openai.Client
	opts   Options
}

// NewOpenAI creates a client for the configured endpoint.
func NewOpenAI(opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), opts: opts}
}

// Generate sends the instructions as the system message and the input as the
// user message, requesting a single JSON object back.
func (c *OpenAI) Generate(ctx context.Context, instructions, input string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Generator = (*OpenAI)(nil)
