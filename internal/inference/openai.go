package inference

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/tayuki/school-calendar-app/internal/logger"
)

// completer is the slice of the OpenAI client the engine uses.
// *openai.Client satisfies it; tests inject stubs.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIEngine implements Engine on top of the OpenAI chat completion API.
type OpenAIEngine struct {
	client      completer
	model       string
	temperature float32
	log         zerolog.Logger
}

// NewOpenAIEngine creates an engine configured from the environment.
// OPENAI_API_KEY is required; OPENAI_MODEL overrides the default model.
func NewOpenAIEngine() (*OpenAIEngine, error) {
	const op = "NewOpenAIEngine"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: OPENAI_API_KEY environment variable is required", op)
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return NewOpenAIEngineWithClient(openai.NewClient(apiKey), model), nil
}

// NewOpenAIEngineWithClient creates an engine with an explicit client (for testing).
func NewOpenAIEngineWithClient(client completer, model string) *OpenAIEngine {
	return &OpenAIEngine{
		client:      client,
		model:       model,
		temperature: 0.1,
		log:         logger.WithComponent("inference"),
	}
}

// Infer extracts event candidates from notice text. Empty input short-circuits
// to an empty OK outcome without calling the remote service.
func (e *OpenAIEngine) Infer(ctx context.Context, text string, referenceDate time.Time) Outcome {
	if strings.TrimSpace(text) == "" {
		e.log.Warn().Msg("no text to analyze, skipping inference")
		return Outcome{Status: StatusOK}
	}

	prompt := buildPrompt(text, referenceDate)

	e.log.Debug().
		Int("prompt_length", len(prompt)).
		Str("model", e.model).
		Msg("sending extraction request to the model")

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 2000,
	})
	if err != nil {
		e.log.Error().Err(err).Msg("inference request failed")
		return Outcome{Status: StatusServiceError, Diagnostic: err.Error()}
	}
	if len(resp.Choices) == 0 {
		e.log.Error().Msg("model returned no choices")
		return Outcome{Status: StatusServiceError, Diagnostic: "no response choices from model"}
	}

	content := resp.Choices[0].Message.Content
	e.log.Debug().Str("response", content).Msg("received model response")

	events, err := parseEvents(content)
	if err != nil {
		// Deliberately no retry: one attempt per call keeps cost and latency
		// bounded, and an unusable response is recoverable upstream.
		e.log.Error().Err(err).Msg("model output could not be parsed")
		return Outcome{Status: StatusParseFailure, Diagnostic: err.Error()}
	}

	e.log.Info().Int("events", len(events)).Msg("event extraction completed")
	return Outcome{Status: StatusOK, Events: events}
}
