// Package llm wraps the OpenAI API behind a small interface so the summary
// service can be tested with a fake.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"theracare_server/internal/config"
	"theracare_server/pkg/errorx"
)

// Client is the model surface the summary pipeline needs.
type Client interface {
	// Complete sends one system+user prompt pair and returns the raw
	// completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Transcribe converts an audio file on local disk to text.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// OpenAIClient implements Client on the OpenAI API.
type OpenAIClient struct {
	client             *openai.Client
	summaryModel       string
	transcriptionModel string
}

// NewOpenAIClient builds a client from the configuration. Model names fall
// back to gpt-4o-mini and whisper-1 when unset.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	summaryModel := cfg.SummaryModel
	if summaryModel == "" {
		summaryModel = openai.GPT4oMini
	}
	transcriptionModel := cfg.TranscriptionModel
	if transcriptionModel == "" {
		transcriptionModel = openai.Whisper1
	}
	return &OpenAIClient{
		client:             openai.NewClient(cfg.ApiKey),
		summaryModel:       summaryModel,
		transcriptionModel: transcriptionModel,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errorx.New(errorx.CodeServerBusy, "completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: audioPath,
	})
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "transcription request failed")
	}
	return resp.Text, nil
}
