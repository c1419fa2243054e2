// Package aisvc streams course suggestions from the OpenAI chat completion API.
package aisvc

import (
	"context"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/suggestion"
)

const systemPrompt = "You are a helpful career advisor. Give a concise suggestion using the " +
	"following format: 'I suggest you...' Keep your response under 150 words."

type openAIService struct {
	client *openai.Client
}

var _ suggestion.Completer = (*openAIService)(nil)

func NewOpenAIService(conf *core.Config) *openAIService {
	return &openAIService{client: openai.NewClient(conf.OpenAIAPIKey)}
}

func (svc *openAIService) StreamSuggestion(ctx context.Context, prompt string) (suggestion.Stream, error) {
	stream, err := svc.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		Stream:      true,
		MaxTokens:   100,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening completion stream")
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (suggestion.Chunk, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		return suggestion.Chunk{}, err // io.EOF passes through untouched
	}
	if len(resp.Choices) == 0 {
		return suggestion.Chunk{}, nil
	}
	choice := resp.Choices[0]
	return suggestion.Chunk{
		Content:      choice.Delta.Content,
		FinishReason: string(choice.FinishReason),
	}, nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
