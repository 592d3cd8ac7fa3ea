package openai

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"
	"github.com/writedeck/writedeck-backend/internal/config"
	"github.com/writedeck/writedeck-backend/internal/providers"
)

// Provider implements providers.Generator backed by the OpenAI API
type Provider struct {
	config config.GeneratorConfig
	client *openai.Client
}

// NewProvider creates a new OpenAI provider
func NewProvider(cfg config.GeneratorConfig) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Provider{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

// Complete performs a non-streaming generation
func (p *Provider) Complete(ctx context.Context, req providers.GenerationRequest) (string, error) {
	openAIReq := p.convertRequest(req)
	openAIReq.Stream = false

	resp, err := p.client.CreateChatCompletion(ctx, openAIReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("generation returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// StreamComplete performs a streaming generation. Upstream failures surface as
// a terminal error fragment, never as a panic or an abandoned channel.
func (p *Provider) StreamComplete(ctx context.Context, req providers.GenerationRequest) (<-chan providers.Fragment, error) {
	fragments := make(chan providers.Fragment)

	go func() {
		defer close(fragments)

		openAIReq := p.convertRequest(req)
		openAIReq.Stream = true

		stream, err := p.client.CreateChatCompletionStream(ctx, openAIReq)
		if err != nil {
			fragments <- providers.Fragment{Error: err.Error()}
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				fragments <- providers.Fragment{FinishReason: "stop"}
				return
			}
			if err != nil {
				fragments <- providers.Fragment{Error: err.Error()}
				return
			}

			if len(response.Choices) > 0 {
				choice := response.Choices[0]

				if choice.Delta.Content != "" {
					fragments <- providers.Fragment{Delta: choice.Delta.Content}
				}

				if choice.FinishReason != "" {
					fragments <- providers.Fragment{FinishReason: string(choice.FinishReason)}
					return
				}
			}
		}
	}()

	return fragments, nil
}

// convertRequest converts an internal request to an OpenAI request
func (p *Provider) convertRequest(req providers.GenerationRequest) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	openAIReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}

	if req.Temperature != nil {
		openAIReq.Temperature = *req.Temperature
	} else {
		openAIReq.Temperature = p.config.Temperature
	}

	if req.MaxTokens != nil {
		openAIReq.MaxTokens = *req.MaxTokens
	} else if p.config.MaxTokens > 0 {
		openAIReq.MaxTokens = p.config.MaxTokens
	}

	return openAIReq
}
