package mock

import (
	"context"

	"github.com/bolt-foundry/gambit/internal/provider"
)

// Provider is a test double implementing provider.Provider.
type Provider struct {
	NameValue    string
	ChatFn       func(ctx context.Context, req provider.ChatRequest) (provider.ChatResponse, error)
	StreamChunks []provider.StreamChunk
	StreamErr    error
}

func (p *Provider) Name() string {
	if p.NameValue != "" {
		return p.NameValue
	}
	return "mock"
}

func (p *Provider) Chat(ctx context.Context, req provider.ChatRequest) (provider.ChatResponse, error) {
	if p.ChatFn != nil {
		return p.ChatFn(ctx, req)
	}
	return provider.ChatResponse{
		Message: provider.ChatMessage{
			Role:    provider.RoleAssistant,
			Content: "mock",
		},
		ProviderName: p.Name(),
		Model:        req.Model,
	}, nil
}

func (p *Provider) Stream(ctx context.Context, req provider.ChatRequest) (<-chan provider.StreamChunk, <-chan error) {
	ch := make(chan provider.StreamChunk, len(p.StreamChunks))
	errCh := make(chan error, 1)
	go func() {
		defer close(ch)
		defer close(errCh)
		for _, c := range p.StreamChunks {
			ch <- c
		}
		if p.StreamErr != nil {
			errCh <- p.StreamErr
		}
	}()
	return ch, errCh
}
