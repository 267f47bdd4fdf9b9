package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
	"github.com/agritechlabs/sahayak/internal/infra/llm"
)

// Generator is the failover generation capability the chat core consumes;
// satisfied by *llm.Selector. One call may attempt several providers; the
// returned descriptor identifies the one that produced the text.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (string, llm.Descriptor, error)
}

// SummaryMemory provides the per-session rolling conversation summary.
// Both methods are best-effort at the call site: memory failures never fail
// a chat request.
type SummaryMemory interface {
	Summary(ctx context.Context, sessionID string) (string, error)
	Append(ctx context.Context, sessionID, question, answer string) error
}

// GenerationParams carries the configured sampling limits passed to every
// generation call.
type GenerationParams struct {
	Temperature float64
	MaxTokens   int
}

// ChatService orchestrates one chat request: retrieve context, compose the
// role-aware prompt, generate with provider failover, synthesize the
// structured payload. It holds no per-request state.
type ChatService struct {
	retriever retrieval.Retriever
	generator Generator
	composer  Composer
	synth     Synthesizer
	memory    SummaryMemory // nil when session memory is disabled
	params    GenerationParams
	log       *zap.Logger
}

// NewChatService wires the chat core. memory may be nil.
func NewChatService(retriever retrieval.Retriever, generator Generator, composer Composer, synth Synthesizer, memory SummaryMemory, params GenerationParams, log *zap.Logger) *ChatService {
	return &ChatService{
		retriever: retriever,
		generator: generator,
		composer:  composer,
		synth:     synth,
		memory:    memory,
		params:    params,
		log:       log,
	}
}

// Chat answers one question. Retrieval failure is terminal; an answer
// without context would be ungrounded. Generation failure after exhausting
// all providers surfaces llm.ErrNoProviderAvailable. Extraction never fails.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (*ChatResponse, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", in.Role)
	}

	docs, err := s.retriever.Retrieve(ctx, in.Message)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}

	extra := in.ExtraContext
	if extra == "" && s.memory != nil && in.SessionID != "" {
		summary, memErr := s.memory.Summary(ctx, in.SessionID)
		if memErr != nil {
			s.log.Warn("session summary unavailable",
				zap.String("sessionId", in.SessionID), zap.Error(memErr))
		} else {
			extra = summary
		}
	}

	prompt := s.composer.Compose(in.Message, in.Role, contents, extra)
	text, provider, err := s.generator.Generate(ctx, llm.GenerateRequest{
		Prompt:      prompt,
		Temperature: s.params.Temperature,
		MaxTokens:   s.params.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	resp := s.synth.Synthesize(text, in.Role, in.SessionID, provider.Name, provider.Model)

	if s.memory != nil {
		if memErr := s.memory.Append(ctx, resp.SessionID, in.Message, text); memErr != nil {
			s.log.Warn("session summary append failed",
				zap.String("sessionId", resp.SessionID), zap.Error(memErr))
		}
	}

	s.log.Info("chat answered",
		zap.String("provider", provider.Name),
		zap.String("model", provider.Model),
		zap.String("role", string(in.Role)),
		zap.Int("documents", len(docs)))
	return resp, nil
}
