package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/friendlens/friendlens/internal/analysis"
	"github.com/friendlens/friendlens/internal/models"
	"go.uber.org/zap"
)

// AnswerSource identifies which path produced an answer.
type AnswerSource string

const (
	// SourceModel marks answers produced by the language model.
	SourceModel AnswerSource = "model"
	// SourceFallback marks answers produced by the deterministic fallback.
	SourceFallback AnswerSource = "fallback"
)

// ErrEmptyQuery is returned for blank or whitespace-only questions. The
// provider is never called in that case.
var ErrEmptyQuery = errors.New("query must not be empty")

// DefaultQueryTimeout bounds the single model attempt. There are no
// retries: a failed attempt goes straight to the fallback.
const DefaultQueryTimeout = 10 * time.Second

// fallbackUnknownAnswer is the fixed cannot-process message.
const fallbackUnknownAnswer = `I couldn't process that question. Try asking about best friends, for example: "Who are the best friends?"`

// Answer is the result of a routed question. Both sources are success
// outcomes for the caller; a provider failure is never surfaced as an
// error, only as the fallback's more limited answer.
type Answer struct {
	Text   string
	Source AnswerSource
	Data   map[string]any
}

// QueryService routes free-text questions to the language model provider
// and falls back to deterministic analysis when the provider cannot answer.
type QueryService struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewQueryService creates a query service. provider may be nil, in which
// case every question is answered by the fallback.
func NewQueryService(provider Provider, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		provider: provider,
		timeout:  DefaultQueryTimeout,
		logger:   logger,
	}
}

// SetTimeout overrides the per-attempt model timeout.
func (s *QueryService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Answer answers a free-text question about the given data snapshot.
//
// The only error it returns is ErrEmptyQuery. Any provider failure
// (network, quota, rate limit, empty response, timeout) is mapped to the
// fallback branch at a single explicit decision point.
func (s *QueryService) Answer(ctx context.Context, events []models.Event, activities []models.Activity, people []models.Person, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuery
	}

	summary := analysis.Summarize(events)

	text, err := s.askModel(ctx, events, activities, people, summary, question)
	if err != nil {
		s.logger.Warn("model_call_failed_using_fallback", zap.Error(err))
		return s.fallback(events, question), nil
	}

	return &Answer{
		Text:   text,
		Source: SourceModel,
		Data:   map[string]any{},
	}, nil
}

// askModel runs the single model attempt under the service timeout.
func (s *QueryService) askModel(ctx context.Context, events []models.Event, activities []models.Activity, people []models.Person, summary analysis.Summary, question string) (string, error) {
	if s.provider == nil {
		return "", errors.New("no language model provider configured")
	}

	prompt, err := BuildQueryPrompt(events, activities, people, summary, question)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

// fallback answers without the model. It never fails: questions about best
// friends are answered from the aggregator's ranking, anything else gets
// the fixed cannot-process message.
func (s *QueryService) fallback(events []models.Event, question string) *Answer {
	q := strings.ToLower(question)
	if strings.Contains(q, "best friend") || strings.Contains(q, "together") {
		pairs := analysis.Aggregate(events)
		if len(pairs) > 0 {
			top := pairs[0]
			return &Answer{
				Text: fmt.Sprintf("%s and %s are the best friends - they attended %d events together.",
					top.Person1, top.Person2, top.EventsTogether),
				Source: SourceFallback,
				Data:   map[string]any{"top_pair": top},
			}
		}
		return &Answer{
			Text:   "No friend pairs found in the event data.",
			Source: SourceFallback,
			Data:   map[string]any{},
		}
	}

	return &Answer{
		Text:   fallbackUnknownAnswer,
		Source: SourceFallback,
		Data:   map[string]any{},
	}
}
