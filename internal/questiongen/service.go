// Package questiongen builds exam question prompts, sends them to an LLM
// and turns the reply into a question envelope.
package questiongen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/synapt/synapt/internal/jsonextract"
	"github.com/synapt/synapt/internal/llm"
	"github.com/synapt/synapt/internal/logging"
)

// Metadata defaults used when the request leaves a field empty.
const (
	defaultQuestionType = "mcq"
	defaultSection      = "technical_aptitude"
)

// Service generates one question per call. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	provider llm.Provider
	config   Config

	now   func() time.Time
	newID func() string
}

// New creates a Service that calls provider with the given config.
func New(provider llm.Provider, cfg Config) *Service {
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = jsonextract.DefaultStrategies()
	}
	return &Service{
		provider: provider,
		config:   cfg,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// ModelID returns the model the underlying provider is configured for.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Generate builds the prompt for req, makes a single LLM call and returns
// the recovered question with metadata merged in. Failures are returned as
// *TransportError, *UpstreamShapeError, *ExtractionError or
// *UnexpectedError. Nothing is retried.
func (s *Service) Generate(ctx context.Context, req Request) (env *Envelope, err error) {
	defer func() {
		if r := recover(); r != nil {
			env = nil
			err = &UnexpectedError{Err: fmt.Errorf("panic during generation: %v", r)}
		}
	}()

	spec := BuildPrompt(req)
	log := logging.WithContext(ctx).WithFields(logrus.Fields{
		"section": spec.Section,
		"topic":   req.Topic,
	})

	ctx = llm.WithCallInfo(ctx, llm.CallInfo{Purpose: s.config.Purpose, Section: string(spec.Section)})

	llmReq := llm.UserPrompt(spec.Prompt)
	llmReq.MaxTokens = s.config.MaxTokens
	llmReq.Temperature = s.config.Temperature
	llmReq.JSONOutput = s.config.JSONOutput

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		if llm.IsTransport(err) {
			return nil, &TransportError{Err: err}
		}
		return nil, &UnexpectedError{Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 {
		var raw []byte
		if resp != nil {
			raw = resp.Raw
		}
		return nil, &UpstreamShapeError{Reason: ShapeNoCandidates, Raw: raw}
	}

	text, ok := resp.FirstText()
	if !ok {
		return nil, &UpstreamShapeError{Reason: ShapeEmptyText, Raw: resp.Raw}
	}

	obj, strategy, ok := jsonextract.ExtractWith(text, s.config.Strategies...)
	if !ok {
		return nil, &ExtractionError{Text: text}
	}
	log = log.WithField("strategy", strategy)

	q := Question{Section: spec.Section, Fields: obj}
	for _, v := range s.config.Validators {
		if verr := v.Validate(&q); verr != nil {
			log.WithField("validator", verr.Validator).Debug("recovered object rejected")
			return nil, &ExtractionError{Text: text, Err: verr}
		}
	}

	env = &Envelope{
		Question: q,
		Metadata: s.metadata(req),
	}
	log.WithField("id", env.Metadata.ID).Debug("question generated")
	return env, nil
}

// metadata echoes the raw request values, filling the defaults for empty
// ones, and stamps a fresh id and creation time.
func (s *Service) metadata(req Request) Metadata {
	return Metadata{
		Difficulty:   orDefault(req.Difficulty, defaultDifficulty),
		QuestionType: orDefault(req.QuestionType, defaultQuestionType),
		Section:      orDefault(req.Section, defaultSection),
		SkillTags:    req.SkillTags,
		CreatedAt:    s.now().UTC(),
		ID:           s.newID(),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
