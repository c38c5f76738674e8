package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// AdviceService answers free-text symptom questions with suggested lab tests.
// Model failures never reach the caller; they degrade to FallbackAdvice.
type AdviceService struct {
	gen    Generator
	cache  Cache
	logger *zap.Logger
}

// NewAdviceService builds the service. cache may be nil.
func NewAdviceService(gen Generator, cache Cache, logger *zap.Logger) *AdviceService {
	return &AdviceService{gen: gen, cache: cache, logger: logger}
}

func (s *AdviceService) GetAdvice(ctx context.Context, symptoms string) (string, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return "", ErrEmptySymptoms
	}

	if s.cache != nil {
		advice, ok, err := s.cache.Get(ctx, symptoms)
		if err != nil {
			s.logger.Warn("advice cache read failed", zap.Error(err))
		} else if ok {
			return advice, nil
		}
	}

	advice, err := s.gen.GenerateContent(ctx, AdvicePrompt(symptoms))
	if err != nil {
		s.logger.Error("AI Assistance Error", zap.Error(err))
		return FallbackAdvice, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, symptoms, advice); err != nil {
			s.logger.Warn("advice cache write failed", zap.Error(err))
		}
	}
	return advice, nil
}
