package ai

import (
	"context"
	"errors"
)

// ErrEmptySymptoms rejects blank advice requests before any model call.
var ErrEmptySymptoms = errors.New("symptoms must not be empty")

// FallbackAdvice is returned whenever the model cannot answer.
const FallbackAdvice = "I am currently unable to provide advice. Please consult our staff or a doctor directly."

// Generator produces free text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Cache remembers answers for repeated symptom descriptions.
type Cache interface {
	Get(ctx context.Context, symptoms string) (string, bool, error)
	Set(ctx context.Context, symptoms, advice string) error
}

// UnavailableGenerator always fails. It stands in when no API key is configured.
type UnavailableGenerator struct{}

var errNoModel = errors.New("no advice model configured")

func (UnavailableGenerator) GenerateContent(context.Context, string) (string, error) {
	return "", errNoModel
}
