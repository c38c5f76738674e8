package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemInstruction = "You are a professional medical diagnostic assistant for Sri Venkateswara Diagnostic. " +
	"Your tone is helpful, empathetic, and professional. Always include a medical disclaimer."

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// AdvicePrompt embeds the patient's symptoms in the fixed lab-test prompt.
func AdvicePrompt(symptoms string) string {
	return fmt.Sprintf("User symptoms: %s. Based on these symptoms, suggest which medical diagnostic tests "+
		"from a standard laboratory (like CBC, Lipid Profile, Thyroid, Glucose, Liver Function) might be "+
		"relevant to discuss with a doctor. Provide a brief explanation for each. Format as a professional "+
		"health assistant. Disclaimer: Always consult a real doctor.", symptoms)
}
