// Package insight turns a portfolio summary into a short narrative with Gemini.
//
// The generator only ever receives the numeric summary and the stat records,
// never the raw price or holdings series.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/investo"
	"github.com/etnz/investo/logging"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// ErrNoInsights is returned when the model answers with no text.
var ErrNoInsights = errors.New("no insights generated")

// systemInstruction frames the model as a balanced advisor.
const systemInstruction = "You are a concise, balanced financial advisor. " +
	"Assess the overall financial position holistically: cash reserves are a major strength. " +
	"Provide brief insights, one sentence per section."

// Models is the part of the Gemini client used to generate content.
// *genai.Models implements it.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor generates insights about a portfolio.
type Advisor struct {
	models      Models
	model       string
	temperature float32
	maxTokens   int32
	log         *logrus.Entry
}

// NewAdvisor returns an advisor using the given model name.
func NewAdvisor(models Models, model string, temperature float32, maxTokens int32) *Advisor {
	return &Advisor{
		models:      models,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         logging.Component("insight"),
	}
}

// NewClient creates a Gemini API client with the given key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("cannot create gemini client: %w", err)
	}
	return client, nil
}

// Insights asks the model to comment the summary and returns its narrative.
func (a *Advisor) Insights(ctx context.Context, s investo.Summary, currency string) (string, error) {
	prompt, err := Prompt(s, currency)
	if err != nil {
		return "", err
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(a.temperature),
		MaxOutputTokens:   a.maxTokens,
	}
	a.log.WithFields(logrus.Fields{"model": a.model, "assets": len(s.Assets)}).Debug("generate insights")
	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("cannot generate insights with %s: %w", a.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoInsights
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrNoInsights
	}
	return text, nil
}
