// Package ai authors new question records offline via the Gemini API.
//
// Model output is never trusted: anything that does not parse into a valid
// question record is rejected and replaced by a placeholder, so a flaky model
// can degrade authoring quality but never crash a caller.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const generateTimeout = 45 * time.Second

// Generator produces QuestionRecords for a topic/type/difficulty.
type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    zerolog.Logger
}

// NewGenerator initializes the Gemini client. Returns an error when no API
// key is configured; callers treat authoring as unavailable in that case.
func NewGenerator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	temp := float32(0.7)
	model.Temperature = &temp

	return &Generator{
		client: client,
		model:  model,
		log:    log.With().Str("component", "ai_generator").Logger(),
	}, nil
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// GenerateQuestion asks the model for one question and normalizes the reply.
// Malformed output yields a placeholder record, never an error the caller
// has to distinguish from "model is down".
func (g *Generator) GenerateQuestion(ctx context.Context, topic, qType, difficulty string) corpus.QuestionRecord {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := buildPrompt(topic, qType, difficulty)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.log.Warn().Err(err).Str("topic", topic).Msg("generation call failed, using placeholder")
		return placeholder(topic, difficulty)
	}

	raw := extractText(resp)
	record, err := corpus.ParseGenerated([]byte(raw), topic, difficulty)
	if err != nil {
		g.log.Warn().Err(err).Str("topic", topic).Msg("generated record rejected, using placeholder")
		return placeholder(topic, difficulty)
	}
	return record
}

func buildPrompt(topic, qType, difficulty string) string {
	return fmt.Sprintf(`Generate a %s question for Nigerian Nursing and Midwifery students
based on the NMCN curriculum.

Topic: %s
Difficulty: %s

Respond strictly in JSON:
{
  "question": "...",
  "options": {"A":"...","B":"...","C":"...","D":"..."},
  "correct_answer": "...",
  "explanation": "..."
}`, qType, topic, difficulty)
}

// extractText concatenates text parts from the first candidate and strips
// markdown code fences the model sometimes wraps JSON in.
func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}

	out := strings.TrimSpace(sb.String())
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

func placeholder(topic, difficulty string) corpus.QuestionRecord {
	if topic == "" {
		topic = "General Nursing"
	}
	return corpus.QuestionRecord{
		ID:         "generated-placeholder",
		Topic:      topic,
		Type:       corpus.TypeEssay,
		Difficulty: difficulty,
		Question:   fmt.Sprintf("Discuss a key concept in %s and its application to nursing practice.", topic),
	}
}
