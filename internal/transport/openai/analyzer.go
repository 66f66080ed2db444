package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/taxonomy"
)

// extractionAttempts is how many times a malformed JSON response is retried.
const extractionAttempts = 2

// Analyzer extracts structured search intent from free text via an
// OpenAI-compatible chat completion API.
type Analyzer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// AnalyzerConfig holds the analysis provider settings.
type AnalyzerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewAnalyzer creates a chat-based query analyzer.
func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Analyzer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// extraction mirrors the JSON shape the model is instructed to emit.
type extraction struct {
	Intent           string  `json:"intent"`
	Niche            string  `json:"niche"`
	Tier             string  `json:"tier"`
	Platform         string  `json:"platform"`
	Country          string  `json:"country"`
	MinFollowers     int64   `json:"min_followers"`
	MaxFollowers     int64   `json:"max_followers"`
	MinEngagement    float64 `json:"min_engagement"`
	MaxBudget        float64 `json:"max_budget"`
	SemanticQuery    string  `json:"semantic_query"`
	Confidence       float64 `json:"confidence"`
	Audience         string  `json:"audience"`
	ContentStyle     string  `json:"content_style"`
	BrandHistory     string  `json:"brand_history"`
	ReferenceCreator string  `json:"reference_creator"`
}

// Extract implements domain.Analyzer.
func (a *Analyzer) Extract(ctx context.Context, rawQuery string) (domain.Extraction, error) {
	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: rawQuery},
		},
	}

	var lastErr error
	for attempt := 0; attempt < extractionAttempts; attempt++ {
		start := time.Now()
		resp, err := a.client.CreateChatCompletion(ctx, req)
		if err != nil {
			a.logger.Warn("query analysis request failed",
				zap.Int("attempt", attempt+1), zap.Error(err))
			return domain.Extraction{}, fmt.Errorf("chat completion: %w: %w", domain.ErrAnalysisProviderError, err)
		}
		if len(resp.Choices) == 0 {
			return domain.Extraction{}, fmt.Errorf("no choices returned: %w", domain.ErrAnalysisProviderError)
		}

		var ext extraction
		content := stripCodeFence(resp.Choices[0].Message.Content)
		if err := json.Unmarshal([]byte(content), &ext); err != nil {
			lastErr = err
			a.logger.Warn("query analysis returned malformed JSON",
				zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		a.logger.Debug("query analysis completed",
			zap.String("intent", ext.Intent),
			zap.Float64("confidence", ext.Confidence),
			zap.Duration("duration", time.Since(start)),
		)
		return domain.Extraction(ext), nil
	}

	return domain.Extraction{}, fmt.Errorf("malformed analysis response: %w: %w", domain.ErrAnalysisProviderError, lastErr)
}

// HealthCheck verifies API availability via ListModels.
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON in
// despite JSON response mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func systemPrompt() string {
	var b strings.Builder
	b.WriteString("You extract structured creator-search parameters from a brand's free-text query.\n")
	b.WriteString("Respond with a single JSON object with these fields:\n")
	b.WriteString(`intent (one of "general", "similar_to", "audience_match", "content_match", "brand_match"), `)
	b.WriteString("niche, tier, platform, country, min_followers, max_followers, min_engagement, max_budget, ")
	b.WriteString("semantic_query (a cleaned description of the creator being sought), confidence (0 to 1), ")
	b.WriteString("audience, content_style, brand_history, reference_creator.\n")
	b.WriteString("Omit or use zero values for anything the query does not state.\n\n")

	b.WriteString("Allowed niches: ")
	b.WriteString(joinNiches())
	b.WriteString("\nAllowed tiers: ")
	b.WriteString(joinTiers())
	b.WriteString("\nAllowed platforms: ")
	b.WriteString(joinPlatforms())
	b.WriteString("\nAny niche, tier, or platform outside these lists must be left empty.")
	return b.String()
}

func joinNiches() string {
	parts := make([]string, 0, len(taxonomy.Niches()))
	for _, n := range taxonomy.Niches() {
		parts = append(parts, string(n))
	}
	return strings.Join(parts, ", ")
}

func joinTiers() string {
	parts := make([]string, 0, len(taxonomy.Tiers()))
	for _, t := range taxonomy.Tiers() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

func joinPlatforms() string {
	parts := make([]string, 0, len(taxonomy.Platforms()))
	for _, p := range taxonomy.Platforms() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}
