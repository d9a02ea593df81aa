package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode"

	"shortsfactory/config"
	"shortsfactory/types"
)

// Provider generates a narration script and upload metadata for a topic.
type Provider interface {
	Name() string
	Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error)
}

// defaultRejectionPhrases flags model refusals that arrive wrapped in
// otherwise valid JSON, so they fall through instead of being narrated.
var defaultRejectionPhrases = []string{
	"lo siento",
	"no puedo",
	"como modelo de lenguaje",
	"como una ia",
	"i'm sorry",
	"i cannot",
	"as an ai",
}

// Chain tries providers in order until one returns acceptable content.
// The last provider is expected to always succeed.
type Chain struct {
	providers  []Provider
	rejections []string
}

// NewChain builds a chain with the default rejection phrases, overridable
// with a comma separated REJECTION_PHRASES env value.
func NewChain(providers ...Provider) *Chain {
	phrases := defaultRejectionPhrases
	if raw := config.GetEnvOrDefault("REJECTION_PHRASES", ""); raw != "" {
		phrases = nil
		for _, p := range strings.Split(raw, ",") {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				phrases = append(phrases, p)
			}
		}
	}
	return &Chain{providers: providers, rejections: phrases}
}

// Generate walks the chain. A provider's output is rejected, and the next
// provider tried, when the script is outside the acceptable length range,
// the title is empty, or the text reads like a refusal.
func (c *Chain) Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error) {
	var lastErr error
	for _, p := range c.providers {
		content, err := p.Generate(ctx, topic, targetDuration)
		if err != nil {
			log.Printf("Content provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		if reason := c.rejectReason(content); reason != "" {
			log.Printf("Content provider %s rejected: %s", p.Name(), reason)
			lastErr = fmt.Errorf("provider %s: %s", p.Name(), reason)
			continue
		}
		content.Provider = p.Name()
		return content, nil
	}
	return nil, fmt.Errorf("all content providers failed: %w", lastErr)
}

func (c *Chain) rejectReason(content *types.GeneratedContent) string {
	if content == nil {
		return "nil content"
	}
	if strings.TrimSpace(content.Title) == "" {
		return "empty title"
	}
	n := len([]rune(content.Script))
	if n < config.MinScriptChars {
		return fmt.Sprintf("script too short (%d chars)", n)
	}
	if n > config.MaxScriptChars {
		return fmt.Sprintf("script too long (%d chars)", n)
	}
	if phrase := c.isRejection(content); phrase != "" {
		return fmt.Sprintf("looks like a refusal (%q)", phrase)
	}
	return ""
}

// isRejection returns the first configured phrase found in the title or
// script, or "" when the content reads like a real answer.
func (c *Chain) isRejection(content *types.GeneratedContent) string {
	text := strings.ToLower(content.Title + " " + content.Script)
	for _, phrase := range c.rejections {
		if strings.Contains(text, phrase) {
			return phrase
		}
	}
	return ""
}

// buildPrompt asks for strict JSON so the response can be parsed without
// scraping prose.
func buildPrompt(topic string, targetDuration float64) string {
	return fmt.Sprintf(`Escribe el guion de un video corto vertical en español sobre: %s

El guion debe durar aproximadamente %.0f segundos al narrarse (unas %d palabras).
Usa frases cortas y un tono sorprendente, como un dato curioso.
No uses emojis, markdown ni acotaciones escénicas.

Responde SOLO con JSON válido con esta forma exacta:
{"title": "...", "script": "...", "description": "...", "tags": ["...", "..."]}`,
		topic, targetDuration, int(targetDuration*2.5))
}

type providerResponse struct {
	Title       string   `json:"title"`
	Script      string   `json:"script"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// parseResponse extracts the JSON object from a model reply. Models often
// wrap JSON in code fences or prose, so the first balanced object is taken.
func parseResponse(raw, topic string) (*types.GeneratedContent, error) {
	jsonPart := extractJSON(raw)
	if jsonPart == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var parsed providerResponse
	if err := json.Unmarshal([]byte(jsonPart), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	script := CleanScript(parsed.Script)
	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = topic
	}
	if len(title) > config.MaxTitleLength {
		title = title[:config.MaxTitleLength]
	}

	return &types.GeneratedContent{
		Title:             title,
		Script:            script,
		Description:       strings.TrimSpace(parsed.Description),
		Tags:              parsed.Tags,
		EstimatedDuration: EstimateDuration(script),
	}, nil
}

func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// CleanScript strips everything a TTS voice should not read aloud:
// markdown markers, emoji and bracketed stage directions.
func CleanScript(script string) string {
	var b strings.Builder
	depth := 0
	for _, r := range script {
		switch {
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			if depth > 0 {
				depth--
			}
		case depth > 0:
			// inside a stage direction
		case r == '*' || r == '#' || r == '`' || r == '_':
			// markdown noise
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case strings.ContainsRune(".,;:!?¡¿'\"-%", r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// EstimateDuration predicts narration length assuming 2.5 words per second.
func EstimateDuration(script string) float64 {
	return float64(len(strings.Fields(script))) / 2.5
}
