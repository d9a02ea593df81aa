package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shortsfactory/types"
)

type stubProvider struct {
	name    string
	content *types.GeneratedContent
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error) {
	s.calls++
	return s.content, s.err
}

func validContent() *types.GeneratedContent {
	return &types.GeneratedContent{
		Title:  "Un título",
		Script: strings.Repeat("palabras interesantes sobre el tema ", 5),
	}
}

func TestChainUsesFirstHealthyProvider(t *testing.T) {
	first := &stubProvider{name: "first", content: validContent()}
	second := &stubProvider{name: "second", content: validContent()}

	got, err := NewChain(first, second).Generate(context.Background(), "el mar", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "first" {
		t.Errorf("expected provider first, got %s", got.Provider)
	}
	if second.calls != 0 {
		t.Error("second provider should not have been called")
	}
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("rate limited")}
	second := &stubProvider{name: "second", content: validContent()}

	got, err := NewChain(first, second).Generate(context.Background(), "el mar", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "second" {
		t.Errorf("expected fallback to second, got %s", got.Provider)
	}
}

func TestChainRejectsBadContent(t *testing.T) {
	tooShort := &stubProvider{name: "short", content: &types.GeneratedContent{Title: "t", Script: "corto"}}
	noTitle := &stubProvider{name: "untitled", content: &types.GeneratedContent{Script: strings.Repeat("x ", 100)}}
	good := &stubProvider{name: "good", content: validContent()}

	got, err := NewChain(tooShort, noTitle, good).Generate(context.Background(), "el mar", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "good" {
		t.Errorf("expected rejects to fall through, got %s", got.Provider)
	}
}

func TestChainRejectsRefusals(t *testing.T) {
	apology := &stubProvider{name: "apology", content: &types.GeneratedContent{
		Title:  "Respuesta",
		Script: "Lo siento, no puedo crear contenido sobre ese tema porque va en contra de mis pautas de uso y de mis principios como asistente.",
	}}
	good := &stubProvider{name: "good", content: validContent()}

	got, err := NewChain(apology, good).Generate(context.Background(), "el mar", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "good" {
		t.Errorf("expected refusal to fall through, got %s", got.Provider)
	}
}

func TestChainRejectionPhrasesFromEnv(t *testing.T) {
	t.Setenv("REJECTION_PHRASES", "contenido prohibido")

	flagged := &stubProvider{name: "flagged", content: &types.GeneratedContent{
		Title:  "Respuesta",
		Script: strings.Repeat("x ", 30) + "este es contenido prohibido por la plataforma",
	}}
	// default phrases are replaced, so a stock apology passes
	apology := &stubProvider{name: "apology", content: &types.GeneratedContent{
		Title:  "Respuesta",
		Script: "Lo siento mucho pero aquí va un dato curioso con suficiente longitud para pasar el filtro de tamaño del guion.",
	}}

	got, err := NewChain(flagged, apology).Generate(context.Background(), "el mar", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "apology" {
		t.Errorf("expected env phrases to replace defaults, got %s", got.Provider)
	}
}

func TestChainAllFail(t *testing.T) {
	failing := &stubProvider{name: "down", err: errors.New("unreachable")}
	if _, err := NewChain(failing).Generate(context.Background(), "el mar", 45); err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestParseResponseHandlesFencedJSON(t *testing.T) {
	raw := "Claro, aquí tienes:\n```json\n{\"title\": \"El mar\", \"script\": \"Un guion suficientemente largo sobre el mar y sus criaturas.\", \"description\": \"desc\", \"tags\": [\"mar\"]}\n```"

	got, err := parseResponse(raw, "el mar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "El mar" {
		t.Errorf("expected title from JSON, got %q", got.Title)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "mar" {
		t.Errorf("expected tags parsed, got %v", got.Tags)
	}
	if got.EstimatedDuration <= 0 {
		t.Error("expected a positive duration estimate")
	}
}

func TestParseResponseNoJSON(t *testing.T) {
	if _, err := parseResponse("lo siento, no puedo ayudarte", "el mar"); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestCleanScript(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"**Hola** mundo", "Hola mundo"},
		{"Hola [pausa dramática] mundo", "Hola mundo"},
		{"Hola (música) mundo", "Hola mundo"},
		{"Hola   \n\n  mundo", "Hola mundo"},
		{"¡Hola, mundo! ¿Qué tal?", "¡Hola, mundo! ¿Qué tal?"},
		{"Hola 🌊 mundo", "Hola mundo"},
	}
	for _, tc := range cases {
		if got := CleanScript(tc.in); got != tc.want {
			t.Errorf("CleanScript(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestTemplateProviderAlwaysValid(t *testing.T) {
	p := NewTemplateProvider()
	for _, topic := range []string{"el océano", "la inteligencia artificial", ""} {
		got, err := p.Generate(context.Background(), topic, 45)
		if err != nil {
			t.Fatalf("template provider failed for %q: %v", topic, err)
		}
		if reason := NewChain().rejectReason(got); reason != "" {
			t.Errorf("template output for %q rejected: %s", topic, reason)
		}
	}
}

func TestTemplateProviderDeterministic(t *testing.T) {
	p := NewTemplateProvider()
	a, _ := p.Generate(context.Background(), "el mar", 45)
	b, _ := p.Generate(context.Background(), "el mar", 45)
	if a.Script != b.Script {
		t.Error("same topic should produce the same template script")
	}
}
